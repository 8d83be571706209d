package utils

import "github.com/fatih/color"

// Shared color palette for pretty-printing graph and type-term structures,
// following the same CanColorize-wrapped pattern throughout the tool so
// -no-colorize silences every one of them uniformly.
var (
	VertexColor = func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiCyan).SprintFunc())(is...)
	}
	EdgeColor = func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiWhite, color.Faint).SprintFunc())(is...)
	}
	TermColor = func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiYellow).SprintFunc())(is...)
	}
	NameColor = func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiGreen).SprintFunc())(is...)
	}
	ErrColor = func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiRed).SprintFunc())(is...)
	}
)
