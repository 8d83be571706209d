package utils

import (
	"flag"
	"fmt"
	"os"
)

// MakeInput resolves the program's input target: the first non-flag argument
// if provided, otherwise -input, otherwise "-", which the textual CFG loader
// reads as standard input.
func MakeInput() string {
	args := flag.Args()
	if len(args) >= 1 {
		return args[0]
	}
	if Opts().Input() != "" {
		return Opts().Input()
	}
	return "-"
}

// MustExist fatals with a clear message if path does not exist, rather than
// letting a lower layer report an opaque "open: no such file" error.
func MustExist(path string) {
	if path == "-" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "cannot read input %q: %v\n", path, err)
		os.Exit(1)
	}
}
