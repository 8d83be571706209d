package utils

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v2"
	"io/ioutil"

	"github.com/ir-tools/domtree/utils/slices"
)

type options struct {
	input        string
	pkgMode      bool
	function     string
	outputFormat string
	minlen       uint
	nodesep      float64
	task         string
	configPath   string
	noColorize   bool
	verbose      bool
	visualize    bool
	metrics      bool
	reverse      bool
	includeTests bool
}

const (
	_DOM_TREE = iota
	_DOT
	_CHECK_PROPS
	_FOOTPRINT
	_METRICS
)

var task = []struct{ flag, explanation string }{{
	"dom-tree",
	"Build the dominator tree over the input and print the idom vector",
}, {
	"dot",
	"Print the reachable input control-flow graph in dot notation; with -visualize, also render it to an image via Graphviz",
}, {
	"check-props",
	"Run the dominator engine's universal properties as a runtime self-check",
}, {
	"footprint",
	"Evaluate StackSize over a small built-in library of structural types",
}, {
	"metrics",
	"Report construction timings, reachable vertex counts and dominator-tree shape",
}}

var opts = &options{}

type optInterface struct{}
type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) Task() taskInterface {
	return taskInterface{}
}

func (taskInterface) IsDomTree() bool     { return opts.task == task[_DOM_TREE].flag }
func (taskInterface) IsDot() bool         { return opts.task == task[_DOT].flag }
func (taskInterface) IsCheckProps() bool  { return opts.task == task[_CHECK_PROPS].flag }
func (taskInterface) IsFootprint() bool   { return opts.task == task[_FOOTPRINT].flag }
func (taskInterface) IsMetrics() bool     { return opts.task == task[_METRICS].flag }

func (optInterface) Input() string        { return opts.input }
func (optInterface) PkgMode() bool        { return opts.pkgMode }
func (optInterface) Function() string     { return opts.function }
func (optInterface) OutputFormat() string { return opts.outputFormat }
func (optInterface) Minlen() uint         { return opts.minlen }
func (optInterface) Nodesep() float64     { return opts.nodesep }
func (optInterface) NoColorize() bool     { return opts.noColorize }
func (optInterface) Verbose() bool        { return opts.verbose }
func (optInterface) Visualize() bool      { return opts.visualize }
func (optInterface) Metrics() bool        { return opts.metrics }
func (optInterface) Reverse() bool        { return opts.reverse }
func (optInterface) IncludeTests() bool   { return opts.includeTests }

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

// yamlDefaults mirrors the subset of options a config file may default.
// CLI flags take precedence: a file value is used only for a flag still at
// its default value (for minlen and nodesep: a flag not given on the
// command line).
type yamlDefaults struct {
	Input        string  `yaml:"input"`
	PkgMode      bool    `yaml:"pkg"`
	OutputFormat string  `yaml:"format"`
	Minlen       uint    `yaml:"minlen"`
	Nodesep      float64 `yaml:"nodesep"`
	NoColorize   bool    `yaml:"no-colorize"`
}

func init() {
	taskFlag := "\n"
	for _, t := range task {
		taskFlag += t.flag + " -- " + t.explanation + "\n"
	}
	taskFlag += "\n"

	flag.StringVar(&(opts.input), "input", "", "path to a textual CFG file, or a Go package pattern when -pkg is set")
	flag.BoolVar(&(opts.pkgMode), "pkg", false, "treat -input as a Go package pattern loaded through ssacfg instead of a textual CFG file")
	flag.StringVar(&(opts.function), "fun", "main", "target function within the loaded package, used by -pkg mode")
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output image format for -visualize [svg | png | jpg | ...]")
	flag.UintVar(&(opts.minlen), "minlen", 2, "minimum edge length (for wider dot output)")
	flag.Float64Var(&(opts.nodesep), "nodesep", 0.35, "minimum space between adjacent nodes in the same rank")
	flag.StringVar(&(opts.task), "task", task[_DOM_TREE].flag, "task to perform. Options:"+taskFlag)
	flag.StringVar(&(opts.configPath), "config", "domtool.yaml", "path to a YAML file with default flag values, read if present")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.visualize), "visualize", false, "write the dot task's output to an image file via Graphviz")
	flag.BoolVar(&(opts.metrics), "metrics", false, "enable collection of construction-time metrics")
	flag.BoolVar(&(opts.reverse), "reverse", false, "reverse successor edges before construction, to demonstrate post-dominance")
	flag.BoolVar(&(opts.includeTests), "include-tests", false, "include test files when loading a Go package in -pkg mode")

	log.SetFlags(log.Ltime | log.Lshortfile)
}

// ParseArgs parses CLI flags, then fills in any flag left at its zero value
// from the YAML config file at -config, if present. CLI flags always win.
func ParseArgs() {
	flag.Parse()

	taskFlags := make([]string, len(task))
	for i, t := range task {
		taskFlags[i] = t.flag
	}
	if !slices.OneOf(opts.task, taskFlags...) {
		log.Fatalf("value %q is not valid for -task", opts.task)
	}

	applyYAMLDefaults(opts.configPath)
}

func applyYAMLDefaults(path string) {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return
	}

	var defaults yamlDefaults
	if err := yaml.Unmarshal(contents, &defaults); err != nil {
		log.Printf("ignoring malformed config file %s: %v", path, err)
		return
	}

	if opts.input == "" {
		opts.input = defaults.Input
	}
	if !opts.pkgMode {
		opts.pkgMode = defaults.PkgMode
	}
	if opts.outputFormat == "svg" {
		opts.outputFormat = orDefault(defaults.OutputFormat, opts.outputFormat)
	}
	setOnCLI := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setOnCLI[f.Name] = true })
	if defaults.Minlen != 0 && !setOnCLI["minlen"] {
		opts.minlen = defaults.Minlen
	}
	if defaults.Nodesep != 0 && !setOnCLI["nodesep"] {
		opts.nodesep = defaults.Nodesep
	}
	opts.noColorize = opts.noColorize || defaults.NoColorize
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
