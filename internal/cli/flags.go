package cli

import (
	"github.com/spf13/pflag"

	"scope/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Pooled       bool
	Processors   int
	Filter       string
	SourceFilter string
	Debug        bool
	Progress     bool
	Interactive  bool
	Report       string
	List         bool
}

// Bind registers the flags on fs
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.BoolVar(&f.Pooled, config.FlagPooled, false, "Run tests on a worker pool instead of sequentially")
	fs.IntVarP(&f.Processors, config.FlagProcessors, "p", config.DefaultProcessors, "Number of workers for --pooled (0 = one per CPU)")
	fs.StringVarP(&f.Filter, config.FlagFilter, "f", "", "Run only tests whose name matches (supports wildcards, e.g. 'fix*' or '*Equality*')")
	fs.StringVarP(&f.SourceFilter, config.FlagSourceFilter, "s", "", "Run only tests declared in matching source files (e.g. 'test2.go')")
	fs.BoolVar(&f.Debug, config.FlagDebug, false, "Log each test as it starts and finishes")
	fs.BoolVar(&f.Progress, config.FlagProgress, false, "Show a progress bar on terminals")
	fs.BoolVarP(&f.Interactive, config.FlagInteractive, "i", false, "Browse failures interactively when the run finishes")
	fs.StringVar(&f.Report, config.FlagReport, "", "Write a JSON report of this run to the given file")
	fs.BoolVarP(&f.List, config.FlagList, "l", false, "List test names and sources without running them")
}

// ToConfigFlags converts CLI flags to config flags. Only flags set on fs
// override the configuration file.
func (f *Flags) ToConfigFlags(fs *pflag.FlagSet) config.Flags {
	changed := make(map[string]bool)
	fs.Visit(func(fl *pflag.Flag) {
		changed[fl.Name] = true
	})
	return config.Flags{
		Pooled:       f.Pooled,
		Processors:   f.Processors,
		Filter:       f.Filter,
		SourceFilter: f.SourceFilter,
		Debug:        f.Debug,
		Progress:     f.Progress,
		Interactive:  f.Interactive,
		Report:       f.Report,
		List:         f.List,
		Changed:      changed,
	}
}
