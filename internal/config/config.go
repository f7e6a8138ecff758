package config

import (
	"path/filepath"
)

// Config holds all configuration for a run
type Config struct {
	// Execution settings
	Pooled     bool
	Processors int

	// Selection
	Filter       string
	SourceFilter string

	// Output settings
	Debug       bool
	Progress    bool
	Interactive bool
	Report      string
	ReportDir   string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags. Changed records which flags the user set
// explicitly; only those override the configuration file. A nil Changed
// treats every non-zero value as set.
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

	Changed map[string]bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		Processors: DefaultProcessors,
		ReportDir:  DefaultReportDir,
	}
}

// Load layers defaults, the configuration file and explicitly set flags
func Load(flags Flags) (*Config, error) {
	cfg := New()

	file, err := loadFile()
	if err != nil {
		return nil, err
	}
	if file != nil {
		cfg.apply(file)
	}

	cfg.Flags = flags
	cfg.applyFlags(flags)
	return cfg, nil
}

func (c *Config) applyFlags(f Flags) {
	set := func(name string, nonZero bool) bool {
		if f.Changed == nil {
			return nonZero
		}
		return f.Changed[name]
	}

	if set(FlagPooled, f.Pooled) {
		c.Pooled = f.Pooled
	}
	if set(FlagProcessors, f.Processors > 0) {
		c.Processors = f.Processors
	}
	if set(FlagFilter, f.Filter != "") {
		c.Filter = f.Filter
	}
	if set(FlagSourceFilter, f.SourceFilter != "") {
		c.SourceFilter = f.SourceFilter
	}
	if set(FlagDebug, f.Debug) {
		c.Debug = f.Debug
	}
	if set(FlagProgress, f.Progress) {
		c.Progress = f.Progress
	}
	if set(FlagInteractive, f.Interactive) {
		c.Interactive = f.Interactive
	}
	if set(FlagReport, f.Report != "") {
		c.Report = f.Report
	}
}

// GetReportPath returns the absolute path of the JSON report, or "" when no
// report was requested.
func (c *Config) GetReportPath() string {
	if c.Report == "" {
		return ""
	}
	p := c.Report
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ReportDir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
