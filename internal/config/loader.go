package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osGetwd = os.Getwd

// fileConfig is the on-disk shape. Pointers distinguish "false" from "absent".
type fileConfig struct {
	Pooled       *bool   `yaml:"pooled"`
	Processors   *int    `yaml:"processors"`
	Filter       *string `yaml:"filter"`
	SourceFilter *string `yaml:"source_filter"`
	Debug        *bool   `yaml:"debug"`
	Progress     *bool   `yaml:"progress"`
	Report       *string `yaml:"report"`
	Interactive  *bool   `yaml:"interactive"`
}

var getConfigPath = func() (string, error) {
	if p := os.Getenv(ConfigFileEnv); p != "" {
		return p, nil
	}
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, DefaultConfigFile), nil
}

// loadFile reads the configuration file. A missing file is not an error.
func loadFile() (*fileConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	if fc.Processors != nil && *fc.Processors < 0 {
		return nil, fmt.Errorf("error parsing config %s: processors must not be negative", path)
	}
	return &fc, nil
}

func (c *Config) apply(fc *fileConfig) {
	if fc.Pooled != nil {
		c.Pooled = *fc.Pooled
	}
	if fc.Processors != nil {
		c.Processors = *fc.Processors
	}
	if fc.Filter != nil {
		c.Filter = *fc.Filter
	}
	if fc.SourceFilter != nil {
		c.SourceFilter = *fc.SourceFilter
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.Progress != nil {
		c.Progress = *fc.Progress
	}
	if fc.Report != nil {
		c.Report = *fc.Report
	}
	if fc.Interactive != nil {
		c.Interactive = *fc.Interactive
	}
}
