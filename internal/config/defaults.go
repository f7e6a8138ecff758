package config

const (
	// DefaultConfigFile is the project configuration file looked up in the working directory
	DefaultConfigFile = ".scope.yaml"
	// ConfigFileEnv overrides the configuration file location
	ConfigFileEnv = "SCOPE_CONFIG"
	// DefaultProcessors is the default pool size; 0 means one worker per CPU
	DefaultProcessors = 0
	// DefaultReportDir is where relative report paths are resolved
	DefaultReportDir = "."
)

// Flag names shared by the CLI and the file layer
const (
	FlagPooled       = "pooled"
	FlagProcessors   = "processors"
	FlagFilter       = "filter"
	FlagSourceFilter = "source-filter"
	FlagDebug        = "debug"
	FlagProgress     = "progress"
	FlagReport       = "report"
	FlagInteractive  = "interactive"
	FlagList         = "list"
)
