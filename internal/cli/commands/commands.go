package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scope/internal/cli"
	"scope/internal/config"
	"scope/internal/execution"
	"scope/internal/logging"
	"scope/internal/registry"
	"scope/internal/ui"
)

// Exit codes returned by Execute
const (
	ExitOK       = 0
	ExitFailures = 1
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// Env carries the process surroundings the commands need
type Env struct {
	Forest *registry.Forest
	Stdout io.Writer
	Stderr io.Writer
	// IsTerminal reports whether interactive output is possible
	IsTerminal func() bool
	// Viewer browses failures for --interactive
	Viewer ui.Viewer
	// EngineOptions are appended to every engine the commands create
	EngineOptions []execution.Option
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, env Env) *Commands {
	formatter := ui.NewFormatter(env.Stdout)
	return &Commands{
		Run:  NewRunCommand(cfg, env, formatter),
		List: NewListCommand(cfg, env.Forest, formatter),
	}
}

// NewRootCommand builds the cobra tree. The root command runs the tests;
// "list" and --list print them instead.
func NewRootCommand(env Env) *cobra.Command {
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}
	if env.IsTerminal == nil {
		env.IsTerminal = func() bool { return ui.IsTerminal(os.Stdout) && ui.IsTerminal(os.Stderr) }
	}
	if env.Viewer == nil {
		env.Viewer = ui.NewFailureViewer()
	}

	flags := &cli.Flags{}
	var cmds *Commands

	load := func(cmd *cobra.Command, args []string) error {
		cf := flags.ToConfigFlags(cmd.Flags())
		if len(args) == 1 && !cf.Changed[config.FlagFilter] {
			cf.Filter = args[0]
			cf.Changed[config.FlagFilter] = true
		}
		cfg, err := config.Load(cf)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		level := logging.LevelInfo
		if cfg.Debug {
			level = logging.LevelDebug
		}
		logging.Init(level, env.Stderr)
		cmds = NewCommands(cfg, env)
		return nil
	}

	root := &cobra.Command{
		Use:           "scope [filter]",
		Short:         "Run the registered tests",
		Long:          "Run every registered test, or those matching a name or source pattern, and report failures",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       load,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.List {
				return cmds.List.Execute(cmd, args)
			}
			return cmds.Run.Execute(cmd, args)
		},
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	flags.Bind(root.Flags())

	listFlags := &cli.Flags{}
	listCmd := &cobra.Command{
		Use:   "list [filter]",
		Short: "List registered tests",
		Long:  "Print the name and source file of every registered test without running anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf := listFlags.ToConfigFlags(cmd.Flags())
			if len(args) == 1 && !cf.Changed[config.FlagFilter] {
				cf.Filter = args[0]
				cf.Changed[config.FlagFilter] = true
			}
			cfg, err := config.Load(cf)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return NewListCommand(cfg, env.Forest, ui.NewFormatter(env.Stdout)).Execute(cmd, args)
		},
	}
	listCmd.Flags().StringVarP(&listFlags.Filter, config.FlagFilter, "f", "", "Only list tests whose name matches")
	listCmd.Flags().StringVarP(&listFlags.SourceFilter, config.FlagSourceFilter, "s", "", "Only list tests declared in matching source files")
	root.AddCommand(listCmd)

	return root
}

// Execute runs the CLI with args and returns the process exit code
func Execute(env Env, args []string) int {
	root := NewRootCommand(env)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrTestsFailed):
		return ExitFailures
	default:
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return ExitFailures
	}
}
