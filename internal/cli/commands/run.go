package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scope/internal/config"
	"scope/internal/domain"
	"scope/internal/execution"
	"scope/internal/logging"
	"scope/internal/parser"
	"scope/internal/storage"
	"scope/internal/ui"
)

// ErrTestsFailed is returned by the run command when the run recorded at
// least one failure message.
var ErrTestsFailed = errors.New("tests failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	env       Env
	formatter *ui.Formatter
	parser    parser.Parser
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, env Env, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:    cfg,
		env:       env,
		formatter: formatter,
		parser:    parser.NewMessageParser(),
	}
}

// Engine builds the execution engine the configuration asks for
func (rc *RunCommand) Engine() *execution.Engine {
	opts := []execution.Option{execution.WithWorkers(rc.config.Processors)}
	if rc.config.Pooled {
		opts = append(opts, execution.WithStrategy(execution.Pooled))
	}
	if rc.config.Progress && rc.env.IsTerminal() {
		opts = append(opts, execution.WithProgress(ui.NewProgressBar(rc.env.Stderr)))
	}
	opts = append(opts, rc.env.EngineOptions...)

	engine := execution.NewEngine(rc.env.Forest, opts...)
	engine.SetFilter(rc.config.Filter)
	engine.SetSourceFilter(rc.config.SourceFilter)
	return engine
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if rc.config.Debug {
		rc.formatter.PrintDebugBanner()
	}

	var messages domain.MessageList
	stats, err := rc.Engine().Run(runContext(cmd), &messages)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	logging.Debug("runner", "Ran %d of %d tests in %s", stats.NumRun, stats.NumTests, stats.Duration)

	passed := rc.formatter.PrintReport(messages, stats)
	if rc.config.Debug {
		rc.formatter.PrintStats(stats, rc.config.Pooled)
	}

	failures := rc.parser.ParseAll(messages)
	if path := rc.config.GetReportPath(); path != "" {
		report := storage.NewReport(messages, failures, stats, rc.config.Pooled)
		if err := storage.NewJSONStorage(path).Save(report); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		logging.Info("report", "Report %s written to %s", report.Meta.RunID, path)
	}

	if !passed && rc.config.Interactive {
		if rc.env.IsTerminal() {
			if err := rc.env.Viewer.View(failures); err != nil {
				return err
			}
		} else {
			logging.Warn("ui", "--interactive ignored: output is not a terminal")
		}
	}

	if !passed {
		return ErrTestsFailed
	}
	return nil
}

// runContext is used when the command was not started through cobra's
// ExecuteContext.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
