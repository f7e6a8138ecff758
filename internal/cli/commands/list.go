package commands

import (
	"github.com/spf13/cobra"

	"scope/internal/config"
	"scope/internal/discovery"
	"scope/internal/execution"
	"scope/internal/registry"
	"scope/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	forest    *registry.Forest
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, forest *registry.Forest, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		forest:    forest,
		filter:    discovery.NewFilter(cfg.Filter, cfg.SourceFilter),
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	entries := execution.NewEngine(lc.forest).ListNames()
	return lc.formatter.PrintTestList(lc.filter.Apply(entries))
}
