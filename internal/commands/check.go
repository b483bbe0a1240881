package commands

import (
	"github.com/spf13/cobra"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "check [flags] [paths/patterns...]",
		Short:   "Validate that include/exclude patterns match files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunCheck(cfg, streams(cmd))
		},
	}
}

// NewInspectCommand creates a new cobra command for the inspect subcommand.
func NewInspectCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect [flags] [paths/patterns...]",
		Short:   "Show how the block-size key splits each file",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunInspect(cfg, streams(cmd))
		},
	}
}
