package commands

import (
	"github.com/spf13/cobra"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/logic"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a new key",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunGenerate(cfg, streams(cmd))
		},
	}

	cmd.Flags().String("kind", "letters", "Key kind: letters (ASCII shift key), bytes (hex shift key) or blocks (block-size key)")
	cmd.Flags().Int("length", 16, "Number of key symbols")
	cmd.Flags().String("seed", "", "Derive the key from this seed instead of random bytes")

	return cmd
}
