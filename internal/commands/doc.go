// Package commands provides the command-line interface for mv2.
//
// It implements commands for:
//   - encoding and decoding files
//   - shifting by an explicit sign
//   - checking include/exclude patterns
//   - inspecting block layouts
//   - generating keys
//
// Flags are bound through viper by the default root command of
// github.com/idelchi/gogen/pkg/cobraext, so every flag can also be set with an
// MV2_<FLAG> environment variable.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/logic"
)

// preRun returns a PreRunE handler that resolves positional args into cfg.Files,
// loads flags and environment into cfg and validates the result.
// With --show the configuration is printed and cobraext.ErrExitGracefully returned.
func preRun(cfg *config.Config, needKeys bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		if err := cobraext.Validate(cfg, cfg); err != nil {
			return err
		}

		if needKeys {
			return cfg.ValidateKeys()
		}

		return nil
	}
}

// streams returns the command's standard streams.
func streams(cmd *cobra.Command) logic.Streams {
	return logic.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}
