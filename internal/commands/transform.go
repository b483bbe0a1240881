package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminwoods/mv2/internal/config"
	"github.com/benjaminwoods/mv2/internal/logic"
	"github.com/benjaminwoods/mv2/internal/vigenere"
)

// NewEncodeCommand creates a new cobra command for the encode subcommand.
func NewEncodeCommand(cfg *config.Config) *cobra.Command {
	return newTransformCommand(cfg, vigenere.Encode, &cobra.Command{
		Use:     "encode [flags] [paths/patterns...]",
		Aliases: []string{"enc"},
		Short:   "Encode files",
	})
}

// NewDecodeCommand creates a new cobra command for the decode subcommand.
func NewDecodeCommand(cfg *config.Config) *cobra.Command {
	return newTransformCommand(cfg, vigenere.Decode, &cobra.Command{
		Use:     "decode [flags] [paths/patterns...]",
		Aliases: []string{"dec"},
		Short:   "Decode files",
	})
}

func newTransformCommand(cfg *config.Config, dir vigenere.Direction, cmd *cobra.Command) *cobra.Command {
	cmd.Args = cobra.ArbitraryArgs
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := preRun(cfg, true)(cmd, args); err != nil {
			return err
		}

		cfg.Direction = dir

		return nil
	}
	cmd.RunE = runTransform(cfg)

	return cmd
}

// NewShiftCommand creates a command taking the direction as a sign.
func NewShiftCommand(cfg *config.Config) *cobra.Command {
	var sign string

	cmd := &cobra.Command{
		Use:   "shift --sign N [flags] [paths/patterns...]",
		Short: "Shift files forward (+1) or backward (-1)",
		Args:  cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := preRun(cfg, true)(cmd, args); err != nil {
				return err
			}

			dir, err := vigenere.ParseDirection(sign)
			if err != nil {
				return fmt.Errorf("--sign: %w", err)
			}

			cfg.Direction = dir

			return nil
		},
		RunE: runTransform(cfg),
	}

	cmd.Flags().StringVar(&sign, "sign", "+1", "Shift direction: +1 (encode) or -1 (decode)")

	return cmd
}

func runTransform(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return logic.Run(cmd.Context(), cfg, streams(cmd))
	}
}
