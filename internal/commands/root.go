package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/benjaminwoods/mv2/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// Flags are bound to viper together with MV2_<FLAG> environment variables.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "mv2 [flags] command [flags]"
	root.Short = "Modified Vigenère file transform"
	root.Long = `Shift files with a repeating key.

Without a block-size key, text is capitalised, stripped to letters and spaces,
and shifted over the alphabet. With a block-size key (digits 1-4), raw bytes
are grouped into blocks of that many bytes and each block is shifted modulo
its value range by 32-bit amounts taken from the shift key.`

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("delete", false, "Delete the original file after a successful transform")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of each input to its output")

	flags.StringP("shift-key", "k", "", "Shift key")
	flags.StringP("shift-key-file", "f", "", "Path to a file holding the shift key")
	flags.Bool("hex", false, "The shift key is hex-encoded")
	flags.StringP("block-key", "b", "", "Block-size key (digits 1-4); selects binary mode")
	flags.StringP("block-key-file", "B", "", "Path to a file holding the block-size key")
	flags.String("partial", "reject", "Final block that overruns the input: reject or truncate")

	flags.String("encode-ext", ".mv2", "Suffix to append to encoded files")
	flags.String("decode-ext", "", "Suffix to append to decoded files, after stripping the encode suffix")

	flags.StringSliceP("include", "i", nil, "Only process files in directories matching these patterns")
	flags.StringSliceP("exclude", "e", nil, "Skip files in directories matching these patterns")
	flags.String("include-from", "", "JSONC file with include patterns")
	flags.String("exclude-from", "", "JSONC file with exclude patterns")

	root.AddCommand(
		NewEncodeCommand(cfg),
		NewDecodeCommand(cfg),
		NewShiftCommand(cfg),
		NewCheckCommand(cfg),
		NewInspectCommand(cfg),
		NewGenerateCommand(cfg),
	)

	return root
}
