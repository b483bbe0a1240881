// Command mv2 shifts files with a modified Vigenère transform.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/benjaminwoods/mv2/internal/commands"
	"github.com/benjaminwoods/mv2/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)

	if err := root.ExecuteContext(ctx); err != nil && !errors.Is(err, cobraext.ErrExitGracefully) {
		fmt.Fprintln(os.Stderr, err)

		stop()
		os.Exit(1)
	}
}
