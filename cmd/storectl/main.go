// Command storectl inspects and edits the document store the portal runs on.
package main

import (
	"context"
	"os"

	"github.com/qmc/portal/internal/pkg/logger"
)

func main() {
	app := newApp(openEnv, os.Stdout)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logger.Error().Err(err).Msg("storectl failed")
		os.Exit(1)
	}
}
