package console

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type serveCmd struct{}

func (c *serveCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the application over HTTP on APP_PORT",
		Args:  cobra.NoArgs,
	}
}

func (c *serveCmd) run(cl *CLI, cmd *cobra.Command, args []string) error {
	a, err := cl.application()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}
