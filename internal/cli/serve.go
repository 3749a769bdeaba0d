package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"attrsort/internal/api"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP sorting API",
		Long: `Serve exposes the sorter over HTTP for editor and formatter
integrations: POST /v1/sort orders a group with hints and a mode,
POST /v1/rank runs the hint-free tournament ranking, and GET /healthz
reports liveness.`,
		Example: `  attrsort serve
  attrsort serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}

			srv := api.NewServer(addr, runner, loggerFromContext(cmd.Context()))

			printInfo("Serving sort API")
			printListen(addr)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8763", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the comparator result cache")

	return cmd
}
