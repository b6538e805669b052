package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohan-flutterint/graphviz/pkg/observability"
	"github.com/rohan-flutterint/graphviz/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP conversion
// service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var timeout time.Duration
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve runs an HTTP service exposing the converter:

  POST /v1/convert   DOT or JSON body, GXL response
  GET  /healthz      liveness probe
  GET  /version      build information
  GET  /v1/stats     conversion and cache counters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, timeout, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, "+server.DefaultAddr+")")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, timeout time.Duration, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	counters := observability.NewCounters()
	observability.SetAll(counters)
	defer observability.Reset()

	printInfo("Serving on %s", StyleValue.Render(addr))
	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithTimeout(timeout),
		server.WithCounters(counters),
	)
	return srv.ListenAndServe(ctx, addr)
}
