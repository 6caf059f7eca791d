package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/collabgraph/internal/api"
	"github.com/matzehuels/collabgraph/pkg/observability"
)

// serveCommand creates the serve command that exposes the analytics API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve <dataset.json>",
		Short: "Serve analytics for a dataset over HTTP",
		Long: `Serve builds the social graph of a dataset once and answers queries
against it under /v1. Prometheus metrics are exposed on /metrics.`,
		Example: `  collabgraph serve events.json
  collabgraph serve events.json --addr :9000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			observability.Register(observability.NewPrometheusHooks(reg))
			defer observability.Reset()

			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := c.buildGraph(ctx, runner, args[0], opts)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := api.NewServer(g, runner, api.Options{
				Top:      opts.Top,
				Gatherer: reg,
				Logger:   c.Logger,
			})
			printSuccess("Listening on %s", StyleHighlight.Render("http://"+addr))
			printDetail("Press Ctrl+C to stop")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
