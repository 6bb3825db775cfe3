package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/internal/server"
	"github.com/matzehuels/depthplot/pkg/pipeline"
)

// serveCommand builds a plot once and serves it over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts renderOpts
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a plot over HTTP",
		Long: `Serve builds the plot for an artwork file and exposes it over HTTP:

  GET  /healthz
  GET  /plot.{format}
  GET  /blocks
  GET  /blocks/{id}
  PUT  /blocks/{id}/selection`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), args[0], addr, c.pipelineOptions(opts))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "svg width in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title (html, png)")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "TOML palette file")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "namespace for deterministic block ids")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, opts pipeline.Options) error {
	_, res, err := c.build(ctx, input, opts)
	if err != nil {
		return err
	}

	srv, err := server.New(res, opts, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	c.printSuccess("Serving %s on %s", input, addr)
	c.printStats(res.Stats.Blocks, res.Stats.Skipped, false)
	return srv.ListenAndServe(ctx, addr)
}
