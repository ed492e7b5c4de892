package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/internal/server"
)

type serveOpts struct {
	addr    string
	timeout time.Duration
	noCache bool
}

// serveCommand creates the serve command, which exposes the pipeline over
// HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rearrangement API over HTTP",
		Long: `Serve the rearrangement API over HTTP.

Routes:
  GET  /health
  GET  /v1/example
  POST /v1/rearrange   {"input": "...", "mode": "batch"}

The listen address defaults to [server] addr in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	cfg := c.config()

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	mode, err := cfg.ParsedMode()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	srv := server.New(runner, c.Logger, server.Options{Mode: mode, Timeout: opts.timeout})
	return srv.ListenAndServe(ctx, addr)
}
