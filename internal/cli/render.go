package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/pkg/render"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source  sourceFlags
	format  string // text, dot, svg, or png
	mode    string // crane mode used to reach the final arrangement
	initial bool   // render the stacks before any procedure runs
	output  string // output file path (stdout if empty)
	noCache bool
	refresh bool
}

// renderCommand creates the render command, which draws the final (or
// initial) arrangement in one of the supported formats.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: string(render.FormatText)}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Draw the stacks as text, DOT, SVG, or PNG",
		Long: `Draw the stacks after every procedure has been applied, or before with
--initial. The text format is the same drawing the parser reads; dot, svg, and
png produce a Graphviz diagram with one column per stack.

Examples:
  stackmover render crates.txt
  stackmover render --format svg -o final.svg crates.txt
  stackmover render --example --initial --format png -o start.png`,
		Args: func(cmd *cobra.Command, args []string) error { return opts.source.args(cmd, args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, dot, svg, png")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "crane mode: sequential (9000) or batch (9001) (default from config)")
	cmd.Flags().BoolVar(&opts.initial, "initial", false, "render the stacks before any procedure runs")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.mode == modeBoth {
		return fmt.Errorf("render draws one arrangement; pick sequential or batch")
	}
	modes, err := c.resolveModes(opts.mode, cmd.Flags().Changed("mode"))
	if err != nil {
		return err
	}
	raw, _, err := opts.source.read(cmd, args)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	pipeOpts, err := c.pipelineOptions(modes[0], opts.refresh)
	if err != nil {
		return err
	}

	res, err := runner.Execute(ctx, raw, pipeOpts)
	if err != nil {
		return err
	}
	stacks := stack.FromStrings(res.Final...)
	if opts.initial {
		stacks = stack.FromStrings(res.Initial...)
	}

	var spinner *Spinner
	if format == render.FormatSVG || format == render.FormatPNG {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", format))
		spinner.Start()
	}
	data, err := render.Render(ctx, stacks, format)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %s", format)
	printFile(opts.output)
	return nil
}
