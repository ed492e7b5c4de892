package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/pkg/pipeline"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	source  sourceFlags
	mode    string // sequential, batch, both, or a numeric alias
	noCache bool   // disable the result cache entirely
	refresh bool   // recompute even when a cached result exists
	json    bool   // print results as JSON
	quiet   bool   // print only the answers
}

// runCommand creates the run command, which applies the procedures and
// prints the top crate of every stack.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Apply the procedures and print the top crates",
		Long: `Apply every procedure in the input and print the crate on top of each
stack, in stack order.

The sequential crane (alias 9000) moves crates one at a time, reversing the
moved block. The batch crane (alias 9001) moves them together, keeping their
order. --mode both runs each crane on a fresh copy of the input.

Examples:
  stackmover run crates.txt
  stackmover run --mode batch crates.txt
  stackmover run --example --mode both
  cat crates.txt | stackmover run -`,
		Args: func(cmd *cobra.Command, args []string) error { return opts.source.args(cmd, args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd, args, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "crane mode: sequential (9000), batch (9001), or both (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the answers")

	return cmd
}

func (c *CLI) runRun(cmd *cobra.Command, args []string, opts *runOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	modes, err := c.resolveModes(opts.mode, cmd.Flags().Changed("mode"))
	if err != nil {
		return err
	}
	raw, name, err := opts.source.read(cmd, args)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	pipeOpts, err := c.pipelineOptions(0, opts.refresh)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	results, err := runner.ExecuteModes(ctx, raw, modes, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rearranged %s", name))

	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		return writeResultsJSON(out, results)
	case opts.quiet:
		for _, res := range results {
			fmt.Fprintln(out, res.Answer)
		}
		return nil
	}

	for _, res := range results {
		printAnswer(res.Mode.String(), res.Answer)
	}
	s := results[0].Stats
	printStats(s.StackCount, s.ItemCount, s.ProcedureCount, results[0].CacheInfo.Hit)
	return nil
}

func writeResultsJSON(w io.Writer, results []*pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}
