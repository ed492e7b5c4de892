package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/pkg/render"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	source sourceFlags
	json   bool // print the parsed puzzle as JSON
}

// parsedPuzzle is the JSON shape of a parsed input.
type parsedPuzzle struct {
	Stacks     []string          `json:"stacks"`
	Procedures []stack.Procedure `json:"procedures"`
}

// parseCommand creates the parse command, which shows what the parser read
// without running any procedure.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse an input file and show its stacks and procedures",
		Long: `Parse an input file and show its stacks and procedures without applying them.

The drawing is re-rendered from the parsed stacks, so any difference from the
input shows what the parser understood.`,
		Args: func(cmd *cobra.Command, args []string) error { return opts.source.args(cmd, args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the parsed puzzle as JSON")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, args []string, opts *parseOpts) error {
	ctx := cmd.Context()
	raw, name, err := opts.source.read(cmd, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	start := time.Now()
	p, err := runner.Parse(ctx, raw)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("parsed", "source", name, "duration", time.Since(start))

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(parsedPuzzle{Stacks: p.Stacks.Strings(), Procedures: p.Procedures})
	}

	printSuccess("Parsed %s", StyleHighlight.Render(name))
	printDetail("%d stacks · %d crates · %d procedures", p.Stacks.Len(), p.Stacks.ItemCount(), len(p.Procedures))
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, render.Drawing(p.Stacks))
	fmt.Fprintln(stdout)
	for i, proc := range p.Procedures {
		printDetail("%3d  %s", i+1, proc)
	}
	if arg := displayArg(args); arg != stdinArg {
		fmt.Fprintln(stdout)
		printNextStep("Step through it", fmt.Sprintf("%s watch %s", appName, arg))
	}
	return nil
}

// displayArg formats the input argument for a suggested command.
func displayArg(args []string) string {
	if len(args) == 0 {
		return "--example"
	}
	return args[0]
}
