package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/input"
)

const (
	stdinArg    = "-"
	exampleName = "example"
)

// sourceFlags selects where a command reads its puzzle from.
type sourceFlags struct {
	example bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.example, "example", false, "use the built-in example puzzle")
}

// args validates the positional arguments against the flags: exactly one
// file (or "-" for stdin), or none with --example.
func (f *sourceFlags) args(cmd *cobra.Command, args []string) error {
	switch {
	case f.example && len(args) > 0:
		return fmt.Errorf("--example takes no file argument")
	case !f.example && len(args) != 1:
		return fmt.Errorf("expected one input file, or - for stdin, or --example")
	}
	return nil
}

// read returns the raw puzzle text and a display name for it.
func (f *sourceFlags) read(cmd *cobra.Command, args []string) (raw, name string, err error) {
	if f.example {
		return input.Example, exampleName, nil
	}
	return readSource(args[0], cmd.InOrStdin())
}

func readSource(arg string, stdin io.Reader) (string, string, error) {
	if arg == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", arg)
		}
		return "", "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), arg, nil
}
