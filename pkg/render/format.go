package render

import (
	"context"
	"strings"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

// Format is an output format for [Render].
type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatDOT, FormatSVG, FormatPNG}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, dot, svg or png)", s)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// Render renders stacks in the given format.
func Render(ctx context.Context, c *stack.Collection, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(Drawing(c)), nil
	case FormatDOT:
		return []byte(ToDOT(c)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(c))
	case FormatPNG:
		return RenderPNG(ctx, ToDOT(c))
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", string(f))
}
