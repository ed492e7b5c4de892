// Package render turns stack collections into text drawings and diagrams.
//
// # Overview
//
// Four output formats are supported:
//
//   - text: the same bracketed drawing the input parser reads
//   - dot: Graphviz DOT source, one record node per stack
//   - svg and png: the DOT source rendered in-process by Graphviz
//
// A text drawing round-trips through the parser:
//
//	d := render.Drawing(stacks)
//	again, err := input.ParseDrawing(d)
//	// again.Equal(stacks) == true
//
// # Diagrams
//
// [ToDOT] lays stacks out left to right with the top crate first in each
// record, matching the drawing's vertical orientation.
//
//	dot := render.ToDOT(stacks)
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG and PNG output.
// No external Graphviz installation is needed.
package render
