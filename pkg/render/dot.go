package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackmover/pkg/stack"
)

// ToDOT converts stacks to Graphviz DOT source. Each stack becomes one record
// node listing its crates top first, with the stack number in the bottom
// field.
func ToDOT(c *stack.Collection) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=24, fontname=\"monospace\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make([]string, c.Len())
	for i, s := range c.Stacks() {
		ids[i] = fmt.Sprintf("stack%d", i+1)
		fmt.Fprintf(&buf, "  %q [label=\"%s\"];\n", ids[i], recordLabel(s, i+1))
	}

	if len(ids) > 1 {
		buf.WriteString("\n  { rank=same;")
		for _, id := range ids {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
		// Invisible edges keep the stacks in numeric order.
		for i := 1; i < len(ids); i++ {
			fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", ids[i-1], ids[i])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func recordLabel(s *stack.Stack, n int) string {
	items := s.Items()
	fields := make([]string, 0, len(items)+1)
	for i := len(items) - 1; i >= 0; i-- {
		fields = append(fields, escapeRecord(string(items[i])))
	}
	fields = append(fields, strconv.Itoa(n))
	return "{" + strings.Join(fields, "|") + "}"
}

var recordSpecial = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	` `, `\ `,
	`"`, `\"`,
)

func escapeRecord(s string) string {
	return recordSpecial.Replace(s)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a zero
// origin at its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
