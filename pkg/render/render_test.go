package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/stack"
)

func TestDrawingExample(t *testing.T) {
	drawing, _, err := input.Split(input.Example)
	if err != nil {
		t.Fatal(err)
	}
	got := Drawing(stack.FromStrings("ZN", "MCD", "P"))
	if got != drawing+"\n" {
		t.Errorf("Drawing() =\n%q\nwant\n%q", got, drawing)
	}
}

func TestDrawingRoundTrip(t *testing.T) {
	tests := [][]string{
		{"ZN", "MCD", "P"},
		{"", "ABC", ""},
		{"A"},
		{"", ""},
		{"QWERTY", "", "X", "PO", "", "LKJ", "H", "", "G", "F", "DS"},
	}

	for _, stacks := range tests {
		want := stack.FromStrings(stacks...)
		d := Drawing(want)
		got, err := input.ParseDrawing(d)
		if err != nil {
			t.Errorf("ParseDrawing(Drawing(%q)) error = %v", stacks, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("round trip of %q = %q", stacks, got.Strings())
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, " 1 "},
		{9, " 9 "},
		{10, " 10"},
		{123, "123"},
		{1234, "234"},
	}
	for _, tt := range tests {
		if got := label(tt.n); got != tt.want {
			t.Errorf("label(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(stack.FromStrings("ZN", "", "P"))

	for _, want := range []string{
		"digraph G {",
		`"stack1" [label="{N|Z|1}"];`,
		`"stack2" [label="{2}"];`,
		`"stack3" [label="{P|3}"];`,
		`{ rank=same; "stack1"; "stack2"; "stack3"; }`,
		`"stack1" -> "stack2" [style=invis];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestEscapeRecord(t *testing.T) {
	if got := escapeRecord("a|b"); got != `a\|b` {
		t.Errorf("escapeRecord = %q", got)
	}
	if got := escapeRecord("{ }"); got != `\{\ \}` {
		t.Errorf("escapeRecord = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"DOT", FormatDOT, false},
		{" svg ", FormatSVG, false},
		{"png", FormatPNG, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseFormat(%q) code = %s", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	out, err := Render(context.Background(), stack.FromStrings("A"), FormatText)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[A]\n 1 \n" {
		t.Errorf("Render(text) = %q", out)
	}
	if FormatText.Extension() != ".txt" || FormatSVG.Extension() != ".svg" {
		t.Error("unexpected extensions")
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := Render(context.Background(), stack.FromStrings("ZN", "MCD", "P"), FormatSVG)
	if err != nil {
		t.Fatalf("Render(svg) error = %v", err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(out, []byte(`viewBox="0 0 `)) {
		t.Error("viewBox not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox without viewBox = %s", got)
	}
}
