package input

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/stack"
)

func TestParseExample(t *testing.T) {
	p, err := Parse(Example)
	if err != nil {
		t.Fatalf("Parse(Example) error: %v", err)
	}

	if got, want := p.Stacks.Strings(), []string{"ZN", "MCD", "P"}; !slices.Equal(got, want) {
		t.Errorf("stacks = %v, want %v", got, want)
	}

	want := []stack.Procedure{
		{Count: 1, Source: 2, Destination: 1},
		{Count: 3, Source: 1, Destination: 3},
		{Count: 2, Source: 2, Destination: 1},
		{Count: 1, Source: 1, Destination: 2},
	}
	if !slices.Equal(p.Procedures, want) {
		t.Errorf("procedures = %v, want %v", p.Procedures, want)
	}
}

func TestParseCRLF(t *testing.T) {
	p, err := Parse(strings.ReplaceAll(Example, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("Parse(CRLF) error: %v", err)
	}
	if len(p.Procedures) != 4 || p.Stacks.Len() != 3 {
		t.Errorf("got %d stacks, %d procedures", p.Stacks.Len(), len(p.Procedures))
	}
}

func TestSplitMissingSeparator(t *testing.T) {
	_, _, err := Split("[A]\n 1 \nmove 1 from 1 to 1\n")
	if !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("Split() error = %v, want MALFORMED_INPUT", err)
	}
}

func TestStackCount(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{3, 1},
		{7, 2},
		{11, 3},
		{35, 9},
		{0, 0},
	}
	for _, tt := range tests {
		if got := StackCount(tt.width); got != tt.want {
			t.Errorf("StackCount(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestParseDrawing(t *testing.T) {
	tests := []struct {
		name    string
		drawing string
		want    []string
		wantErr errors.Code
	}{
		{
			name:    "canonical",
			drawing: "    [D]    \n[N] [C]    \n[Z] [M] [P]\n 1   2   3 ",
			want:    []string{"ZN", "MCD", "P"},
		},
		{
			name:    "single stack",
			drawing: "[A]\n[B]\n 1 ",
			want:    []string{"BA"},
		},
		{
			name:    "labels only",
			drawing: " 1   2 ",
			want:    []string{"", ""},
		},
		{
			name:    "lowercase ignored",
			drawing: "[a] [B]\n 1   2 ",
			want:    []string{"", "B"},
		},
		{
			name:    "empty",
			drawing: "",
			wantErr: errors.ErrCodeMalformedInput,
		},
		{
			name:    "truncated line",
			drawing: "[A] [B]\n[C]\n 1   2 ",
			wantErr: errors.ErrCodeMalformedInput,
		},
		{
			name:    "crate past last stack",
			drawing: "[A]\n[B] [C]\n 1 ",
			wantErr: errors.ErrCodeMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDrawing(tt.drawing)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDrawing() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDrawing() error: %v", err)
			}
			if !slices.Equal(got.Strings(), tt.want) {
				t.Errorf("ParseDrawing() = %v, want %v", got.Strings(), tt.want)
			}
		})
	}
}

func TestParseProcedures(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		want    []stack.Procedure
		wantErr bool
	}{
		{
			name:  "two lines with trailing newline",
			block: "move 1 from 2 to 1\nmove 10 from 9 to 3\n",
			want:  []stack.Procedure{{Count: 1, Source: 2, Destination: 1}, {Count: 10, Source: 9, Destination: 3}},
		},
		{
			name:  "blank lines skipped",
			block: "\nmove 0 from 1 to 1\n\n",
			want:  []stack.Procedure{{Count: 0, Source: 1, Destination: 1}},
		},
		{
			name:  "empty block",
			block: "",
			want:  nil,
		},
		{name: "too few integers", block: "move 1 from 2", wantErr: true},
		{name: "too many integers", block: "move 1 from 2 to 3 and 4", wantErr: true},
		{name: "negative", block: "move -1 from 2 to 3", wantErr: true},
		{name: "not a number", block: "move one from 2 to 3", wantErr: true},
		{name: "word shift", block: "please move 1 from 2 to 3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProcedures(tt.block)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeMalformedInput) {
					t.Fatalf("ParseProcedures() error = %v, want MALFORMED_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProcedures() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseProcedures() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseNoSemanticChecks(t *testing.T) {
	p, err := Parse("[A]\n 1 \n\nmove 5 from 7 to 9\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if p.Procedures[0] != (stack.Procedure{Count: 5, Source: 7, Destination: 9}) {
		t.Errorf("procedure = %v", p.Procedures[0])
	}
}
