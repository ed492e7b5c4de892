package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/pipeline"
)

// isolate points the config and cache directories at fresh temp dirs.
func isolate(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return configHome, cacheHome
}

// execute runs the root command with args and returns everything written to
// stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	defer func() { stdout = prev }()

	c := New(io.Discard, LogInfo)
	defer c.Close()
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunQuiet(t *testing.T) {
	isolate(t)
	file := writeFile(t, "crates.txt", input.Example)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"example default mode", "", []string{"run", "--example", "-q"}, "CMZ\n"},
		{"batch", "", []string{"run", "--example", "-q", "--mode", "batch"}, "MCD\n"},
		{"alias", "", []string{"run", "--example", "-q", "-m", "9001"}, "MCD\n"},
		{"both", "", []string{"run", "--example", "-q", "--mode", "both"}, "CMZ\nMCD\n"},
		{"file", "", []string{"run", "-q", file}, "CMZ\n"},
		{"stdin", input.Example, []string{"run", "-q", "-"}, "CMZ\n"},
		{"crlf stdin", strings.ReplaceAll(input.Example, "\n", "\r\n"), []string{"run", "-q", "--mode", "batch", "-"}, "MCD\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunHuman(t *testing.T) {
	isolate(t)
	got, err := execute(t, "", "run", "--example", "--mode", "both")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"sequential", "CMZ", "batch", "MCD", "3 stacks", "6 crates", "4 procedures"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunJSONAndCache(t *testing.T) {
	isolate(t)

	var results [2]pipeline.Result
	for i := range results {
		got, err := execute(t, "", "run", "--example", "--json", "--mode", "batch")
		if err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal([]byte(got), &results[i]); err != nil {
			t.Fatalf("decode %q: %v", got, err)
		}
	}
	if results[0].Answer != "MCD" || results[1].Answer != "MCD" {
		t.Errorf("answers = %q, %q; want MCD", results[0].Answer, results[1].Answer)
	}
	if results[0].CacheInfo.Hit || !results[1].CacheInfo.Hit {
		t.Errorf("cache hits = %v, %v; want false, true", results[0].CacheInfo.Hit, results[1].CacheInfo.Hit)
	}

	got, err := execute(t, "", "run", "--example", "--json", "--mode", "batch", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	var fresh pipeline.Result
	if err := json.Unmarshal([]byte(got), &fresh); err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.Hit {
		t.Error("--no-cache should not hit")
	}
}

func TestRunErrors(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "missing.txt")
	broken := writeFile(t, "broken.txt", "[A]\n 1 \n\nmove 2 from 1 to 1\n")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no input", []string{"run"}, ""},
		{"example and file", []string{"run", "--example", "x.txt"}, ""},
		{"missing file", []string{"run", missing}, errors.ErrCodeFileNotFound},
		{"bad mode", []string{"run", "--example", "--mode", "9002"}, errors.ErrCodeInvalidMode},
		{"insufficient", []string{"run", broken}, errors.ErrCodeInsufficientStackSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatalf("execute(%v) should fail", tt.args)
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunUsesConfigMode(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, "config.toml", "mode = \"batch\"\n")

	got, err := execute(t, "", "--config", cfg, "run", "--example", "-q")
	if err != nil {
		t.Fatal(err)
	}
	if got != "MCD\n" {
		t.Errorf("output = %q, want MCD from config", got)
	}

	got, err = execute(t, "", "--config", cfg, "run", "--example", "-q", "--mode", "sequential")
	if err != nil {
		t.Fatal(err)
	}
	if got != "CMZ\n" {
		t.Errorf("output = %q, want the flag to override config", got)
	}
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, "config.toml", "mode = \n")
	if _, err := execute(t, "", "--config", cfg, "run", "--example"); err == nil {
		t.Error("invalid TOML should fail")
	}
	if _, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.toml"), "run", "--example"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseCommand(t *testing.T) {
	isolate(t)

	got, err := execute(t, "", "parse", "--example", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var p parsedPuzzle
	if err := json.Unmarshal([]byte(got), &p); err != nil {
		t.Fatal(err)
	}
	if strings.Join(p.Stacks, ",") != "ZN,MCD,P" {
		t.Errorf("stacks = %v", p.Stacks)
	}
	if len(p.Procedures) != 4 || p.Procedures[1].Count != 3 {
		t.Errorf("procedures = %+v", p.Procedures)
	}

	got, err = execute(t, "", "parse", "--example")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[Z] [M] [P]", "move 1 from 2 to 1", "watch --example"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)

	got, err := execute(t, "", "render", "--example")
	if err != nil {
		t.Fatal(err)
	}
	want := "        [Z]\n        [N]\n        [D]\n[C] [M] [P]\n 1   2   3 \n"
	if got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}

	got, err = execute(t, "", "render", "--example", "--initial")
	if err != nil {
		t.Fatal(err)
	}
	drawing, _, _ := input.Split(input.Example)
	if got != drawing+"\n" {
		t.Errorf("render --initial =\n%s\nwant\n%s", got, drawing)
	}

	out := filepath.Join(t.TempDir(), "final.dot")
	if _, err := execute(t, "", "render", "--example", "--format", "dot", "-o", out, "--mode", "batch"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("digraph G")) || !bytes.Contains(data, []byte(`{D|N|Z|P|3}`)) {
		t.Errorf("dot output = %s", data)
	}

	if _, err := execute(t, "", "render", "--example", "--format", "gif"); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := execute(t, "", "render", "--example", "--mode", "both"); err == nil {
		t.Error("render with both modes should fail")
	}
}

func TestConfigCommands(t *testing.T) {
	configHome, _ := isolate(t)

	got, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(configHome, appName, "config.toml")
	if strings.TrimSpace(got) != want {
		t.Errorf("config path = %q, want %q", got, want)
	}

	got, err = execute(t, "", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `mode = "sequential"`) {
		t.Errorf("config show = %s", got)
	}

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if _, err := execute(t, "", "--config", target, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("config init did not write %s: %v", target, err)
	}
	got, err = execute(t, "", "--config", target, "run", "--example", "-q")
	if err != nil {
		t.Fatalf("run with generated config error = %v", err)
	}
	if got != "CMZ\n" {
		t.Errorf("output = %q", got)
	}
}

func TestCacheCommands(t *testing.T) {
	_, cacheHome := isolate(t)

	got, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q", got)
	}

	got, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Cache is empty") {
		t.Errorf("cache clear on empty cache = %q", got)
	}

	if _, err := execute(t, "", "run", "--example", "--mode", "both"); err != nil {
		t.Fatal(err)
	}
	got, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Cleared 2 cached entries") {
		t.Errorf("cache clear = %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	got, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "version: ") {
		t.Errorf("version = %q", got)
	}

	got, err = execute(t, "", "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"go_version"`) {
		t.Errorf("version --json = %q", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	got, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, appName) {
		t.Error("bash completion should mention the command name")
	}
}
