package pipeline

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/stackmover/pkg/cache"
	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/mover"
	"github.com/matzehuels/stackmover/pkg/observability"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Mode != DefaultMode {
		t.Errorf("Mode = %v, want %v", opts.Mode, DefaultMode)
	}
	if opts.CacheTTL != cache.DefaultTTL {
		t.Errorf("CacheTTL = %v, want %v", opts.CacheTTL, cache.DefaultTTL)
	}

	bad := Options{Mode: mover.Mode(42)}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("invalid mode error = %v, want INVALID_MODE", err)
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		mode  mover.Mode
		want  string
		final []string
	}{
		{mover.ModeSequential, "CMZ", []string{"C", "M", "PDNZ"}},
		{mover.ModeBatch, "MCD", []string{"M", "C", "PZND"}},
	}

	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			res, err := r.Execute(context.Background(), input.Example, Options{Mode: tt.mode})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Answer != tt.want {
				t.Errorf("Answer = %q, want %q", res.Answer, tt.want)
			}
			if !slices.Equal(res.Final, tt.final) {
				t.Errorf("Final = %v, want %v", res.Final, tt.final)
			}
			if !slices.Equal(res.Initial, []string{"ZN", "MCD", "P"}) {
				t.Errorf("Initial = %v", res.Initial)
			}
			if res.Stats.StackCount != 3 || res.Stats.ItemCount != 6 || res.Stats.ProcedureCount != 4 {
				t.Errorf("Stats = %+v", res.Stats)
			}
			if res.RunID == "" {
				t.Error("RunID should be set")
			}
			if res.CacheInfo.Hit {
				t.Error("null cache should never hit")
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.Code
	}{
		{"no separator", "[A]\n 1 \n", errors.ErrCodeMalformedInput},
		{"bad procedure", "[A]\n 1 \n\nmove one from 1 to 1\n", errors.ErrCodeMalformedInput},
		{"insufficient", "[A]\n 1 \n\nmove 2 from 1 to 1\n", errors.ErrCodeInsufficientStackSize},
		{"out of bounds", "[A]\n 1 \n\nmove 1 from 1 to 3\n", errors.ErrCodeOutOfBounds},
		{"emptied", "[A]    \n 1   2 \n\nmove 1 from 1 to 2\n", errors.ErrCodeEmptyStack},
	}

	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.raw, Options{})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(ctx, input.Example, Options{}); err != context.Canceled {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, input.Example, Options{Mode: mover.ModeBatch})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, input.Example, Options{Mode: mover.ModeBatch})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit")
	}
	if second.Answer != first.Answer || second.RunID != first.RunID || second.Mode != mover.ModeBatch {
		t.Errorf("cached result = %+v, want %+v", second, first)
	}

	other, err := r.Execute(ctx, input.Example, Options{Mode: mover.ModeSequential})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.Hit || other.Answer != "CMZ" {
		t.Errorf("sequential run = %+v, want fresh CMZ", other)
	}

	refreshed, err := r.Execute(ctx, input.Example, Options{Mode: mover.ModeBatch, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.Hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteFailureNotCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	raw := "[A]\n 1 \n\nmove 2 from 1 to 1\n"
	if _, err := r.Execute(context.Background(), raw, Options{}); err == nil {
		t.Fatal("expected error")
	}
	n, err := fc.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("cache entries = %d, want 0", n)
	}
}

func TestExecuteModes(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	results, err := r.ExecuteModes(context.Background(), input.Example, mover.Modes, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var answers []string
	for _, res := range results {
		answers = append(answers, res.Answer)
	}
	if !slices.Equal(answers, []string{"CMZ", "MCD"}) {
		t.Errorf("answers = %v, want [CMZ MCD]", answers)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	parsed   int
	applied  int
	runErr   error
	started  string
	duration time.Duration
}

func (h *recordingHooks) OnParseComplete(_ context.Context, _, procedures int, _ time.Duration, _ error) {
	h.parsed = procedures
}

func (h *recordingHooks) OnRunStart(_ context.Context, mode string, _ int) {
	h.started = mode
}

func (h *recordingHooks) OnRunComplete(_ context.Context, _ string, applied int, dur time.Duration, err error) {
	h.applied = applied
	h.duration = dur
	h.runErr = err
}

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), input.Example, Options{Mode: mover.ModeBatch}); err != nil {
		t.Fatal(err)
	}
	if h.parsed != 4 || h.applied != 4 || h.started != "batch" || h.runErr != nil {
		t.Errorf("hooks = %+v", h)
	}

	raw := "[A]\n 1 \n\nmove 1 from 1 to 1\nmove 2 from 1 to 1\n"
	if _, err := r.Execute(context.Background(), raw, Options{}); err == nil {
		t.Fatal("expected error")
	}
	if h.applied != 1 || h.runErr == nil {
		t.Errorf("applied = %d, err = %v; want 1 and an error", h.applied, h.runErr)
	}
}
