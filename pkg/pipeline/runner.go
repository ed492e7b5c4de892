package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackmover/pkg/cache"
	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/mover"
	"github.com/matzehuels/stackmover/pkg/observability"
)

const keyTypeResult = "result"

// Runner executes pipeline runs with caching.
//
// The Runner keeps no per-run state, so one Runner may serve concurrent
// requests; each run still gets its own freshly parsed stacks.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Parse parses raw puzzle text and reports the outcome to the pipeline hooks.
func (r *Runner) Parse(ctx context.Context, raw string) (*input.Puzzle, error) {
	start := time.Now()
	p, err := input.Parse(raw)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnParseComplete(ctx, p.Stacks.Len(), len(p.Procedures), time.Since(start), nil)
	return p, nil
}

// Execute runs the full pipeline for one mode.
func (r *Runner) Execute(ctx context.Context, raw string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	key := r.Keyer.ResultKey(cache.Hash([]byte(raw)), opts.ResultKeyOpts())
	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			logger.Debug("cache hit", "mode", opts.Mode, "run_id", res.RunID)
			return res, nil
		}
	}

	res := &Result{RunID: uuid.NewString(), Mode: opts.Mode}

	parseStart := time.Now()
	p, err := r.Parse(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	res.Stats.ParseTime = time.Since(parseStart)
	res.Stats.StackCount = p.Stacks.Len()
	res.Stats.ItemCount = p.Stacks.ItemCount()
	res.Stats.ProcedureCount = len(p.Procedures)
	res.Initial = p.Stacks.Strings()

	logger.Debug("parsed puzzle",
		"stacks", res.Stats.StackCount,
		"items", res.Stats.ItemCount,
		"procedures", res.Stats.ProcedureCount,
		"duration", res.Stats.ParseTime)

	runStart := time.Now()
	observability.Pipeline().OnRunStart(ctx, opts.Mode.String(), len(p.Procedures))
	answer, applied, err := rearrange(p, opts.Mode)
	res.Stats.RunTime = time.Since(runStart)
	observability.Pipeline().OnRunComplete(ctx, opts.Mode.String(), applied, res.Stats.RunTime, err)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	res.Answer = answer
	res.Final = p.Stacks.Strings()

	logger.Info("rearranged stacks",
		"mode", opts.Mode,
		"answer", answer,
		"duration", res.Stats.RunTime)

	r.store(ctx, key, res, opts.CacheTTL)
	return res, nil
}

// ExecuteModes runs the pipeline once per mode, each against a freshly parsed
// copy of raw.
func (r *Runner) ExecuteModes(ctx context.Context, raw string, modes []mover.Mode, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(modes))
	for _, m := range modes {
		o := opts
		o.Mode = m
		o.validated = false
		res, err := r.Execute(ctx, raw, o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func rearrange(p *input.Puzzle, mode mover.Mode) (string, int, error) {
	e, err := mover.NewEngine(p.Stacks, p.Procedures, mode)
	if err != nil {
		return "", 0, err
	}
	if err := e.Run(); err != nil {
		return "", e.Position(), err
	}
	answer, err := e.Snapshot()
	return answer, e.Position(), err
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.Logger.Warn("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeResult)
	res.CacheInfo.Hit = true
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, ttl time.Duration) {
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Warn("encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
}
