// Package pipeline runs the parse → rearrange → snapshot sequence shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: split the raw text and build the stacks and procedures
//  2. Run: apply every procedure through the selected mode
//  3. Snapshot: read the top crate of every stack
//
// Results are cached by the hash of the raw text and the mode. A failed run
// is never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, raw, pipeline.Options{Mode: mover.ModeBatch})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Answer)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackmover/pkg/cache"
	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/mover"
)

// DefaultMode is used when Options.Mode is unset.
const DefaultMode = mover.ModeSequential

// Options configures one pipeline run.
type Options struct {
	Mode    mover.Mode `json:"mode"`
	Refresh bool       `json:"refresh,omitempty"` // skip the cache lookup, still store the result

	// Runtime options (not serialized)
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"` // overrides Runner.Logger for this run

	validated bool
}

// ValidateAndSetDefaults fills in defaults and rejects invalid modes.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == 0 {
		o.Mode = DefaultMode
	}
	if !o.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode %d", int(o.Mode))
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.DefaultTTL
	}
	o.validated = true
	return nil
}

// ResultKeyOpts returns the cache key options for these run options.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Mode: o.Mode.String()}
}

// Result is the outcome of a successful run.
type Result struct {
	// RunID identifies this execution in logs and API responses.
	RunID string `json:"run_id"`

	Mode mover.Mode `json:"mode"`

	// Answer is the top crate of every stack, in stack order.
	Answer string `json:"answer"`

	// Initial and Final are the stacks before and after the run, each
	// rendered bottom to top.
	Initial []string `json:"initial"`
	Final   []string `json:"final"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains run statistics.
type Stats struct {
	StackCount     int           `json:"stacks"`
	ItemCount      int           `json:"items"`
	ProcedureCount int           `json:"procedures"`
	ParseTime      time.Duration `json:"parse_ns"`
	RunTime        time.Duration `json:"run_ns"`
}

// CacheInfo reports whether the result came from the cache.
type CacheInfo struct {
	Hit bool `json:"hit"`
}
