// Package pkg provides the core libraries for Stackmover.
//
// # Overview
//
// Stackmover replays crate rearrangement procedures on a row of stacks and
// reports the crate on top of each stack. The pkg directory is organized
// into three areas:
//
//  1. Domain: [stack], [input], [mover]
//  2. Orchestration: [pipeline], [render]
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Raw text (drawing + procedures)
//	         ↓
//	    [input] package (parse into stacks and procedures)
//	         ↓
//	    [mover] package (apply procedures with a crane mode)
//	         ↓
//	    [stack] Collection.Tops (the answer)
//	         ↓
//	    [render] package (text, DOT, SVG, PNG)
//
// [pipeline] runs these stages with result caching and is shared by the CLI
// and the HTTP server.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stackmover/pkg/input"
//	    "github.com/matzehuels/stackmover/pkg/mover"
//	)
//
//	p, err := input.Parse(raw)
//	if err != nil {
//	    return err
//	}
//	if err := mover.Run(p.Stacks, p.Procedures, mover.ModeBatch); err != nil {
//	    return err
//	}
//	answer, err := mover.Snapshot(p.Stacks)
//
// [stack]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/stack
// [input]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/input
// [mover]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/mover
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stackmover/pkg/buildinfo
package pkg
