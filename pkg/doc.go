// Package pkg provides the libraries behind depthplot, a builder for 3D
// "depth plot" scenes of artwork collections.
//
// # Overview
//
// A depth plot places one translucent block per artwork on a timeline: the
// X axis is the year the work was made, the Y axis is its height and the Z
// axis stacks works of the same style. Blocks are colored by style from a
// palette, and a single block can be selected to highlight it.
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML records
//	         ↓
//	    [io] package (import + validation into [artwork.Record])
//	         ↓
//	    [depth] package (place blocks and axes into a [scene.Scene])
//	         ↓
//	    [render/sink] package (SVG, HTML, PNG, JSON, DOT)
//
// The [pipeline] package ties the stages together and caches rendered
// artifacts through the [cache] package. The [config] package reads the
// YAML config file shared by the CLI and the HTTP server.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/depthplot/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	res, err := runner.ExecuteFile(context.Background(), "works.json", pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	})
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
//   - [artwork]: the input record and its validation
//   - [scene]: colors, materials, meshes and the scene graph
//   - [palette]: style to color tables, loadable from TOML
//   - [depth]: the depth plot layout and selection
//   - [io]: record import and export
//   - [render/sink]: output formats
//   - [cache]: artifact caches (file, memory, Redis, MongoDB)
//   - [pipeline]: load, build and render orchestration
//   - [config]: config file handling
//   - [observability]: hooks for logging and tracing
//   - [errors]: coded errors with user-facing messages
//
// [artwork.Record]: https://pkg.go.dev/github.com/matzehuels/depthplot/pkg/artwork#Record
// [scene.Scene]: https://pkg.go.dev/github.com/matzehuels/depthplot/pkg/scene#Scene
package pkg
