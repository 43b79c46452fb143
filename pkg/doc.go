// Package pkg provides the core libraries for the T-NURCC control-mesh tool.
//
// # Overview
//
// A T-NURCC net is the control structure for smooth free-form surfaces of
// arbitrary topology: a generalized quadrilateral mesh whose edges carry
// heterogeneous knot intervals and whose vertices may be extraordinary
// (valence other than four). The pkg directory is organized around the flow
// from a mesh description to an evaluator-ready T-mesh:
//
//	Mesh description (JSON / TOML manifest)
//	         ↓
//	    [meshio] package (decode + validate)
//	         ↓
//	    [tnurcc] package (construction, navigation, subdivision, conversion)
//	         ↓
//	    [tmesh] package (external control net + cubic blending evaluator)
//	         ↓
//	    T-mesh JSON / DOT / SVG output
//
// # Main Packages
//
// [tnurcc] - The control mesh itself: an arena of control points, directed
// edges with knot intervals and four directional connection slots, and
// four-sided faces. Exposes construction from a face-list description,
// orientation-aware navigation, edge pairing, edge splitting, non-uniform
// Catmull-Clark-style global subdivision, and BFS re-parametrization into
// the external T-mesh representation.
//
// [tmesh] - The outbound control net: flat control points with normalized 2D
// coordinates and up to four cardinal (neighbor, weight) connections, plus a
// cubic blending evaluator that owns the lazily initialized local knot-vector
// caches.
//
// [geom] - Vector types (over github.com/ungerik/go3d) and the generic point
// constraint the mesh algorithms are parameterized by.
//
// [meshio] - Serialization boundary: JSON and TOML mesh descriptions and the
// T-mesh JSON export.
//
// [render] - Control-net visualization: DOT export and Graphviz SVG
// rendering, with extraordinary points highlighted.
//
// # Infrastructure
//
// [pipeline] - The load → build → subdivide → convert/render runner shared by
// all CLI commands, with content-addressed artifact caching.
//
// [cache] - File-based cache keyed by mesh content hash and operation, plus a
// null cache for disabling.
//
// [observability] - Hooks for subdivision, conversion, and cache events with
// no-op defaults.
//
// [errors] - Structured error codes for the mesh validation taxonomy.
//
// # Quick Start
//
// Build a cube control mesh, refine it twice, and evaluate the result:
//
//	t, _ := tnurcc.FromQuadMesh(points, quads)
//	tm, _ := t.ToTMesh(2)
//	p := tm.Evaluate(0.5, 0.5)
//
// [tnurcc]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/tnurcc
// [tmesh]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/tmesh
// [geom]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/geom
// [meshio]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/meshio
// [render]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/cache
// [observability]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/observability
// [errors]: https://pkg.go.dev/github.com/ricosjp/truck-sub001/pkg/errors
package pkg
