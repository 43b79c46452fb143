// Package tnurcc implements a generalized quadrilateral control mesh with
// heterogeneous knot intervals, the control structure for non-uniform
// Catmull-Clark subdivision surfaces of arbitrary topology [Sederberg2003].
//
// The mesh is stored as three arenas (control points, edges, faces) addressed
// by stable integer handles. Cross-references between records are handles into
// the arenas, so cloning is a flat copy and teardown is dropping the slices.
//
// Each edge is directed and carries four connection slots used to rotate
// around its two endpoints and its two adjacent faces. The package exposes:
//
//   - Construction from a face-list description (New, FromQuadMesh)
//   - Orientation-aware navigation (AcwAroundPoint, AcwAroundFace, ...)
//   - Edge pairing (Connect) and edge splitting (SplitEdge)
//   - One level of non-uniform Catmull-Clark refinement (GlobalSubdivide)
//   - Conversion to an evaluator-ready T-mesh (ToTMesh)
//
// Meshes are safe for concurrent reads. Structural mutation (SplitEdge,
// Connect, GlobalSubdivide) must not run concurrently on the same mesh.
//
// [Sederberg2003]: https://dl.acm.org/doi/10.1145/882262.882295
package tnurcc
