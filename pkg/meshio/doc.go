// Package meshio provides JSON and TOML import for control mesh
// descriptions and JSON export for converted T-mesh control nets.
//
// # Description Format
//
// A mesh description has a point list and either a quad shorthand or a
// full face list. The JSON form:
//
//	{
//	  "points": [[0,0,0], [1,0,0], [1,1,0], [0,1,0]],
//	  "quads": [[0,1,2,3]]
//	}
//
// Quads assign knot interval 1 to every edge. The full form spells out the
// four anticlockwise boundary runs of each face, so sides can carry several
// steps and heterogeneous knot intervals:
//
//	{
//	  "points": [...],
//	  "faces": [
//	    {"runs": [
//	      {"start": 0, "steps": [{"next": 1, "knot": 2}]},
//	      {"start": 1, "steps": [{"next": 2, "knot": 1}]},
//	      {"start": 2, "steps": [{"next": 3, "knot": 2}]},
//	      {"start": 3, "steps": [{"next": 0, "knot": 1}]}
//	    ]}
//	  ]
//	}
//
// The TOML form mirrors the same structure:
//
//	points = [[0.0, 0.0, 0.0], [1.0, 0.0, 0.0], [1.0, 1.0, 0.0], [0.0, 1.0, 0.0]]
//	quads = [[0, 1, 2, 3]]
//
// # Import
//
// Use [ReadFile] to load a description, dispatching on the file extension,
// or [Decode]/[DecodeTOML] to read from any io.Reader. Call
// [Description.Build] to turn a description into a validated mesh; it
// returns the same typed errors as the mesh constructors.
//
// # Export
//
// Use [WriteTMesh]/[ExportTMesh] to serialize a converted control net as
// JSON: one record per control point with position, normalized UV and the
// four cardinal connections.
package meshio
