package meshio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/tmesh"
)

var directionNames = [4]string{
	tmesh.East:  "east",
	tmesh.North: "north",
	tmesh.West:  "west",
	tmesh.South: "south",
}

var directionByName = map[string]tmesh.Direction{
	"east":  tmesh.East,
	"north": tmesh.North,
	"west":  tmesh.West,
	"south": tmesh.South,
}

type tmeshDoc struct {
	Points []tmeshPoint `json:"points"`
}

type tmeshPoint struct {
	Position    []float64            `json:"position"`
	UV          []float64            `json:"uv"`
	Connections map[string]tmeshConn `json:"connections,omitempty"`
}

type tmeshConn struct {
	Neighbor *int    `json:"neighbor,omitempty"`
	Weight   float64 `json:"weight"`
}

// WriteTMesh encodes a converted control net as indented JSON and writes it
// to w. Directions without a neighbor keep their fallback weight but omit
// the neighbor field.
func WriteTMesh(net *tmesh.Mesh[geom.Vec3], w io.Writer) error {
	doc := tmeshDoc{Points: make([]tmeshPoint, len(net.Points))}
	for i, cp := range net.Points {
		p := tmeshPoint{
			Position:    []float64{cp.Point[0], cp.Point[1], cp.Point[2]},
			UV:          []float64{cp.UV[0], cp.UV[1]},
			Connections: make(map[string]tmeshConn, 4),
		}
		for d, conn := range cp.Conn {
			out := tmeshConn{Weight: conn.Weight}
			if conn.Neighbor >= 0 {
				nb := conn.Neighbor
				out.Neighbor = &nb
			}
			p.Connections[directionNames[d]] = out
		}
		doc.Points[i] = p
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode T-mesh")
	}
	return nil
}

// ReadTMesh decodes a control net previously written by [WriteTMesh].
// Directions absent from a point's connections come back with no neighbor
// and a zero weight.
func ReadTMesh(r io.Reader) (*tmesh.Mesh[geom.Vec3], error) {
	var doc tmeshDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode T-mesh")
	}

	net := &tmesh.Mesh[geom.Vec3]{Points: make([]tmesh.ControlPoint[geom.Vec3], len(doc.Points))}
	for i, p := range doc.Points {
		if len(p.Position) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"T-mesh point %d has %d position coordinates, want 3", i, len(p.Position))
		}
		if len(p.UV) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"T-mesh point %d has %d parameter coordinates, want 2", i, len(p.UV))
		}

		cp := tmesh.ControlPoint[geom.Vec3]{
			Point: geom.V3(p.Position[0], p.Position[1], p.Position[2]),
			UV:    geom.V2(p.UV[0], p.UV[1]),
		}
		for d := range cp.Conn {
			cp.Conn[d].Neighbor = -1
		}
		for name, conn := range p.Connections {
			d, ok := directionByName[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"T-mesh point %d has unknown direction %q", i, name)
			}
			cp.Conn[d].Weight = conn.Weight
			if conn.Neighbor != nil {
				if *conn.Neighbor < 0 || *conn.Neighbor >= len(doc.Points) {
					return nil, errors.New(errors.ErrCodeInvalidFormat,
						"T-mesh point %d links to out-of-range neighbor %d", i, *conn.Neighbor)
				}
				cp.Conn[d].Neighbor = *conn.Neighbor
			}
		}
		net.Points[i] = cp
	}
	return net, nil
}

// ExportTMesh writes a converted control net as JSON to the file at path.
func ExportTMesh(net *tmesh.Mesh[geom.Vec3], path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteTMesh(net, f)
}
