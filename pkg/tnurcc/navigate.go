package tnurcc

import (
	"fmt"

	"github.com/ricosjp/truck-sub001/pkg/errors"
)

// AcwAroundPoint returns the next edge anticlockwise around endpoint p,
// starting from e. Panics if p is not an endpoint of e.
func (m *Tnurcc[P]) AcwAroundPoint(e EdgeID, p PointID) EdgeID {
	switch ed := &m.edges[e]; p {
	case ed.Origin:
		return m.conn(e, LeftCw)
	case ed.Dest:
		return m.conn(e, RightCw)
	}
	panic(fmt.Sprintf("tnurcc: point %d is not an endpoint of edge %d", p, e))
}

// CwAroundPoint returns the next edge clockwise around endpoint p,
// starting from e. Panics if p is not an endpoint of e.
func (m *Tnurcc[P]) CwAroundPoint(e EdgeID, p PointID) EdgeID {
	switch ed := &m.edges[e]; p {
	case ed.Origin:
		return m.conn(e, RightAcw)
	case ed.Dest:
		return m.conn(e, LeftAcw)
	}
	panic(fmt.Sprintf("tnurcc: point %d is not an endpoint of edge %d", p, e))
}

// AcwAroundFace returns the next boundary edge anticlockwise around face f,
// starting from e. Panics if f is not adjacent to e.
func (m *Tnurcc[P]) AcwAroundFace(e EdgeID, f FaceID) EdgeID {
	switch ed := &m.edges[e]; f {
	case ed.FaceLeft:
		return m.conn(e, LeftAcw)
	case ed.FaceRight:
		return m.conn(e, RightAcw)
	}
	panic(fmt.Sprintf("tnurcc: face %d is not adjacent to edge %d", f, e))
}

// CwAroundFace returns the next boundary edge clockwise around face f,
// starting from e. Panics if f is not adjacent to e.
func (m *Tnurcc[P]) CwAroundFace(e EdgeID, f FaceID) EdgeID {
	switch ed := &m.edges[e]; f {
	case ed.FaceLeft:
		return m.conn(e, LeftCw)
	case ed.FaceRight:
		return m.conn(e, RightCw)
	}
	panic(fmt.Sprintf("tnurcc: face %d is not adjacent to edge %d", f, e))
}

// FaceBoundary enumerates the boundary of f anticlockwise, starting at the
// face's reference edge. It returns the boundary edges and, aligned with
// them, the vertex each edge leads away from (so verts[i] and verts[i+1]
// are the endpoints of edges[i]).
//
// Fails with MALFORMED_FACE if the walk does not return to its start.
func (m *Tnurcc[P]) FaceBoundary(f FaceID) (edges []EdgeID, verts []PointID, err error) {
	start := m.faces[f].Edge
	if start == NoEdge {
		return nil, nil, errors.New(errors.ErrCodeMalformedFace, "face %d has no reference edge", f)
	}
	e := start
	for steps := 0; ; steps++ {
		if steps > len(m.edges) {
			return nil, nil, errors.New(errors.ErrCodeMalformedFace,
				"boundary walk of face %d does not close", f)
		}
		ed := &m.edges[e]
		if !ed.hasSide(f) {
			return nil, nil, errors.New(errors.ErrCodeMalformedFace,
				"boundary walk of face %d reached edge %d not adjacent to it", f, e)
		}
		lead := ed.Origin
		if f == ed.FaceRight {
			lead = ed.Dest
		}
		edges = append(edges, e)
		verts = append(verts, lead)
		e = m.AcwAroundFace(e, f)
		if e == start {
			return edges, verts, nil
		}
	}
}

// RadialEdges enumerates all edges incident to p, rotating anticlockwise
// from the point's incoming edge. The result has exactly Valence entries.
//
// Fails with MALFORMED_FACE if p has no incident edge or the rotation does
// not return to its start.
func (m *Tnurcc[P]) RadialEdges(p PointID) ([]EdgeID, error) {
	start := m.points[p].Incoming
	if start == NoEdge {
		return nil, errors.New(errors.ErrCodeMalformedFace, "point %d has no incident edge", p)
	}
	var edges []EdgeID
	e := start
	for steps := 0; ; steps++ {
		if steps > len(m.edges) {
			return nil, errors.New(errors.ErrCodeMalformedFace,
				"radial rotation around point %d does not close", p)
		}
		if !m.edges[e].hasEnd(p) {
			return nil, errors.New(errors.ErrCodeMalformedFace,
				"radial rotation around point %d reached edge %d not incident to it", p, e)
		}
		edges = append(edges, e)
		e = m.AcwAroundPoint(e, p)
		if e == start {
			return edges, nil
		}
	}
}
