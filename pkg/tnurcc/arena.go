package tnurcc

import (
	"fmt"

	"github.com/ricosjp/truck-sub001/pkg/geom"
)

// ============================================================================
// Handles
// ============================================================================

// PointID is a stable handle into a mesh's control point arena.
type PointID int

// EdgeID is a stable handle into a mesh's edge arena.
type EdgeID int

// FaceID is a stable handle into a mesh's face arena.
type FaceID int

// Sentinel handles for absent cross-references.
const (
	NoPoint PointID = -1
	NoEdge  EdgeID  = -1
	NoFace  FaceID  = -1
)

// Slot selects one of the four directional connection slots of an edge.
// "Left" and "Right" are relative to the edge's origin→dest direction;
// "Acw"/"Cw" name the rotation sense around the shared endpoint.
type Slot int

const (
	// LeftAcw is the left-face edge sharing the destination endpoint.
	LeftAcw Slot = iota
	// LeftCw is the left-face edge sharing the origin endpoint.
	LeftCw
	// RightAcw is the right-face edge sharing the origin endpoint.
	RightAcw
	// RightCw is the right-face edge sharing the destination endpoint.
	RightCw
)

// String returns the slot name for diagnostics.
func (s Slot) String() string {
	switch s {
	case LeftAcw:
		return "LeftAcw"
	case LeftCw:
		return "LeftCw"
	case RightAcw:
		return "RightAcw"
	case RightCw:
		return "RightCw"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// ============================================================================
// Records
// ============================================================================

// ControlPoint is one vertex of the control mesh.
type ControlPoint[P geom.Point[P]] struct {
	// Point is the geometric position.
	Point P
	// Valence is the number of edges incident to this point.
	Valence int
	// Incoming is one incident edge, the start of radial rotation.
	Incoming EdgeID
}

// Edge is a directed mesh edge carrying a knot interval.
type Edge struct {
	// Knot is the parametric length of the edge, always >= 0.
	Knot float64
	// Origin and Dest are the two endpoints.
	Origin, Dest PointID
	// FaceLeft and FaceRight are the adjacent faces; NoFace while
	// construction has seen only one side.
	FaceLeft, FaceRight FaceID
	// Conn holds the four directional neighbor slots, indexed by Slot.
	// A fresh edge points every slot at itself.
	Conn [4]EdgeID
}

// otherEnd returns the endpoint of e that is not p.
// Panics if p is not an endpoint of e.
func (e *Edge) otherEnd(p PointID) PointID {
	switch p {
	case e.Origin:
		return e.Dest
	case e.Dest:
		return e.Origin
	}
	panic(fmt.Sprintf("tnurcc: point %d is not an endpoint of edge %d->%d", p, e.Origin, e.Dest))
}

// hasEnd reports whether p is an endpoint of e.
func (e *Edge) hasEnd(p PointID) bool {
	return p == e.Origin || p == e.Dest
}

// hasSide reports whether f is one of the two adjacent faces of e.
func (e *Edge) hasSide(f FaceID) bool {
	return f == e.FaceLeft || f == e.FaceRight
}

// Face is one quadrilateral cell of the mesh.
type Face struct {
	// Edge is the reference edge the face boundary walk starts from.
	Edge EdgeID
	// Corners are the four boundary vertices in anticlockwise order.
	Corners [4]PointID
}

// ============================================================================
// Mesh
// ============================================================================

// Tnurcc is a control mesh for non-uniform Catmull-Clark subdivision.
// The zero value is an empty mesh.
type Tnurcc[P geom.Point[P]] struct {
	points []ControlPoint[P]
	edges  []Edge
	faces  []Face

	// extraordinary caches the handles of all points with valence != 4.
	extraordinary []PointID
}

// PointCount returns the number of control points.
func (m *Tnurcc[P]) PointCount() int { return len(m.points) }

// EdgeCount returns the number of edges.
func (m *Tnurcc[P]) EdgeCount() int { return len(m.edges) }

// FaceCount returns the number of faces.
func (m *Tnurcc[P]) FaceCount() int { return len(m.faces) }

// Point returns a copy of the control point record for id.
func (m *Tnurcc[P]) Point(id PointID) ControlPoint[P] { return m.points[id] }

// Edge returns a copy of the edge record for id.
func (m *Tnurcc[P]) Edge(id EdgeID) Edge { return m.edges[id] }

// Face returns a copy of the face record for id.
func (m *Tnurcc[P]) Face(id FaceID) Face { return m.faces[id] }

// ExtraordinaryPoints returns the handles of all control points whose
// valence differs from 4. The returned slice must not be modified.
func (m *Tnurcc[P]) ExtraordinaryPoints() []PointID { return m.extraordinary }

// Clone returns a deep copy of the mesh. Handles are stable across the
// copy, so clones of a mesh agree on every PointID/EdgeID/FaceID.
func (m *Tnurcc[P]) Clone() *Tnurcc[P] {
	c := &Tnurcc[P]{
		points:        make([]ControlPoint[P], len(m.points)),
		edges:         make([]Edge, len(m.edges)),
		faces:         make([]Face, len(m.faces)),
		extraordinary: make([]PointID, len(m.extraordinary)),
	}
	copy(c.points, m.points)
	copy(c.edges, m.edges)
	copy(c.faces, m.faces)
	copy(c.extraordinary, m.extraordinary)
	return c
}

// Clear drops all records and resets the mesh to empty.
func (m *Tnurcc[P]) Clear() {
	m.points = nil
	m.edges = nil
	m.faces = nil
	m.extraordinary = nil
}

// addPoint appends a control point and returns its handle.
func (m *Tnurcc[P]) addPoint(pt P, valence int, incoming EdgeID) PointID {
	id := PointID(len(m.points))
	m.points = append(m.points, ControlPoint[P]{Point: pt, Valence: valence, Incoming: incoming})
	return id
}

// addEdge appends an edge with every connection slot pointing at itself.
func (m *Tnurcc[P]) addEdge(origin, dest PointID, knot float64, left, right FaceID) EdgeID {
	id := EdgeID(len(m.edges))
	e := Edge{
		Knot:      knot,
		Origin:    origin,
		Dest:      dest,
		FaceLeft:  left,
		FaceRight: right,
	}
	for s := range e.Conn {
		e.Conn[s] = id
	}
	m.edges = append(m.edges, e)
	return id
}

// addFace appends a face and returns its handle.
func (m *Tnurcc[P]) addFace(edge EdgeID, corners [4]PointID) FaceID {
	id := FaceID(len(m.faces))
	m.faces = append(m.faces, Face{Edge: edge, Corners: corners})
	return id
}

// conn reads a connection slot, panicking on an unpopulated slot.
func (m *Tnurcc[P]) conn(e EdgeID, s Slot) EdgeID {
	n := m.edges[e].Conn[s]
	if n == NoEdge {
		panic(fmt.Sprintf("tnurcc: edge %d has unpopulated slot %v", e, s))
	}
	return n
}

// setFaceSide replaces face from with face to on whichever side of e
// currently references it. Used when subdivision partitions a face.
func (m *Tnurcc[P]) setFaceSide(e EdgeID, from, to FaceID) {
	ed := &m.edges[e]
	switch from {
	case ed.FaceLeft:
		ed.FaceLeft = to
	case ed.FaceRight:
		ed.FaceRight = to
	default:
		panic(fmt.Sprintf("tnurcc: face %d is not adjacent to edge %d", from, e))
	}
}

// rebuildExtraordinary recomputes the cached list of valence != 4 points.
func (m *Tnurcc[P]) rebuildExtraordinary() {
	m.extraordinary = m.extraordinary[:0]
	for i := range m.points {
		if m.points[i].Valence != 4 {
			m.extraordinary = append(m.extraordinary, PointID(i))
		}
	}
}
