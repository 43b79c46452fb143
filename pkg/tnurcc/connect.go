package tnurcc

import (
	"fmt"

	"github.com/ricosjp/truck-sub001/pkg/errors"
)

// sharedFaces returns the faces adjacent to both a and b, ignoring
// unset sides. At most two faces can match.
func (m *Tnurcc[P]) sharedFaces(a, b EdgeID) []FaceID {
	ea, eb := &m.edges[a], &m.edges[b]
	var out []FaceID
	for _, f := range [2]FaceID{ea.FaceLeft, ea.FaceRight} {
		if f == NoFace || !eb.hasSide(f) {
			continue
		}
		if len(out) == 1 && out[0] == f {
			continue
		}
		out = append(out, f)
	}
	return out
}

// sharedPoints returns the endpoints common to a and b.
func (m *Tnurcc[P]) sharedPoints(a, b EdgeID) []PointID {
	ea, eb := &m.edges[a], &m.edges[b]
	var out []PointID
	for _, p := range [2]PointID{ea.Origin, ea.Dest} {
		if !eb.hasEnd(p) {
			continue
		}
		if len(out) == 1 && out[0] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// slotToward selects the connection slot of e that faces the neighbor
// sharing face f and endpoint p. This is the full decision table:
//
//	face side  shared endpoint  slot
//	left       dest             LeftAcw
//	left       origin           LeftCw
//	right      origin           RightAcw
//	right      dest             RightCw
//
// Panics if f or p does not belong to e.
func (m *Tnurcc[P]) slotToward(e EdgeID, f FaceID, p PointID) Slot {
	ed := &m.edges[e]
	switch {
	case f == ed.FaceLeft && p == ed.Dest:
		return LeftAcw
	case f == ed.FaceLeft && p == ed.Origin:
		return LeftCw
	case f == ed.FaceRight && p == ed.Origin:
		return RightAcw
	case f == ed.FaceRight && p == ed.Dest:
		return RightCw
	}
	panic(fmt.Sprintf("tnurcc: edge %d does not border face %d at point %d", e, f, p))
}

// Connect pairs two edges that share at least one face and one endpoint,
// writing the implied connection slots symmetrically on both. The slots are
// inferred purely from identity of the shared faces and endpoints; current
// slot contents are ignored and overwritten.
//
// Two shapes are valid: a single shared face yields one slot pair, two
// shared faces (a colinear extension) yield two. Anything else fails with
// BAD_CONNECTION_CONDITIONS.
func (m *Tnurcc[P]) Connect(a, b EdgeID) error {
	if a == b {
		return errors.New(errors.ErrCodeBadConnectionConditions,
			"cannot connect edge %d to itself", a)
	}
	faces := m.sharedFaces(a, b)
	points := m.sharedPoints(a, b)
	if len(points) != 1 || len(faces) == 0 || len(faces) > 2 {
		return errors.New(errors.ErrCodeBadConnectionConditions,
			"edges %d and %d share %d faces and %d points", a, b, len(faces), len(points))
	}
	p := points[0]
	for _, f := range faces {
		m.edges[a].Conn[m.slotToward(a, f, p)] = b
		m.edges[b].Conn[m.slotToward(b, f, p)] = a
	}
	return nil
}
