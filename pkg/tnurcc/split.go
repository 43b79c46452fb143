package tnurcc

import (
	"math"

	"github.com/ricosjp/truck-sub001/pkg/errors"
)

// SplitEdge splits edge e at ratio r, inserting a new control point at pos.
// The original edge keeps its origin and now ends at the new point with
// interval Knot*r; a new conjugate edge runs from the new point to the old
// destination with interval Knot*(1-r), inheriting both faces. Edges that
// were attached on the old destination side are re-pointed at the conjugate.
//
// Returns the new point and the conjugate edge. Fails with INVALID_INPUT if
// r is outside (0,1) and MALFORMED_FACE if re-attachment is impossible.
func (m *Tnurcc[P]) SplitEdge(e EdgeID, pos P, r float64) (PointID, EdgeID, error) {
	if math.IsNaN(r) || r <= 0 || r >= 1 {
		return NoPoint, NoEdge, errors.New(errors.ErrCodeInvalidInput,
			"split ratio %v is outside (0,1)", r)
	}

	// Snapshot the destination side before rewriting it.
	ed := m.edges[e]
	oldDest := ed.Dest
	destSide := [2]EdgeID{ed.Conn[LeftAcw], ed.Conn[RightCw]}

	mid := m.addPoint(pos, 2, e)
	conj := m.addEdge(mid, oldDest, ed.Knot*(1-r), ed.FaceLeft, ed.FaceRight)
	m.edges[e].Dest = mid
	m.edges[e].Knot = ed.Knot * r
	if m.points[oldDest].Incoming == e {
		m.points[oldDest].Incoming = conj
	}

	if err := m.Connect(e, conj); err != nil {
		return NoPoint, NoEdge, errors.Wrap(errors.ErrCodeMalformedFace, err,
			"pairing edge %d with its conjugate %d", e, conj)
	}
	for i, nb := range destSide {
		if nb == e || (i == 1 && nb == destSide[0]) {
			continue
		}
		if err := m.Connect(conj, nb); err != nil {
			return NoPoint, NoEdge, errors.Wrap(errors.ErrCodeMalformedFace, err,
				"re-attaching edge %d to conjugate %d", nb, conj)
		}
	}

	// The new point has valence 2 and is extraordinary until refinement
	// raises its valence.
	m.extraordinary = append(m.extraordinary, mid)
	return mid, conj, nil
}
