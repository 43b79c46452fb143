package tnurcc

import (
	"math"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
)

// KnotTolerance is the tolerance used when comparing knot interval sums of
// opposite face sides during construction.
const KnotTolerance = 1e-7

// RunStep is one edge of a boundary run: the point it leads to and the
// knot interval assigned to the edge.
type RunStep struct {
	Next int
	Knot float64
}

// Run is one side of a face in the input description: a start point index
// followed by at least one step. Sides with several steps describe
// T-junction vertices lying on the side.
type Run struct {
	Start int
	Steps []RunStep
}

// FaceSpec describes one quadrilateral face as four anticlockwise boundary
// runs. Each run must start where the previous one ended, and the last run
// must end at the first run's start.
type FaceSpec [4]Run

// end returns the last point index of the run.
func (r Run) end() int {
	return r.Steps[len(r.Steps)-1].Next
}

// knotSum returns the total knot interval along the run.
func (r Run) knotSum() float64 {
	var sum float64
	for _, s := range r.Steps {
		sum += s.Knot
	}
	return sum
}

// edgeKey identifies an edge by its unordered endpoint pair.
type edgeKey struct {
	lo, hi PointID
}

func keyFor(a, b PointID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// New builds a validated, fully connected mesh from a point list and a
// face list. Each face is four anticlockwise boundary runs; opposite-side
// knot interval sums must agree within KnotTolerance.
//
// Fails with NON_RECTANGULAR_FACE, EDGE_TRIPLE_FACE, INCOMPLETE_FACE_EDGE,
// MISSING_FACE, or INVALID_INPUT depending on the defect; any failure
// aborts the whole build.
func New[P geom.Point[P]](points []P, faces []FaceSpec) (*Tnurcc[P], error) {
	m := &Tnurcc[P]{}
	for _, pt := range points {
		m.addPoint(pt, 0, NoEdge)
	}

	byEndpoints := make(map[edgeKey]EdgeID)
	for fi, spec := range faces {
		if err := m.buildFace(spec, byEndpoints); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "face %d", fi)
		}
	}

	// Every edge must have been claimed by a face on each side.
	for ei := range m.edges {
		e := &m.edges[ei]
		if e.FaceLeft == NoFace || e.FaceRight == NoFace {
			return nil, errors.New(errors.ErrCodeMissingFace,
				"edge %d (%d->%d) borders only one face", ei, e.Origin, e.Dest)
		}
	}

	m.rebuildExtraordinary()
	return m, nil
}

// buildFace creates one face, its new edges, and pairs consecutive border
// edges. byEndpoints maps unordered endpoint pairs to edges already seen.
func (m *Tnurcc[P]) buildFace(spec FaceSpec, byEndpoints map[edgeKey]EdgeID) error {
	for i, run := range spec {
		if len(run.Steps) == 0 {
			return errors.New(errors.ErrCodeIncompleteFaceEdge,
				"boundary run %d has fewer than 2 points", i)
		}
		if run.Start < 0 || run.Start >= len(m.points) {
			return errors.New(errors.ErrCodeInvalidInput,
				"boundary run %d starts at unknown point %d", i, run.Start)
		}
		for _, s := range run.Steps {
			if s.Next < 0 || s.Next >= len(m.points) {
				return errors.New(errors.ErrCodeInvalidInput,
					"boundary run %d references unknown point %d", i, s.Next)
			}
			if s.Knot < 0 || math.IsNaN(s.Knot) {
				return errors.New(errors.ErrCodeInvalidInput,
					"boundary run %d carries invalid knot interval %v", i, s.Knot)
			}
		}
		if spec[(i+1)%4].Start != run.end() {
			return errors.New(errors.ErrCodeInvalidInput,
				"boundary run %d ends at point %d but run %d starts at point %d",
				i, run.end(), (i+1)%4, spec[(i+1)%4].Start)
		}
	}

	// Opposite sides must span the same parametric length.
	for i := 0; i < 2; i++ {
		a, b := spec[i].knotSum(), spec[i+2].knotSum()
		if math.Abs(a-b) > KnotTolerance {
			return errors.New(errors.ErrCodeNonRectangularFace,
				"opposite sides %d and %d have knot sums %v and %v", i, i+2, a, b)
		}
	}

	corners := [4]PointID{
		PointID(spec[0].Start), PointID(spec[1].Start),
		PointID(spec[2].Start), PointID(spec[3].Start),
	}
	f := m.addFace(NoEdge, corners)

	var border []EdgeID
	for _, run := range spec {
		from := PointID(run.Start)
		for _, step := range run.Steps {
			to := PointID(step.Next)
			e, err := m.claimEdge(from, to, step.Knot, f, byEndpoints)
			if err != nil {
				return err
			}
			border = append(border, e)
			from = to
		}
	}
	m.faces[f].Edge = border[0]

	for i := range border {
		if err := m.Connect(border[i], border[(i+1)%len(border)]); err != nil {
			return errors.Wrap(errors.GetCode(err), err,
				"pairing consecutive border edges %d and %d", border[i], border[(i+1)%len(border)])
		}
	}
	return nil
}

// claimEdge finds or creates the edge from->to and records face f on the
// side implied by the traversal direction. A first sighting creates the
// edge; a second fills the opposite side; a third, or a second in the same
// direction, fails with EDGE_TRIPLE_FACE.
func (m *Tnurcc[P]) claimEdge(from, to PointID, knot float64, f FaceID, byEndpoints map[edgeKey]EdgeID) (EdgeID, error) {
	key := keyFor(from, to)
	if e, ok := byEndpoints[key]; ok {
		ed := &m.edges[e]
		if ed.Origin == from {
			// Same traversal direction as the first sighting: the left
			// side is already taken.
			return NoEdge, errors.New(errors.ErrCodeEdgeTripleFace,
				"edge %d->%d claimed twice on the same side", from, to)
		}
		if ed.FaceRight != NoFace {
			return NoEdge, errors.New(errors.ErrCodeEdgeTripleFace,
				"edge %d->%d is shared by three faces", ed.Origin, ed.Dest)
		}
		ed.FaceRight = f
		return e, nil
	}

	e := m.addEdge(from, to, knot, f, NoFace)
	byEndpoints[key] = e
	for _, p := range [2]PointID{from, to} {
		m.points[p].Valence++
		if m.points[p].Incoming == NoEdge {
			m.points[p].Incoming = e
		}
	}
	return e, nil
}

// FromQuadMesh builds a mesh from a closed quad mesh, assigning knot
// interval 1 to every edge. Each quad lists its four corner point indices
// anticlockwise. An open mesh is rejected with MISSING_FACE.
func FromQuadMesh[P geom.Point[P]](points []P, quads [][4]int) (*Tnurcc[P], error) {
	faces := make([]FaceSpec, len(quads))
	for i, q := range quads {
		for j := 0; j < 4; j++ {
			faces[i][j] = Run{
				Start: q[j],
				Steps: []RunStep{{Next: q[(j+1)%4], Knot: 1}},
			}
		}
	}
	return New(points, faces)
}
