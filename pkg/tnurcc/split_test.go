package tnurcc

import (
	"math"
	"testing"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
)

func TestSplitEdge_Quarter(t *testing.T) {
	m := cubeMesh(t)
	e := EdgeID(0)
	before := m.Edge(e)
	pos := m.Point(before.Origin).Point.Scale(0.75).Add(m.Point(before.Dest).Point.Scale(0.25))

	mid, conj, err := m.SplitEdge(e, pos, 0.25)
	if err != nil {
		t.Fatalf("SplitEdge() error = %v", err)
	}

	after := m.Edge(e)
	cd := m.Edge(conj)
	if math.Abs(after.Knot-0.25*before.Knot) > 1e-12 {
		t.Errorf("split edge knot = %v, want %v", after.Knot, 0.25*before.Knot)
	}
	if math.Abs(cd.Knot-0.75*before.Knot) > 1e-12 {
		t.Errorf("conjugate knot = %v, want %v", cd.Knot, 0.75*before.Knot)
	}

	if after.Origin != before.Origin || after.Dest != mid {
		t.Errorf("split edge runs %d->%d, want %d->%d", after.Origin, after.Dest, before.Origin, mid)
	}
	if cd.Origin != mid || cd.Dest != before.Dest {
		t.Errorf("conjugate runs %d->%d, want %d->%d", cd.Origin, cd.Dest, mid, before.Dest)
	}
	if cd.FaceLeft != before.FaceLeft || cd.FaceRight != before.FaceRight {
		t.Errorf("conjugate faces = (%d, %d), want (%d, %d)",
			cd.FaceLeft, cd.FaceRight, before.FaceLeft, before.FaceRight)
	}

	// The new point sees exactly the two halves.
	radial, err := m.RadialEdges(mid)
	if err != nil {
		t.Fatalf("RadialEdges(%d) error = %v", mid, err)
	}
	if len(radial) != 2 {
		t.Fatalf("new point has %d radial edges, want 2", len(radial))
	}

	// Neighbors attached to the old destination now reach the conjugate,
	// not the split edge.
	destRadial, err := m.RadialEdges(before.Dest)
	if err != nil {
		t.Fatalf("RadialEdges(%d) error = %v", before.Dest, err)
	}
	for _, r := range destRadial {
		if r == e {
			t.Errorf("old destination %d still lists split edge %d as incident", before.Dest, e)
		}
	}
	if got := m.Point(before.Dest).Valence; got != len(destRadial) {
		t.Errorf("old destination valence = %d, want %d", got, len(destRadial))
	}
}

func TestSplitEdge_InvalidRatio(t *testing.T) {
	for _, r := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		m := cubeMesh(t)
		if _, _, err := m.SplitEdge(0, geom.V3(0, 0, 0), r); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("SplitEdge(r=%v) error = %v, want code %v", r, err, errors.ErrCodeInvalidInput)
		}
	}
}
