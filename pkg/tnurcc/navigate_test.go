package tnurcc

import (
	"testing"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
)

// checkPointClosure asserts that rotating anticlockwise from every point's
// incoming edge returns to the start after exactly Valence steps.
func checkPointClosure(t *testing.T, m *Tnurcc[geom.Vec3]) {
	t.Helper()
	for i := 0; i < m.PointCount(); i++ {
		p := PointID(i)
		radial, err := m.RadialEdges(p)
		if err != nil {
			t.Fatalf("RadialEdges(%d) error = %v", p, err)
		}
		if got, want := len(radial), m.Point(p).Valence; got != want {
			t.Errorf("point %d anticlockwise degree = %d, want valence %d", p, got, want)
		}
	}
}

// checkFaceClosure asserts that every face boundary closes after exactly
// 4 steps in both rotation senses.
func checkFaceClosure(t *testing.T, m *Tnurcc[geom.Vec3]) {
	t.Helper()
	for i := 0; i < m.FaceCount(); i++ {
		f := FaceID(i)
		edges, _, err := m.FaceBoundary(f)
		if err != nil {
			t.Fatalf("FaceBoundary(%d) error = %v", f, err)
		}
		if len(edges) != 4 {
			t.Errorf("face %d boundary has %d edges, want 4", f, len(edges))
			continue
		}
		e := m.Face(f).Edge
		for step := 0; step < 4; step++ {
			e = m.CwAroundFace(e, f)
		}
		if e != m.Face(f).Edge {
			t.Errorf("face %d clockwise walk does not close after 4 steps", f)
		}
	}
}

// checkEdgeReciprocity asserts that every connection slot has a matching
// reciprocal slot on the neighbor, agreeing on the shared face and point.
func checkEdgeReciprocity(t *testing.T, m *Tnurcc[geom.Vec3]) {
	t.Helper()
	for i := 0; i < m.EdgeCount(); i++ {
		e := EdgeID(i)
		ed := m.Edge(e)
		implied := [4]struct {
			f FaceID
			p PointID
		}{
			LeftAcw:  {ed.FaceLeft, ed.Dest},
			LeftCw:   {ed.FaceLeft, ed.Origin},
			RightAcw: {ed.FaceRight, ed.Origin},
			RightCw:  {ed.FaceRight, ed.Dest},
		}
		for s := LeftAcw; s <= RightCw; s++ {
			n := ed.Conn[s]
			if n == e {
				t.Errorf("edge %d slot %v still points at itself", e, s)
				continue
			}
			nd := m.Edge(n)
			if !nd.hasSide(implied[s].f) {
				t.Errorf("edge %d slot %v: neighbor %d does not border face %d", e, s, n, implied[s].f)
			}
			if !nd.hasEnd(implied[s].p) {
				t.Errorf("edge %d slot %v: neighbor %d does not touch point %d", e, s, n, implied[s].p)
			}
			back := nd.Conn[m.slotToward(n, implied[s].f, implied[s].p)]
			if back != e {
				t.Errorf("edge %d slot %v: neighbor %d reciprocal slot points at %d", e, s, n, back)
			}
		}
	}
}

func TestNavigation_CubeInvariants(t *testing.T) {
	m := cubeMesh(t)
	checkPointClosure(t, m)
	checkFaceClosure(t, m)
	checkEdgeReciprocity(t, m)
}

func TestAcwAroundPoint_Closure(t *testing.T) {
	m := cubeMesh(t)
	for i := 0; i < m.PointCount(); i++ {
		p := PointID(i)
		start := m.Point(p).Incoming
		e := start
		for step := 0; step < m.Point(p).Valence; step++ {
			e = m.AcwAroundPoint(e, p)
		}
		if e != start {
			t.Errorf("point %d: %d anticlockwise steps do not return to the incoming edge",
				p, m.Point(p).Valence)
		}
	}
}

func TestCwAroundPoint_InvertsAcw(t *testing.T) {
	m := cubeMesh(t)
	for i := 0; i < m.PointCount(); i++ {
		p := PointID(i)
		e := m.Point(p).Incoming
		if got := m.CwAroundPoint(m.AcwAroundPoint(e, p), p); got != e {
			t.Errorf("point %d: CwAroundPoint(AcwAroundPoint(%d)) = %d", p, e, got)
		}
	}
}

func TestSharedQueries(t *testing.T) {
	m := cubeMesh(t)
	f := FaceID(0)
	edges, verts, err := m.FaceBoundary(f)
	if err != nil {
		t.Fatalf("FaceBoundary() error = %v", err)
	}

	if faces := m.sharedFaces(edges[0], edges[1]); len(faces) != 1 || faces[0] != f {
		t.Errorf("sharedFaces(%d, %d) = %v, want [%d]", edges[0], edges[1], faces, f)
	}
	if pts := m.sharedPoints(edges[0], edges[1]); len(pts) != 1 || pts[0] != verts[1] {
		t.Errorf("sharedPoints(%d, %d) = %v, want [%d]", edges[0], edges[1], pts, verts[1])
	}
}

func TestConnect_BadConditions(t *testing.T) {
	m := cubeMesh(t)

	// Opposite edges of a face share the face but no endpoint.
	edges, _, err := m.FaceBoundary(0)
	if err != nil {
		t.Fatalf("FaceBoundary() error = %v", err)
	}
	if err := m.Connect(edges[0], edges[2]); !errors.Is(err, errors.ErrCodeBadConnectionConditions) {
		t.Errorf("Connect(opposite edges) error = %v, want code %v",
			err, errors.ErrCodeBadConnectionConditions)
	}
	if err := m.Connect(edges[0], edges[0]); !errors.Is(err, errors.ErrCodeBadConnectionConditions) {
		t.Errorf("Connect(edge, itself) error = %v, want code %v",
			err, errors.ErrCodeBadConnectionConditions)
	}
}
