package tnurcc

import (
	"testing"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
)

// cubePoints are the corners of the unit cube.
var cubePoints = []geom.Vec3{
	geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(1, 1, 0), geom.V3(0, 1, 0),
	geom.V3(0, 0, 1), geom.V3(1, 0, 1), geom.V3(1, 1, 1), geom.V3(0, 1, 1),
}

// cubeQuads lists the six cube faces anticlockwise as seen from outside.
var cubeQuads = [][4]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

// cubeMesh builds the closed unit cube used by most tests in this package.
func cubeMesh(t *testing.T) *Tnurcc[geom.Vec3] {
	t.Helper()
	m, err := FromQuadMesh(cubePoints, cubeQuads)
	if err != nil {
		t.Fatalf("FromQuadMesh() error = %v", err)
	}
	return m
}

func TestFromQuadMesh_Cube(t *testing.T) {
	m := cubeMesh(t)

	if got := m.PointCount(); got != 8 {
		t.Errorf("PointCount() = %d, want 8", got)
	}
	if got := m.EdgeCount(); got != 12 {
		t.Errorf("EdgeCount() = %d, want 12", got)
	}
	if got := m.FaceCount(); got != 6 {
		t.Errorf("FaceCount() = %d, want 6", got)
	}

	// Every cube corner has valence 3, so all 8 are extraordinary.
	if got := len(m.ExtraordinaryPoints()); got != 8 {
		t.Errorf("len(ExtraordinaryPoints()) = %d, want 8", got)
	}
	for i := 0; i < m.PointCount(); i++ {
		if got := m.Point(PointID(i)).Valence; got != 3 {
			t.Errorf("point %d valence = %d, want 3", i, got)
		}
	}
}

func TestFromQuadMesh_OpenQuadRejected(t *testing.T) {
	points := []geom.Vec3{
		geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(1, 1, 0), geom.V3(0, 1, 0),
	}
	_, err := FromQuadMesh(points, [][4]int{{0, 1, 2, 3}})
	if !errors.Is(err, errors.ErrCodeMissingFace) {
		t.Errorf("FromQuadMesh() error = %v, want code %v", err, errors.ErrCodeMissingFace)
	}
}

func TestNew_Validation(t *testing.T) {
	points := []geom.Vec3{
		geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(1, 1, 0), geom.V3(0, 1, 0),
	}
	side := func(a, b int, knot float64) Run {
		return Run{Start: a, Steps: []RunStep{{Next: b, Knot: knot}}}
	}

	tests := []struct {
		name  string
		faces []FaceSpec
		code  errors.Code
	}{
		{
			name: "non-rectangular face",
			faces: []FaceSpec{{
				side(0, 1, 1), side(1, 2, 1), side(2, 3, 2), side(3, 0, 1),
			}},
			code: errors.ErrCodeNonRectangularFace,
		},
		{
			name: "empty boundary run",
			faces: []FaceSpec{{
				side(0, 1, 1), {Start: 1}, side(2, 3, 1), side(3, 0, 1),
			}},
			code: errors.ErrCodeIncompleteFaceEdge,
		},
		{
			name: "broken run chain",
			faces: []FaceSpec{{
				side(0, 1, 1), side(2, 3, 1), side(3, 0, 1), side(0, 0, 1),
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "point index out of range",
			faces: []FaceSpec{{
				side(0, 9, 1), side(9, 2, 1), side(2, 3, 1), side(3, 0, 1),
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "negative knot interval",
			faces: []FaceSpec{{
				side(0, 1, -1), side(1, 2, 1), side(2, 3, -1), side(3, 0, 1),
			}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "edge claimed twice on the same side",
			faces: []FaceSpec{
				{side(0, 1, 1), side(1, 2, 1), side(2, 3, 1), side(3, 0, 1)},
				{side(0, 1, 1), side(1, 2, 1), side(2, 3, 1), side(3, 0, 1)},
			},
			code: errors.ErrCodeEdgeTripleFace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(points, tt.faces)
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	m := cubeMesh(t)
	c := m.Clone()

	if _, _, err := c.SplitEdge(0, geom.V3(0.5, 0, 0), 0.5); err != nil {
		t.Fatalf("SplitEdge() error = %v", err)
	}
	if got, want := c.PointCount(), m.PointCount()+1; got != want {
		t.Errorf("clone PointCount() = %d, want %d", got, want)
	}
	if got := m.EdgeCount(); got != 12 {
		t.Errorf("original EdgeCount() after mutating clone = %d, want 12", got)
	}
}

func TestClear(t *testing.T) {
	m := cubeMesh(t)
	m.Clear()
	if m.PointCount() != 0 || m.EdgeCount() != 0 || m.FaceCount() != 0 {
		t.Errorf("Clear() left %d points, %d edges, %d faces",
			m.PointCount(), m.EdgeCount(), m.FaceCount())
	}
}
