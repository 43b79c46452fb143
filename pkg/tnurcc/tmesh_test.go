package tnurcc

import (
	"math"
	"testing"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/tmesh"
)

func TestToTMesh_CubeEvaluatesFinite(t *testing.T) {
	m := cubeMesh(t)
	net, err := m.ToTMesh(2)
	if err != nil {
		t.Fatalf("ToTMesh(2) error = %v", err)
	}

	for _, uv := range [][2]float64{{0.25, 0.25}, {0.5, 0.5}} {
		p := net.Evaluate(uv[0], uv[1])
		for axis := 0; axis < 3; axis++ {
			if math.IsNaN(p[axis]) || math.IsInf(p[axis], 0) {
				t.Errorf("Evaluate(%v, %v)[%d] = %v, want finite", uv[0], uv[1], axis, p[axis])
			}
		}
	}
}

func TestToTMesh_NormalizedUV(t *testing.T) {
	m := cubeMesh(t)
	net, err := m.ToTMesh(1)
	if err != nil {
		t.Fatalf("ToTMesh(1) error = %v", err)
	}
	for i, cp := range net.Points {
		for axis := 0; axis < 2; axis++ {
			if cp.UV[axis] < -1e-12 || cp.UV[axis] > 1+1e-12 {
				t.Errorf("point %d UV = %v, outside [0,1]^2", i, cp.UV)
			}
		}
	}
}

func TestToTMesh_ConnectionsAreCardinal(t *testing.T) {
	m := cubeMesh(t)
	net, err := m.ToTMesh(1)
	if err != nil {
		t.Fatalf("ToTMesh(1) error = %v", err)
	}
	maxPopulated := 0
	for i, cp := range net.Points {
		populated := 0
		for d := tmesh.East; d <= tmesh.South; d++ {
			conn := cp.Conn[d]
			if conn.Weight < 0 {
				t.Errorf("point %d direction %d has negative weight %v", i, d, conn.Weight)
			}
			if conn.Neighbor < 0 {
				continue
			}
			populated++
			delta := net.Points[conn.Neighbor].UV.Sub(cp.UV)
			var along, across float64
			switch d {
			case tmesh.East, tmesh.West:
				along, across = delta[0], delta[1]
			default:
				along, across = delta[1], delta[0]
			}
			if math.Abs(across) > uvTolerance {
				t.Errorf("point %d direction %d neighbor is off-axis by %v", i, d, across)
			}
			if math.Abs(math.Abs(along)-conn.Weight) > 1e-9 {
				t.Errorf("point %d direction %d weight = %v, want %v", i, d, conn.Weight, math.Abs(along))
			}
		}
		if populated > maxPopulated {
			maxPopulated = populated
		}
	}
	// Seam vertices may lose connections, but the coherently unfolded
	// region around the seed face keeps full cardinal connectivity.
	if maxPopulated < 2 {
		t.Errorf("no point has 2 or more cardinal connections (max %d)", maxPopulated)
	}
}

func TestToTMesh_ReceiverUnchanged(t *testing.T) {
	m := cubeMesh(t)
	if _, err := m.ToTMesh(2); err != nil {
		t.Fatalf("ToTMesh(2) error = %v", err)
	}
	if m.PointCount() != 8 || m.EdgeCount() != 12 || m.FaceCount() != 6 {
		t.Errorf("receiver mutated: %d points, %d edges, %d faces",
			m.PointCount(), m.EdgeCount(), m.FaceCount())
	}
}

func TestToTMesh_EmptyMesh(t *testing.T) {
	var m Tnurcc[geom.Vec3]
	if _, err := m.ToTMesh(1); !errors.Is(err, errors.ErrCodeMalformedMesh) {
		t.Errorf("ToTMesh() error = %v, want code %v", err, errors.ErrCodeMalformedMesh)
	}
}
