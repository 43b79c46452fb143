package render

import (
	"strings"
	"testing"

	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/tnurcc"
)

func cube(t *testing.T) *tnurcc.Tnurcc[geom.Vec3] {
	t.Helper()
	points := []geom.Vec3{
		geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(1, 1, 0), geom.V3(0, 1, 0),
		geom.V3(0, 0, 1), geom.V3(1, 0, 1), geom.V3(1, 1, 1), geom.V3(0, 1, 1),
	}
	quads := [][4]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	}
	m, err := tnurcc.FromQuadMesh(points, quads)
	if err != nil {
		t.Fatalf("FromQuadMesh() error = %v", err)
	}
	return m
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(cube(t), Options{})

	if !strings.HasPrefix(dot, "graph mesh {") {
		t.Errorf("ToDOT() does not start with a graph header:\n%s", dot)
	}
	if got := strings.Count(dot, " -- "); got != 12 {
		t.Errorf("ToDOT() emits %d links, want 12", got)
	}
	// Every cube corner is extraordinary and gets the dashed style.
	if got := strings.Count(dot, "dashed"); got != 8 {
		t.Errorf("ToDOT() marks %d nodes dashed, want 8", got)
	}
}

func TestToDOT_Labels(t *testing.T) {
	dot := ToDOT(cube(t), Options{Labels: true})

	if !strings.Contains(dot, "(v3)") {
		t.Errorf("ToDOT() with labels is missing valence annotations:\n%s", dot)
	}
	if !strings.Contains(dot, `label="1"`) {
		t.Errorf("ToDOT() with labels is missing knot interval labels:\n%s", dot)
	}
}
