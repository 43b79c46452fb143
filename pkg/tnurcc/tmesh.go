package tnurcc

import (
	"math"

	"github.com/ricosjp/truck-sub001/pkg/errors"
	"github.com/ricosjp/truck-sub001/pkg/geom"
	"github.com/ricosjp/truck-sub001/pkg/tmesh"
)

// uvTolerance decides whether a parameter-space edge direction counts as
// cardinal during conversion.
const uvTolerance = 1e-7

// ToTMesh refines a copy of the mesh the given number of levels and
// re-parametrizes it into a flat T-mesh control net. Parameter coordinates
// are assigned by a breadth-first unfolding seeded at face 0, whose corners
// are fixed to a rectangle sized by its first two boundary knot intervals;
// every newly visited face derives its two unknown corners from one known
// edge and a 90-degree rotated direction. Coordinates are then affinely
// normalized to [0,1]^2.
//
// Edges that come out diagonal or degenerate in parameter space are seam
// artifacts of the unfolding and are dropped from the connectivity; a
// direction left unpopulated borrows its weight from the nearest populated
// one. The receiver itself is never mutated.
//
// Fails with MALFORMED_MESH if the mesh is empty or face 0 is not a
// 4-cycle.
func (m *Tnurcc[P]) ToTMesh(levels int) (*tmesh.Mesh[P], error) {
	if len(m.faces) == 0 || len(m.points) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedMesh, "cannot convert an empty mesh")
	}

	work := m.Clone()
	for i := 0; i < levels; i++ {
		if err := work.GlobalSubdivide(); err != nil {
			return nil, err
		}
	}

	uv, err := work.unfold()
	if err != nil {
		return nil, err
	}
	normalizeUV(uv)
	return work.buildTMesh(uv)
}

// unfold assigns a raw 2D coordinate to every vertex via BFS over faces,
// starting at face 0.
func (m *Tnurcc[P]) unfold() ([]geom.Vec2, error) {
	uv := make([]geom.Vec2, len(m.points))
	known := make([]bool, len(m.points))

	seedEdges, seedVerts, err := m.faceQuad(0)
	if err != nil {
		return nil, err
	}
	k0 := m.edges[seedEdges[0]].Knot
	k1 := m.edges[seedEdges[1]].Knot
	seedUV := [4]geom.Vec2{geom.V2(0, 0), geom.V2(k0, 0), geom.V2(k0, k1), geom.V2(0, k1)}
	for i, v := range seedVerts {
		uv[v] = seedUV[i]
		known[v] = true
	}

	visited := make([]bool, len(m.faces))
	visited[0] = true
	queue := []FaceID{0}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		edges, verts, err := m.faceQuad(f)
		if err != nil {
			return nil, err
		}
		if f != 0 {
			if err := m.placeFace(edges, verts, uv, known); err != nil {
				return nil, err
			}
		}
		for _, e := range edges {
			ed := &m.edges[e]
			next := ed.FaceLeft
			if next == f {
				next = ed.FaceRight
			}
			if next != NoFace && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return uv, nil
}

// faceQuad enumerates a face boundary and requires exactly 4 edges.
func (m *Tnurcc[P]) faceQuad(f FaceID) ([]EdgeID, []PointID, error) {
	edges, verts, err := m.FaceBoundary(f)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeMalformedMesh, err, "face %d", f)
	}
	if len(edges) != 4 {
		return nil, nil, errors.New(errors.ErrCodeMalformedMesh,
			"face %d has %d boundary edges, want 4", f, len(edges))
	}
	return edges, verts, nil
}

// placeFace derives the unknown corners of a face from one boundary edge
// whose endpoints already carry coordinates, stepping perpendicular to it
// by the adjacent knot intervals. Coordinates once assigned are kept.
func (m *Tnurcc[P]) placeFace(edges []EdgeID, verts []PointID, uv []geom.Vec2, known []bool) error {
	for i := 0; i < 4; i++ {
		a, b := verts[i], verts[(i+1)%4]
		if !known[a] || !known[b] {
			continue
		}
		dir := uv[b].Sub(uv[a])
		perp := geom.V2(0, 1)
		if l := dir.Length(); l > 0 {
			perp = dir.Perp().Scale(1 / l)
		}
		if c := verts[(i+2)%4]; !known[c] {
			uv[c] = uv[b].Add(perp.Scale(m.edges[edges[(i+1)%4]].Knot))
			known[c] = true
		}
		if d := verts[(i+3)%4]; !known[d] {
			uv[d] = uv[a].Add(perp.Scale(m.edges[edges[(i+3)%4]].Knot))
			known[d] = true
		}
		return nil
	}
	return errors.New(errors.ErrCodeMalformedMesh,
		"no boundary edge of the face has two placed endpoints")
}

// normalizeUV maps all coordinates affinely onto [0,1]^2 in place.
func normalizeUV(uv []geom.Vec2) {
	if len(uv) == 0 {
		return
	}
	min, max := uv[0], uv[0]
	for _, p := range uv[1:] {
		for a := 0; a < 2; a++ {
			min[a] = math.Min(min[a], p[a])
			max[a] = math.Max(max[a], p[a])
		}
	}
	var span geom.Vec2
	for a := 0; a < 2; a++ {
		span[a] = max[a] - min[a]
		if span[a] == 0 {
			span[a] = 1
		}
	}
	for i := range uv {
		for a := 0; a < 2; a++ {
			uv[i][a] = (uv[i][a] - min[a]) / span[a]
		}
	}
}

// buildTMesh converts every vertex into a T-mesh control point, classifying
// its incident edges into cardinal directions by their normalized parameter
// delta.
func (m *Tnurcc[P]) buildTMesh(uv []geom.Vec2) (*tmesh.Mesh[P], error) {
	pts := make([]tmesh.ControlPoint[P], len(m.points))
	for i := range m.points {
		p := PointID(i)
		cp := tmesh.ControlPoint[P]{Point: m.points[i].Point, UV: uv[i]}
		for d := range cp.Conn {
			cp.Conn[d].Neighbor = -1
		}

		radial, err := m.RadialEdges(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedMesh, err, "point %d", p)
		}
		for _, e := range radial {
			q := m.edges[e].otherEnd(p)
			delta := uv[q].Sub(uv[p])
			dir, ok := cardinal(delta)
			if !ok {
				continue
			}
			cp.Conn[dir] = tmesh.Connection{Neighbor: int(q), Weight: delta.Length()}
		}
		fillMissingWeights(&cp)
		pts[i] = cp
	}
	return &tmesh.Mesh[P]{Points: pts}, nil
}

// cardinal classifies a parameter delta as one of the four axis directions.
// Diagonal or degenerate deltas, seam artifacts of the unfolding, report
// ok == false.
func cardinal(d geom.Vec2) (tmesh.Direction, bool) {
	switch {
	case math.Abs(d[1]) <= uvTolerance && d[0] > uvTolerance:
		return tmesh.East, true
	case math.Abs(d[1]) <= uvTolerance && d[0] < -uvTolerance:
		return tmesh.West, true
	case math.Abs(d[0]) <= uvTolerance && d[1] > uvTolerance:
		return tmesh.North, true
	case math.Abs(d[0]) <= uvTolerance && d[1] < -uvTolerance:
		return tmesh.South, true
	}
	return 0, false
}

// fillMissingWeights gives every unpopulated direction the weight of the
// nearest populated one, so local knot vectors never collapse at seams.
func fillMissingWeights[P geom.Point[P]](cp *tmesh.ControlPoint[P]) {
	for d := 0; d < 4; d++ {
		if cp.Conn[d].Neighbor >= 0 {
			continue
		}
		for _, off := range [3]int{1, 3, 2} {
			if nb := cp.Conn[(d+off)%4]; nb.Neighbor >= 0 {
				cp.Conn[d].Weight = nb.Weight
				break
			}
		}
	}
}
