package tnurcc

import (
	"github.com/ricosjp/truck-sub001/pkg/errors"
)

// GlobalSubdivide performs one level of Catmull-Clark refinement generalized
// to heterogeneous knot intervals. All geometric rules are computed from the
// pre-refinement mesh; the topology is then rewritten in place, splitting
// every edge at its edge point and partitioning every face around a new
// interior vertex.
//
// For a closed mesh with V points, E edges and F faces the refined mesh has
// V+E+F points, 2E+4F edges and 4F quadrilateral faces.
//
// Fails with MALFORMED_FACE on a pre-existing inconsistency (an unenumerable
// face boundary, a vertex with no incident edge). A failed call leaves the
// mesh partially mutated; callers must discard it and restart from a Clone.
func (m *Tnurcc[P]) GlobalSubdivide() error {
	nE, nF := len(m.edges), len(m.faces)
	if nF == 0 {
		return nil
	}

	facePts, err := m.facePoints()
	if err != nil {
		return err
	}
	edgePts, mids := m.edgePoints(facePts)
	newPos, err := m.vertexPoints(facePts, mids)
	if err != nil {
		return err
	}
	for i := range newPos {
		m.points[i].Point = newPos[i]
	}

	// conj and splitPt track the two halves of original edges as faces are
	// rewritten; parent maps a conjugate half back to its original.
	conj := make([]EdgeID, nE)
	splitPt := make([]PointID, nE)
	for i := range conj {
		conj[i] = NoEdge
		splitPt[i] = NoPoint
	}
	parent := make(map[EdgeID]EdgeID)

	for f := FaceID(0); f < FaceID(nF); f++ {
		if err := m.refineFace(f, facePts[f], edgePts, conj, splitPt, parent); err != nil {
			return err
		}
	}

	m.rebuildExtraordinary()
	return nil
}

// facePoints computes the knot-interval-weighted interior point of every
// face. Vertex i of a face is weighted by the product of its two adjacent
// knot interval sums, a 5-point window over the wrapped boundary.
func (m *Tnurcc[P]) facePoints() ([]P, error) {
	out := make([]P, len(m.faces))
	for f := range m.faces {
		edges, verts, err := m.FaceBoundary(FaceID(f))
		if err != nil {
			return nil, err
		}
		n := len(edges)
		knot := func(i int) float64 { return m.edges[edges[((i%n)+n)%n]].Knot }

		var acc P
		var total float64
		for i := 0; i < n; i++ {
			w := (knot(i-2) + knot(i-1)) * (knot(i) + knot(i+1))
			acc = acc.Add(m.points[verts[i]].Point.Scale(w))
			total += w
		}
		if total > 0 {
			out[f] = acc.Scale(1 / total)
			continue
		}
		// All-zero intervals degenerate to the centroid.
		var centroid P
		for _, v := range verts {
			centroid = centroid.Add(m.points[v].Point)
		}
		out[f] = centroid.Scale(1 / float64(n))
	}
	return out, nil
}

// edgePoints computes the split position of every edge (a blend of the two
// adjacent face points and a locally weighted midpoint) and, alongside it,
// the plain midpoint used by the vertex rule.
func (m *Tnurcc[P]) edgePoints(facePts []P) (edgePts, mids []P) {
	edgePts = make([]P, len(m.edges))
	mids = make([]P, len(m.edges))
	for i := range m.edges {
		e := &m.edges[i]
		a := m.points[e.Origin].Point
		b := m.points[e.Dest].Point
		mids[i] = a.Add(b).Scale(0.5)

		ka := m.neighborInterval(e.Origin, EdgeID(i))
		kb := m.neighborInterval(e.Dest, EdgeID(i))
		mid := mids[i]
		if denom := 2 * (ka + e.Knot + kb); denom > 0 {
			mid = a.Scale((e.Knot + 2*kb) / denom).Add(b.Scale((e.Knot + 2*ka) / denom))
		}
		faceAvg := facePts[e.FaceLeft].Add(facePts[e.FaceRight]).Scale(0.5)
		edgePts[i] = mid.Add(faceAvg).Scale(0.5)
	}
	return edgePts, mids
}

// neighborInterval averages the knot intervals of the other edges incident
// at p, falling back to the edge's own interval when p has no others.
func (m *Tnurcc[P]) neighborInterval(p PointID, e EdgeID) float64 {
	radial, err := m.RadialEdges(p)
	if err != nil {
		return m.edges[e].Knot
	}
	var sum float64
	var count int
	for _, r := range radial {
		if r == e {
			continue
		}
		sum += m.edges[r].Knot
		count++
	}
	if count == 0 {
		return m.edges[e].Knot
	}
	return sum / float64(count)
}

// vertexPoints applies the Catmull-Clark vertex rule to every existing
// point: the old position scaled by (valence-3)/valence plus the averaged
// face and edge midpoints of its radial fan.
func (m *Tnurcc[P]) vertexPoints(facePts, mids []P) ([]P, error) {
	out := make([]P, len(m.points))
	for i := range m.points {
		p := PointID(i)
		radial, err := m.RadialEdges(p)
		if err != nil {
			return nil, err
		}
		n := float64(len(radial))

		var faceSum, midSum P
		for _, e := range radial {
			ed := &m.edges[e]
			acwFace := ed.FaceLeft
			if p == ed.Dest {
				acwFace = ed.FaceRight
			}
			faceSum = faceSum.Add(facePts[acwFace])
			midSum = midSum.Add(mids[e])
		}
		out[i] = m.points[i].Point.Scale((n - 3) / n).
			Add(faceSum.Scale(1 / (n * n))).
			Add(midSum.Scale(2 / (n * n)))
	}
	return out, nil
}

// borderItem is one original border edge of a face mid-rewrite: its two
// halves in this face's anticlockwise order and the vertex between them.
type borderItem struct {
	first, second EdgeID
	mid           PointID
}

// refineFace splits the not-yet-split border edges of f, inserts the
// interior vertex at facePt, and partitions f into one quadrilateral per
// original border edge. The first quadrilateral reuses f's handle.
func (m *Tnurcc[P]) refineFace(f FaceID, facePt P, edgePts []P, conj []EdgeID, splitPt []PointID, parent map[EdgeID]EdgeID) error {
	raw, _, err := m.FaceBoundary(f)
	if err != nil {
		return err
	}

	// The walk may start on the trailing half of an already-split edge;
	// rotate so the grouping below always sees a leading half first.
	if m.isTrailingHalf(raw[0], f, conj, parent) {
		last := raw[len(raw)-1]
		copy(raw[1:], raw[:len(raw)-1])
		raw[0] = last
	}

	var items []borderItem
	for i := 0; i < len(raw); i++ {
		e := raw[i]
		if p, ok := parent[e]; ok {
			items = append(items, borderItem{first: e, second: p, mid: splitPt[p]})
			i++
			continue
		}
		orig := int(e)
		if orig < len(conj) && conj[orig] != NoEdge {
			items = append(items, borderItem{first: e, second: conj[orig], mid: splitPt[orig]})
			i++
			continue
		}
		onLeft := f == m.edges[e].FaceLeft
		mid, c, err := m.SplitEdge(e, edgePts[orig], 0.5)
		if err != nil {
			return err
		}
		conj[orig] = c
		splitPt[orig] = mid
		parent[c] = e
		if onLeft {
			items = append(items, borderItem{first: e, second: c, mid: mid})
		} else {
			items = append(items, borderItem{first: c, second: e, mid: mid})
		}
	}

	n := len(items)
	if n < 2 {
		return errors.New(errors.ErrCodeMalformedFace,
			"face %d has %d border edges after splitting", f, n)
	}

	// Allocate the sub-face handles up front: the first reuses f.
	sub := make([]FaceID, n)
	sub[0] = f
	for i := 1; i < n; i++ {
		sub[i] = m.addFace(NoEdge, [4]PointID{NoPoint, NoPoint, NoPoint, NoPoint})
	}

	center := m.addPoint(facePt, n, NoEdge)
	radial := make([]EdgeID, n)
	for i := 0; i < n; i++ {
		knot := m.edges[items[(i+1)%n].first].Knot
		radial[i] = m.addEdge(center, items[i].mid, knot, sub[i], sub[(i+n-1)%n])
		m.points[items[i].mid].Valence++
	}
	m.points[center].Incoming = radial[0]

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		corner := m.edges[items[i].second].otherEnd(items[i].mid)
		m.faces[sub[i]] = Face{
			Edge:    radial[i],
			Corners: [4]PointID{center, items[i].mid, corner, items[next].mid},
		}
		m.setFaceSide(items[i].second, f, sub[i])
		m.setFaceSide(items[next].first, f, sub[i])
	}

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		pairs := [4][2]EdgeID{
			{radial[i], items[i].second},
			{items[i].second, items[next].first},
			{items[next].first, radial[next]},
			{radial[next], radial[i]},
		}
		for _, pr := range pairs {
			if err := m.Connect(pr[0], pr[1]); err != nil {
				return errors.Wrap(errors.ErrCodeMalformedFace, err,
					"pairing refined boundary of face %d", sub[i])
			}
		}
	}
	return nil
}

// isTrailingHalf reports whether e is the second half of a split edge as
// seen from face f's anticlockwise boundary order.
func (m *Tnurcc[P]) isTrailingHalf(e EdgeID, f FaceID, conj []EdgeID, parent map[EdgeID]EdgeID) bool {
	if p, ok := parent[e]; ok {
		// A conjugate trails its original on the original's left face.
		return f == m.edges[p].FaceLeft
	}
	if int(e) < len(conj) && conj[int(e)] != NoEdge {
		// A split original trails its conjugate on its right face.
		return f == m.edges[e].FaceRight
	}
	return false
}
