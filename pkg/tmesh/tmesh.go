// Package tmesh holds the evaluator-ready T-mesh control net produced by
// converting a subdivided control mesh. Every control point carries a
// normalized 2D parameter coordinate and up to four cardinal-direction
// connections; local knot vectors are inferred lazily from the connection
// weights, by marching outward in each direction [Sederberg2004].
//
// [Sederberg2004]: https://dl.acm.org/doi/10.1145/1015706.1015715
package tmesh

import (
	"math"

	"github.com/ricosjp/truck-sub001/pkg/geom"
)

// Direction indexes the four cardinal connection slots of a control point.
type Direction int

const (
	// East points toward increasing u.
	East Direction = iota
	// North points toward increasing v.
	North
	// West points toward decreasing u.
	West
	// South points toward decreasing v.
	South
)

// Connection links a control point to a cardinal neighbor. Neighbor is -1
// when the direction has no neighbor; Weight still carries a knot interval
// so local knot vectors stay well formed near seams.
type Connection struct {
	Neighbor int
	Weight   float64
}

// ControlPoint is one node of the T-mesh.
type ControlPoint[P geom.Point[P]] struct {
	// Point is the geometric position.
	Point P
	// UV is the parameter coordinate, normalized to [0,1]^2.
	UV geom.Vec2
	// Conn holds the four cardinal connections, indexed by Direction.
	Conn [4]Connection

	// knots caches the local [5]-knot vectors per parameter axis.
	knots      [2][5]float64
	knotsReady bool
}

// Mesh is a flat T-mesh control net.
type Mesh[P geom.Point[P]] struct {
	Points []ControlPoint[P]
}

// Evaluate returns the surface point at parameters (u, v) as the rational
// blend of all control points whose local cubic basis covers the sample.
// When no basis covers it (outside every local support) the nearest control
// point in parameter space is returned instead.
func (m *Mesh[P]) Evaluate(u, v float64) P {
	var num P
	var den float64
	for i := range m.Points {
		cp := &m.Points[i]
		cp.ensureKnots(m)
		w := basis(cp.knots[0], u) * basis(cp.knots[1], v)
		if w == 0 {
			continue
		}
		num = num.Add(cp.Point.Scale(w))
		den += w
	}
	if den > 1e-12 {
		return num.Scale(1 / den)
	}
	return m.nearest(u, v)
}

// nearest returns the control point closest to (u, v) in parameter space.
func (m *Mesh[P]) nearest(u, v float64) P {
	var best P
	bestDist := math.Inf(1)
	for i := range m.Points {
		d := m.Points[i].UV.Sub(geom.V2(u, v)).Length()
		if d < bestDist {
			bestDist = d
			best = m.Points[i].Point
		}
	}
	return best
}

// ensureKnots infers the two local 5-knot vectors of cp by marching two
// steps outward per cardinal direction. When a neighbor is missing, its
// interval repeats the last known one.
func (cp *ControlPoint[P]) ensureKnots(m *Mesh[P]) {
	if cp.knotsReady {
		return
	}
	march := func(dir Direction) (w1, w2 float64) {
		w1 = cp.Conn[dir].Weight
		w2 = w1
		if nb := cp.Conn[dir].Neighbor; nb >= 0 && nb < len(m.Points) {
			w2 = m.Points[nb].Conn[dir].Weight
		}
		return w1, w2
	}
	wl1, wl2 := march(West)
	we1, we2 := march(East)
	ws1, ws2 := march(South)
	wn1, wn2 := march(North)
	u, v := cp.UV[0], cp.UV[1]
	cp.knots[0] = [5]float64{u - wl1 - wl2, u - wl1, u, u + we1, u + we1 + we2}
	cp.knots[1] = [5]float64{v - ws1 - ws2, v - ws1, v, v + wn1, v + wn1 + wn2}
	cp.knotsReady = true
}

// basis evaluates the single cubic B-spline basis function defined over a
// local 5-knot vector, by the Cox-de Boor recursion with the usual 0/0 -> 0
// convention. The right endpoint of the support is treated as inclusive.
func basis(k [5]float64, t float64) float64 {
	var n [4]float64
	for i := 0; i < 4; i++ {
		switch {
		case k[i] <= t && t < k[i+1]:
			n[i] = 1
		case t == k[4] && k[i] < t && k[i+1] == k[4]:
			n[i] = 1
		}
	}
	frac := func(num, den float64) float64 {
		if den == 0 {
			return 0
		}
		return num / den
	}
	for d := 1; d <= 3; d++ {
		for i := 0; i+d < 4; i++ {
			n[i] = frac(t-k[i], k[i+d]-k[i])*n[i] +
				frac(k[i+d+1]-t, k[i+d+1]-k[i+1])*n[i+1]
		}
	}
	return n[0]
}
