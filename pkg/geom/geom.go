// Package geom provides the vector types and the point constraint used by the
// control-mesh packages.
//
// The mesh algorithms are generic over their control-point type: anything with
// vector-space operations (addition, subtraction, scalar multiplication) can
// serve as a control point. The zero value of the type is taken as the origin,
// which is what the weighted averages in the subdivision rules fold into.
//
// [Vec3] is the standard instantiation, a thin layer over the float64 vectors
// from github.com/ungerik/go3d. [Vec2] plays the same role for the 2D
// parameter space used during T-mesh conversion.
package geom

import (
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Point is the constraint for control-point types. Implementations must be
// value types whose zero value is the origin, with the usual vector-space
// operations. All three methods must return new values and leave the receiver
// untouched.
type Point[P any] interface {
	Add(P) P
	Sub(P) P
	Scale(float64) P
}

// Vec3 is a 3D control point. It is a defined type over go3d's vec3.T, so it
// can be indexed directly (v[0], v[1], v[2]).
type Vec3 vec3.T

// V3 builds a Vec3 from its components.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3(vec3.Add((*vec3.T)(&v), (*vec3.T)(&w)))
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3(vec3.Sub((*vec3.T)(&v), (*vec3.T)(&w)))
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3((*vec3.T)(&v).Scaled(s))
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return vec3.Dot((*vec3.T)(&v), (*vec3.T)(&w))
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return (*vec3.T)(&v).Length()
}

// ApproxEqual reports whether v and w agree component-wise within tol.
func (v Vec3) ApproxEqual(w Vec3, tol float64) bool {
	return math.Abs(v[0]-w[0]) <= tol &&
		math.Abs(v[1]-w[1]) <= tol &&
		math.Abs(v[2]-w[2]) <= tol
}

// Vec2 is a 2D parameter-space point over go3d's vec2.T.
type Vec2 vec2.T

// V2 builds a Vec2 from its components.
func V2(x, y float64) Vec2 { return Vec2{x, y} }

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2(vec2.Add((*vec2.T)(&v), (*vec2.T)(&w)))
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2(vec2.Sub((*vec2.T)(&v), (*vec2.T)(&w)))
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2((*vec2.T)(&v).Scaled(s))
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return (*vec2.T)(&v).Length()
}

// Perp returns v rotated 90 degrees anticlockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v[1], v[0]} }

// ApproxEqual reports whether v and w agree component-wise within tol.
func (v Vec2) ApproxEqual(w Vec2, tol float64) bool {
	return math.Abs(v[0]-w[0]) <= tol && math.Abs(v[1]-w[1]) <= tol
}
