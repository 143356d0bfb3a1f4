package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroVector is the panic value for normalizing a zero-length vector.
var ErrZeroVector = errors.New("geom: zero-length vector has no direction")

// Vector is a 2D vector. All operations return a new value.
type Vector struct {
	X float64
	Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// UnitX is the x axis unit vector.
var UnitX = Vector{X: 1}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

func (v Vector) Div(f float64) Vector {
	return Vector{X: v.X / f, Y: v.Y / f}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product v x other.
func (v Vector) Cross(other Vector) float64 {
	return v.X*other.Y - v.Y*other.X
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector) DistanceTo(other Vector) float64 {
	return v.Sub(other).Length()
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Unit returns the vector of length 1 with the same direction.
// It panics with ErrZeroVector when v is the zero vector.
func (v Vector) Unit() Vector {
	n := v.Length()
	if n == 0 {
		panic(ErrZeroVector)
	}
	return Vector{X: v.X / n, Y: v.Y / n}
}

// ScaleTo returns a vector with the direction of v and the given length.
// Same precondition as Unit.
func (v Vector) ScaleTo(length float64) Vector {
	return v.Unit().Scale(length)
}

func (v Vector) Invert() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Angle returns the unsigned angle in [0, π] between v and other.
// The cosine is clamped to [-1, 1] since rounding can push it slightly out
// of acos's domain for near-parallel vectors.
func (v Vector) Angle(other Vector) float64 {
	c := v.Dot(other) / (v.Length() * other.Length())
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// DirectionAngle returns the signed angle in (-π, π] from the x axis to v.
// The sign is the sign of UnitX.Cross(v).
func (v Vector) DirectionAngle() float64 {
	a := UnitX.Angle(v)
	if UnitX.Cross(v) < 0 {
		return -a
	}
	return a
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vector) Rotate(angle float64) Vector {
	cs, sn := math.Cos(angle), math.Sin(angle)
	return Vector{
		X: v.X*cs - v.Y*sn,
		Y: v.X*sn + v.Y*cs,
	}
}

// ApproxEqual reports whether both components differ by at most tol.
func (v Vector) ApproxEqual(other Vector, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.4g, %.4g)", v.X, v.Y)
}

// FromAngle returns the vector of the given length pointing at angle.
func FromAngle(angle, length float64) Vector {
	return Vector{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// NormalizeAngle maps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
