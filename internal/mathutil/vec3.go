package mathutil

import "math"

// Epsilon is substituted for near-zero denominators (vector length, depth).
const Epsilon = 1e-9

// World axes.
var (
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v / |v|. A near-zero vector is divided by Epsilon instead,
// so the result stays finite but its direction is meaningless; callers that
// need a fallback must check the input length themselves.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < Epsilon {
		l = Epsilon
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Angle returns the unsigned angle between a and b in radians.
// The cosine is clamped to [-1, 1] before acos.
func (a Vec3) Angle(b Vec3) float64 {
	c := a.Normalize().Dot(b.Normalize())
	return math.Acos(Clamp(c, -1, 1))
}

// RotateAxis rotates v by angle radians about axis using Rodrigues' formula:
//
//	v·cosθ + (k×v)·sinθ + k·(k·v)·(1−cosθ)
//
// with k = axis normalized. Positive angles follow the right-hand rule about axis.
func RotateAxis(v, axis Vec3, angle float64) Vec3 {
	k := axis.Normalize()
	s, c := math.Sincos(angle)
	t1 := v.Scale(c)
	t2 := k.Cross(v).Scale(s)
	t3 := k.Scale(k.Dot(v) * (1 - c))
	return t1.Add(t2).Add(t3)
}

// BasisFromNormal returns unit vectors e1, e2 spanning the plane orthogonal to n,
// with e1 × e2 = n̂. The seed axis is world Y unless n is within ~26° of Y,
// in which case world X is used. The result depends only on n.
func BasisFromNormal(n Vec3) (e1, e2 Vec3) {
	nn := n.Normalize()
	seed := UnitY
	if math.Abs(nn[1]) >= 0.9 {
		seed = UnitX
	}
	e1 = seed.Cross(nn)
	if e1.Len() < 1e-6 {
		e1 = UnitX
	}
	e1 = e1.Normalize()
	e2 = nn.Cross(e1).Normalize()
	return e1, e2
}

// Circle returns segments+1 points of the circle of the given radius around the origin
// in the plane orthogonal to normal. The first and last points coincide.
func Circle(normal Vec3, radius float64, segments int) []Vec3 {
	e1, e2 := BasisFromNormal(normal)
	pts := make([]Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments) * 2 * math.Pi
		s, c := math.Sincos(t)
		pts[i] = e1.Scale(c * radius).Add(e2.Scale(s * radius))
	}
	return pts
}

// Vec2 is a 2D point or vector, used for panel and screen coordinates.
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a[0] + b[0], a[1] + b[1]} }

func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a[0] - b[0], a[1] - b[1]} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v[0] * s, v[1] * s} }

func (v Vec2) Len() float64 { return math.Hypot(v[0], v[1]) }
