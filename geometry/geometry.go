package geometry

import "math"

const (
	// Dim is the embedding dimension. It is fixed so results can be drawn on a plane.
	Dim = 2

	// DefaultEpsilon keeps denominators away from zero and points away from the boundary.
	DefaultEpsilon = 1e-6

	// MinEpsilon is the smallest epsilon for which 1−eps stays measurably below 1
	// after rounding, so clipped points remain strictly inside the disk.
	MinEpsilon = 1e-12
)

// Point is a position in ℝ². Valid embedding points satisfy Norm2() < 1.
type Point [Dim]float64

// Dot returns the Euclidean inner product p·q.
func (p Point) Dot(q Point) float64 {
	return p[0]*q[0] + p[1]*q[1]
}

// Norm2 returns the squared Euclidean norm ‖p‖².
func (p Point) Norm2() float64 {
	return p.Dot(p)
}

// Scale returns s·p.
func (p Point) Scale(s float64) Point {
	return Point{p[0] * s, p[1] * s}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1]}
}

// Inside reports whether p lies strictly inside the open unit disk.
func Inside(p Point) bool {
	return p.Norm2() < 1
}

// Context carries the intermediate values of a Distance call.
//
// Gradient consumes it so that the dot products and clamped denominators are
// computed exactly once per candidate pair.
type Context struct {
	U, V       Point   // endpoints as seen by Distance
	UU, UV, VV float64 // ‖u‖², u·v, ‖v‖²
	Alpha      float64 // max(eps, 1−‖u‖²)
	Beta       float64 // max(eps, 1−‖v‖²)
	Gamma      float64 // max(1, 1 + 2‖u−v‖²/(α·β)); d = acosh(γ)
}

// Distance returns the hyperbolic distance between u and v together with the
// Context needed by Gradient.
//
// Algorithm:
//  1. uu = u·u, uv = u·v, vv = v·v.
//  2. α = max(eps, 1−uu), β = max(eps, 1−vv).
//  3. γ = max(1, 1 + 2((uu+vv) − 2uv)/(α·β)).
//  4. d = acosh(γ).
//
// The squared difference is formed as (uu+vv) − 2uv, which is bitwise symmetric
// in u and v and exactly zero when u == v.
//
// Complexity: O(1).
func Distance(u, v Point, eps float64) (float64, Context) {
	uu, uv, vv := u.Dot(u), u.Dot(v), v.Dot(v)
	alpha := math.Max(eps, 1-uu)
	beta := math.Max(eps, 1-vv)
	gamma := math.Max(1, 1+2*((uu+vv)-2*uv)/(alpha*beta))

	return math.Acosh(gamma), Context{
		U: u, V: v,
		UU: uu, UV: uv, VV: vv,
		Alpha: alpha, Beta: beta, Gamma: gamma,
	}
}

// Gradient back-propagates upstream = ∂L/∂d through the distance recorded in ctx
// and returns the Riemannian gradients with respect to u and v.
//
// The Euclidean gradient is multiplied by α²/4 (for u) and β²/4 (for v), the
// inverse of the Poincaré metric tensor, so callers apply it with a plain
// add-and-clip step (see Apply).
//
// ok is false when γ == 1: the distance is exactly zero, its derivative is
// undefined and the endpoints must be left as they are.
//
// Complexity: O(1).
func Gradient(upstream float64, ctx Context) (gu, gv Point, ok bool) {
	if ctx.Gamma == 1 {
		return Point{}, Point{}, false
	}

	c := upstream * 4 / math.Sqrt(ctx.Gamma*ctx.Gamma-1) / ctx.Alpha / ctx.Beta
	cu := c * ctx.Alpha * ctx.Alpha / 4
	cv := c * ctx.Beta * ctx.Beta / 4

	ku := (ctx.VV - 2*ctx.UV + 1) / ctx.Alpha
	kv := (ctx.UU - 2*ctx.UV + 1) / ctx.Beta

	gu = Point{
		cu * (ku*ctx.U[0] - ctx.V[0]),
		cu * (ku*ctx.U[1] - ctx.V[1]),
	}
	gv = Point{
		cv * (kv*ctx.V[0] - ctx.U[0]),
		cv * (kv*ctx.V[1] - ctx.U[1]),
	}

	return gu, gv, true
}

// Apply returns p + coeff·grad, rescaled onto radius 1−eps when it would leave
// the disk of that radius.
//
// The squared norm of the candidate is expanded as ‖p‖² + 2c(p·g) + c²‖g‖², so a
// zero coefficient leaves a valid point bit-for-bit unchanged. When the
// expansion overflows (huge gradients), the result is the boundary point in
// the direction of the step.
//
// The output always satisfies Inside for finite inputs.
//
// Complexity: O(1).
func Apply(p Point, coeff float64, grad Point, eps float64) Point {
	thresh := 1 - eps
	pp, pg, gg := p.Dot(p), p.Dot(grad), grad.Dot(grad)
	sq := pp + 2*coeff*pg + coeff*coeff*gg
	x := Point{p[0] + coeff*grad[0], p[1] + coeff*grad[1]}

	if math.IsInf(sq, 0) || math.IsNaN(sq) || math.IsInf(x[0], 0) || math.IsInf(x[1], 0) {
		return onBoundary(x, coeff, grad, thresh)
	}
	if sq > thresh*thresh {
		return x.Scale(thresh / math.Sqrt(sq))
	}

	return x
}

// onBoundary projects an overflowing step onto radius thresh.
func onBoundary(x Point, coeff float64, grad Point, thresh float64) Point {
	var dir Point
	if math.IsInf(x[0], 0) || math.IsInf(x[1], 0) {
		// Only the infinite components survive at this scale.
		for i := range x {
			if math.IsInf(x[i], 0) {
				dir[i] = math.Copysign(1, x[i])
			}
		}
	} else {
		m := math.Max(math.Abs(x[0]), math.Abs(x[1]))
		if m == 0 || math.IsNaN(m) {
			// Degenerate; fall back to the raw step direction.
			x = grad.Scale(math.Copysign(1, coeff))
			m = math.Max(math.Abs(x[0]), math.Abs(x[1]))
			if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
				return Point{}
			}
		}
		dir = x.Scale(1 / m)
	}

	return dir.Scale(thresh / math.Hypot(dir[0], dir[1]))
}
