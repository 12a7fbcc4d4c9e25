package collide

// Vec2 and Vec3 are small value types mirroring the mgl32/mgl64 method set.
// They exist because mathgl ships fixed-precision packages only and the
// library is generic over Scalar; mgl adapters live in mgl.go.

type Vec2[S Scalar] struct {
	X, Y S
}

func V2[S Scalar](x, y S) Vec2[S] { return Vec2[S]{x, y} }

func (v Vec2[S]) Add(o Vec2[S]) Vec2[S] { return Vec2[S]{v.X + o.X, v.Y + o.Y} }
func (v Vec2[S]) Sub(o Vec2[S]) Vec2[S] { return Vec2[S]{v.X - o.X, v.Y - o.Y} }
func (v Vec2[S]) Mul(c S) Vec2[S]       { return Vec2[S]{v.X * c, v.Y * c} }
func (v Vec2[S]) Dot(o Vec2[S]) S       { return v.X*o.X + v.Y*o.Y }
func (v Vec2[S]) LenSqr() S             { return v.X*v.X + v.Y*v.Y }
func (v Vec2[S]) Len() S                { return sqrt(v.LenSqr()) }

// Cross is the z component of the 3D cross product of the two vectors
// lifted into the plane.
func (v Vec2[S]) Cross(o Vec2[S]) S { return v.X*o.Y - v.Y*o.X }

func (v Vec2[S]) Normalize() Vec2[S] {
	l := v.Len()
	if l <= 0 {
		return Vec2[S]{}
	}
	return v.Mul(1 / l)
}

// NormalizeTo scales the vector to the given length.
func (v Vec2[S]) NormalizeTo(length S) Vec2[S] {
	return v.Normalize().Mul(length)
}

// crossSV is the cross product of a z-axis angular scalar with a planar
// vector, the 2D counterpart of an angular velocity cross offset.
func crossSV[S Scalar](s S, v Vec2[S]) Vec2[S] {
	return Vec2[S]{-s * v.Y, s * v.X}
}

// tripleProduct computes (a x b) x c expanded into the plane, used by the
// simplex reduction to steer the search direction perpendicular to an edge.
func tripleProduct[S Scalar](a, b, c Vec2[S]) Vec2[S] {
	ac := a.X*c.X + a.Y*c.Y
	bc := b.X*c.X + b.Y*c.Y
	return Vec2[S]{b.X*ac - a.X*bc, b.Y*ac - a.Y*bc}
}

type Vec3[S Scalar] struct {
	X, Y, Z S
}

func V3[S Scalar](x, y, z S) Vec3[S] { return Vec3[S]{x, y, z} }

func (v Vec3[S]) Add(o Vec3[S]) Vec3[S] { return Vec3[S]{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3[S]) Sub(o Vec3[S]) Vec3[S] { return Vec3[S]{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3[S]) Mul(c S) Vec3[S]       { return Vec3[S]{v.X * c, v.Y * c, v.Z * c} }
func (v Vec3[S]) Dot(o Vec3[S]) S       { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3[S]) LenSqr() S             { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3[S]) Len() S                { return sqrt(v.LenSqr()) }

func (v Vec3[S]) Cross(o Vec3[S]) Vec3[S] {
	return Vec3[S]{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3[S]) Normalize() Vec3[S] {
	l := v.Len()
	if l <= 0 {
		return Vec3[S]{}
	}
	return v.Mul(1 / l)
}

func (v Vec3[S]) NormalizeTo(length S) Vec3[S] {
	return v.Normalize().Mul(length)
}

// crossABA computes (a x b) x a, the direction from a line through a toward b.
func crossABA[S Scalar](a, b Vec3[S]) Vec3[S] {
	return a.Cross(b).Cross(a)
}

// vector is the method set the dimension-independent algorithms need.
// Vec2[S] and Vec3[S] both satisfy it.
type vector[S Scalar, V any] interface {
	Add(V) V
	Sub(V) V
	Mul(S) V
	Dot(V) S
	LenSqr() S
	Len() S
}

// barycentric returns the coordinates (u, v, w) of p in the triangle abc.
func barycentric[S Scalar, V vector[S, V]](p, a, b, c V) (S, S, S) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if abs(denom) <= 0 {
		return 1, 0, 0
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return 1 - v - w, v, w
}

// Mat3 is a row-major 3x3 matrix, used for 3D inertia tensors.
type Mat3[S Scalar] [3][3]S

func Mat3Identity[S Scalar]() Mat3[S] {
	return Mat3[S]{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func Mat3Diagonal[S Scalar](d S) Mat3[S] {
	return Mat3[S]{{d, 0, 0}, {0, d, 0}, {0, 0, d}}
}

func (m Mat3[S]) MulVec(v Vec3[S]) Vec3[S] {
	return Vec3[S]{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Mat3[S]) Mul(o Mat3[S]) Mat3[S] {
	var r Mat3[S]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

func (m Mat3[S]) Transpose() Mat3[S] {
	var r Mat3[S]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Inverse returns the matrix inverse, or the zero matrix when m is singular.
func (m Mat3[S]) Inverse() Mat3[S] {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
	if abs(det) <= 0 {
		return Mat3[S]{}
	}
	inv := 1 / det
	return Mat3[S]{
		{c00 * inv, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv},
		{c01 * inv, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv},
		{c02 * inv, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv},
	}
}
