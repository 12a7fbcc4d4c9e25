package collide

// Rot2 is a 2D rotation kept as its sine and cosine.
type Rot2[S Scalar] struct {
	Cos, Sin S
}

func Rot2Identity[S Scalar]() Rot2[S] { return Rot2[S]{Cos: 1} }

func Rot2FromAngle[S Scalar](radians S) Rot2[S] {
	sin, cos := sincos(radians)
	return Rot2[S]{Cos: cos, Sin: sin}
}

func (r Rot2[S]) Rotate(v Vec2[S]) Vec2[S] {
	return Vec2[S]{r.Cos*v.X - r.Sin*v.Y, r.Sin*v.X + r.Cos*v.Y}
}

func (r Rot2[S]) RotateInv(v Vec2[S]) Vec2[S] {
	return Vec2[S]{r.Cos*v.X + r.Sin*v.Y, -r.Sin*v.X + r.Cos*v.Y}
}

func (r Rot2[S]) Mul(o Rot2[S]) Rot2[S] {
	return Rot2[S]{
		Cos: r.Cos*o.Cos - r.Sin*o.Sin,
		Sin: r.Sin*o.Cos + r.Cos*o.Sin,
	}
}

// Quat is a rotation quaternion.
type Quat[S Scalar] struct {
	W, X, Y, Z S
}

func QuatIdentity[S Scalar]() Quat[S] { return Quat[S]{W: 1} }

func QuatFromAxisAngle[S Scalar](axis Vec3[S], radians S) Quat[S] {
	sin, cos := sincos(radians / 2)
	a := axis.NormalizeTo(sin)
	return Quat[S]{W: cos, X: a.X, Y: a.Y, Z: a.Z}
}

func (q Quat[S]) vec() Vec3[S] { return Vec3[S]{q.X, q.Y, q.Z} }

func (q Quat[S]) Rotate(v Vec3[S]) Vec3[S] {
	u := q.vec()
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

func (q Quat[S]) RotateInv(v Vec3[S]) Vec3[S] {
	return q.Conjugate().Rotate(v)
}

// Normalize rescales to unit length, returning the zero quaternion when the
// input has no length to preserve.
func (q Quat[S]) Normalize() Quat[S] {
	l := sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l <= 0 {
		return Quat[S]{}
	}
	return Quat[S]{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

func (q Quat[S]) Conjugate() Quat[S] {
	return Quat[S]{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

func (q Quat[S]) Mul(o Quat[S]) Quat[S] {
	return Quat[S]{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat[S]) Mat3() Mat3[S] {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	return Mat3[S]{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy)},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx)},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy)},
	}
}

// Pose2 is a 2D body transform, position plus rotation. Poses are read-only
// inputs to detection; only resolution hands back changed ones.
type Pose2[S Scalar] struct {
	Position Vec2[S]
	Rotation Rot2[S]
}

func Pose2Identity[S Scalar]() Pose2[S] {
	return Pose2[S]{Rotation: Rot2Identity[S]()}
}

func NewPose2[S Scalar](position Vec2[S], radians S) Pose2[S] {
	return Pose2[S]{Position: position, Rotation: Rot2FromAngle(radians)}
}

func (p Pose2[S]) TransformPoint(v Vec2[S]) Vec2[S] {
	return p.Rotation.Rotate(v).Add(p.Position)
}

func (p Pose2[S]) InverseTransformPoint(v Vec2[S]) Vec2[S] {
	return p.Rotation.RotateInv(v.Sub(p.Position))
}

func (p Pose2[S]) RotateVec(v Vec2[S]) Vec2[S]    { return p.Rotation.Rotate(v) }
func (p Pose2[S]) RotateVecInv(v Vec2[S]) Vec2[S] { return p.Rotation.RotateInv(v) }

// Mul composes two poses; the receiver is applied after o.
func (p Pose2[S]) Mul(o Pose2[S]) Pose2[S] {
	return Pose2[S]{
		Position: p.TransformPoint(o.Position),
		Rotation: p.Rotation.Mul(o.Rotation),
	}
}

// Pose3 is a 3D body transform, position plus orientation.
type Pose3[S Scalar] struct {
	Position Vec3[S]
	Rotation Quat[S]
}

func Pose3Identity[S Scalar]() Pose3[S] {
	return Pose3[S]{Rotation: QuatIdentity[S]()}
}

func NewPose3[S Scalar](position Vec3[S], rotation Quat[S]) Pose3[S] {
	return Pose3[S]{Position: position, Rotation: rotation}
}

func (p Pose3[S]) TransformPoint(v Vec3[S]) Vec3[S] {
	return p.Rotation.Rotate(v).Add(p.Position)
}

func (p Pose3[S]) InverseTransformPoint(v Vec3[S]) Vec3[S] {
	return p.Rotation.RotateInv(v.Sub(p.Position))
}

func (p Pose3[S]) RotateVec(v Vec3[S]) Vec3[S]    { return p.Rotation.Rotate(v) }
func (p Pose3[S]) RotateVecInv(v Vec3[S]) Vec3[S] { return p.Rotation.RotateInv(v) }

func (p Pose3[S]) Mul(o Pose3[S]) Pose3[S] {
	return Pose3[S]{
		Position: p.TransformPoint(o.Position),
		Rotation: p.Rotation.Mul(o.Rotation),
	}
}
