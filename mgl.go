package collide

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Adapters between the generic core types and go-gl/mathgl. mathgl ships
// fixed-precision packages, so conversions exist at both widths.

func V2From32(v mgl32.Vec2) Vec2[float32] { return Vec2[float32]{v.X(), v.Y()} }
func V2To32(v Vec2[float32]) mgl32.Vec2   { return mgl32.Vec2{v.X, v.Y} }
func V2From64(v mgl64.Vec2) Vec2[float64] { return Vec2[float64]{v.X(), v.Y()} }
func V2To64(v Vec2[float64]) mgl64.Vec2   { return mgl64.Vec2{v.X, v.Y} }

func V3From32(v mgl32.Vec3) Vec3[float32] { return Vec3[float32]{v.X(), v.Y(), v.Z()} }
func V3To32(v Vec3[float32]) mgl32.Vec3   { return mgl32.Vec3{v.X, v.Y, v.Z} }
func V3From64(v mgl64.Vec3) Vec3[float64] { return Vec3[float64]{v.X(), v.Y(), v.Z()} }
func V3To64(v Vec3[float64]) mgl64.Vec3   { return mgl64.Vec3{v.X, v.Y, v.Z} }

func QuatFrom32(q mgl32.Quat) Quat[float32] {
	return Quat[float32]{W: q.W, X: q.V.X(), Y: q.V.Y(), Z: q.V.Z()}
}

func QuatTo32(q Quat[float32]) mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func QuatFrom64(q mgl64.Quat) Quat[float64] {
	return Quat[float64]{W: q.W, X: q.V.X(), Y: q.V.Y(), Z: q.V.Z()}
}

func QuatTo64(q Quat[float64]) mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func Pose3From32(position mgl32.Vec3, rotation mgl32.Quat) Pose3[float32] {
	return Pose3[float32]{Position: V3From32(position), Rotation: QuatFrom32(rotation)}
}

func Pose3From64(position mgl64.Vec3, rotation mgl64.Quat) Pose3[float64] {
	return Pose3[float64]{Position: V3From64(position), Rotation: QuatFrom64(rotation)}
}

// Frustum3From32 extracts the six clip planes from a view-projection matrix,
// normals pointing inward.
func Frustum3From32(m mgl32.Mat4) Frustum3[float32] {
	rows := func(i int) [4]float32 {
		return [4]float32{m.At(i, 0), m.At(i, 1), m.At(i, 2), m.At(i, 3)}
	}
	r0, r1, r2, r3 := rows(0), rows(1), rows(2), rows(3)
	planes := [6][4]float32{
		add4(r3, r0), sub4(r3, r0),
		add4(r3, r1), sub4(r3, r1),
		add4(r3, r2), sub4(r3, r2),
	}
	f := Frustum3[float32]{Planes: make([]Plane3[float32], 0, 6)}
	for _, p := range planes {
		n := Vec3[float32]{p[0], p[1], p[2]}
		l := n.Len()
		if l <= 0 {
			continue
		}
		f.Planes = append(f.Planes, Plane3[float32]{Normal: n.Mul(1 / l), D: -p[3] / l})
	}
	return f
}

// Frustum3From64 extracts the six clip planes from a view-projection matrix,
// normals pointing inward.
func Frustum3From64(m mgl64.Mat4) Frustum3[float64] {
	rows := func(i int) [4]float64 {
		return [4]float64{m.At(i, 0), m.At(i, 1), m.At(i, 2), m.At(i, 3)}
	}
	r0, r1, r2, r3 := rows(0), rows(1), rows(2), rows(3)
	planes := [6][4]float64{
		add4d(r3, r0), sub4d(r3, r0),
		add4d(r3, r1), sub4d(r3, r1),
		add4d(r3, r2), sub4d(r3, r2),
	}
	f := Frustum3[float64]{Planes: make([]Plane3[float64], 0, 6)}
	for _, p := range planes {
		n := Vec3[float64]{p[0], p[1], p[2]}
		l := n.Len()
		if l <= 0 {
			continue
		}
		f.Planes = append(f.Planes, Plane3[float64]{Normal: n.Mul(1 / l), D: -p[3] / l})
	}
	return f
}

func add4(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub4(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func add4d(a, b [4]float64) [4]float64 {
	return [4]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub4d(a, b [4]float64) [4]float64 {
	return [4]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}
