package collide

import (
	"errors"
	"math"
)

// ErrNoVolume marks shapes whose mass cannot be derived from geometry, such
// as a convex polytope whose faces are implied rather than stored.
var ErrNoVolume = errors.New("collide: shape has no computable volume")

// MassFromShape2 derives mass properties from a primitive's geometry and its
// material density. Inertia is the moment around the body origin.
func MassFromShape2[S Scalar](shape Shape2[S], material Material) (Mass2[S], error) {
	density := S(material.Density)
	switch s := shape.(type) {
	case Circle[S]:
		mass := S(math.Pi) * s.Radius * s.Radius * density
		return NewMass2(mass, mass*s.Radius*s.Radius/2), nil
	case Rectangle[S]:
		mass := s.Dim.X * s.Dim.Y * density
		return NewMass2(mass, mass*(s.Dim.X*s.Dim.X+s.Dim.Y*s.Dim.Y)/12), nil
	case ConvexPolygon[S]:
		return polygonMass(s, density)
	default:
		return Mass2[S]{}, ErrNoVolume
	}
}

// polygonMass integrates area and second moment over the vertex loop. The
// origin must lie inside the polygon.
func polygonMass[S Scalar](p ConvexPolygon[S], density S) (Mass2[S], error) {
	var area, denom S
	for i := range p.Vertices {
		j := (i + 1) % len(p.Vertices)
		p0 := p.Vertices[i]
		p1 := p.Vertices[j]
		a := abs(p0.Cross(p1))
		b := p0.Dot(p0) + p0.Dot(p1) + p1.Dot(p1)
		denom += a * b
		area += a
	}
	if area <= 0 {
		return Mass2[S]{}, ErrNoVolume
	}
	mass := area / 2 * density
	return NewMass2(mass, mass/6*denom/area), nil
}

// MassFromShape3 derives mass properties from a primitive's geometry and its
// material density. The tensor is around the body origin in body space.
func MassFromShape3[S Scalar](shape Shape3[S], material Material) (Mass3[S], error) {
	density := S(material.Density)
	switch s := shape.(type) {
	case Sphere[S]:
		mass := S(4.0/3.0) * S(math.Pi) * s.Radius * s.Radius * s.Radius * density
		return NewMass3(mass, Mat3Diagonal(S(2.0/5.0)*mass*s.Radius*s.Radius)), nil
	case Cuboid[S]:
		mass := s.Dim.X * s.Dim.Y * s.Dim.Z * density
		x2 := s.Dim.X * s.Dim.X
		y2 := s.Dim.Y * s.Dim.Y
		z2 := s.Dim.Z * s.Dim.Z
		m12 := mass / 12
		inertia := Mat3[S]{
			{m12 * (y2 + z2), 0, 0},
			{0, m12 * (x2 + z2), 0},
			{0, 0, m12 * (x2 + y2)},
		}
		return NewMass3(mass, inertia), nil
	default:
		return Mass3[S]{}, ErrNoVolume
	}
}

// MassFromCollisionShape2 sums the mass of a composite shape's parts,
// shifting each part's inertia to the body origin by the parallel axis rule.
func MassFromCollisionShape2[S Scalar](shape *CollisionShape2[S], material Material) (Mass2[S], error) {
	var mass, inertia S
	for i := range shape.Primitives {
		part := &shape.Primitives[i]
		m, err := MassFromShape2(part.Primitive, material)
		if err != nil {
			return Mass2[S]{}, err
		}
		offset := part.LocalPose.Position
		mass += m.Mass()
		inertia += m.Inertia() + m.Mass()*offset.Dot(offset)
	}
	return NewMass2(mass, inertia), nil
}

// MassFromCollisionShape3 sums the mass of a composite shape's parts,
// shifting each part's tensor to the body origin by the parallel axis rule.
func MassFromCollisionShape3[S Scalar](shape *CollisionShape3[S], material Material) (Mass3[S], error) {
	var mass S
	var inertia Mat3[S]
	for i := range shape.Primitives {
		part := &shape.Primitives[i]
		m, err := MassFromShape3(part.Primitive, material)
		if err != nil {
			return Mass3[S]{}, err
		}
		shifted := parallelAxis3(part.LocalPose.Position)
		partInertia := m.Inertia()
		partMass := m.Mass()
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				inertia[r][c] += partInertia[r][c] + partMass*shifted[r][c]
			}
		}
		mass += partMass
	}
	return NewMass3(mass, inertia), nil
}

// parallelAxis3 is the tensor offset for a point mass displaced by o from
// the origin, |o|^2 I - o o^T.
func parallelAxis3[S Scalar](o Vec3[S]) Mat3[S] {
	d2 := o.Dot(o)
	return Mat3[S]{
		{d2 - o.X*o.X, -o.X * o.Y, -o.X * o.Z},
		{-o.Y * o.X, d2 - o.Y*o.Y, -o.Y * o.Z},
		{-o.Z * o.X, -o.Z * o.Y, d2 - o.Z*o.Z},
	}
}
