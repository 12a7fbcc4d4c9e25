package collide

// AABB2 is an axis-aligned bounding rectangle.
type AABB2[S Scalar] struct {
	Min, Max Vec2[S]
}

func NewAABB2[S Scalar](min, max Vec2[S]) AABB2[S] {
	return AABB2[S]{Min: min, Max: max}
}

func aabb2FromPoints[S Scalar](points []Vec2[S]) AABB2[S] {
	b := AABB2[S]{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	return b
}

func (b AABB2[S]) Center() Vec2[S] { return b.Min.Add(b.Max).Mul(0.5) }
func (b AABB2[S]) Dim() Vec2[S]    { return b.Max.Sub(b.Min) }
func (b AABB2[S]) Extent() Vec2[S] { return b.Dim().Mul(0.5) }

func (b AABB2[S]) Union(o AABB2[S]) AABB2[S] {
	return AABB2[S]{
		Min: Vec2[S]{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y)},
		Max: Vec2[S]{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y)},
	}
}

func (b AABB2[S]) Intersects(o AABB2[S]) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b AABB2[S]) Contains(o AABB2[S]) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y &&
		b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y
}

func (b AABB2[S]) ContainsPoint(p Vec2[S]) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Cost is the perimeter, the descent metric for tree insertion.
func (b AABB2[S]) Cost() S {
	d := b.Dim()
	return 2 * (d.X + d.Y)
}

func (b AABB2[S]) Fatten(margin S) AABB2[S] {
	m := Vec2[S]{margin, margin}
	return AABB2[S]{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Expand grows the bound in the direction of a displacement, predicting
// where a moving body is headed.
func (b AABB2[S]) Expand(d Vec2[S]) AABB2[S] {
	if d.X < 0 {
		b.Min.X += d.X
	} else {
		b.Max.X += d.X
	}
	if d.Y < 0 {
		b.Min.Y += d.Y
	} else {
		b.Max.Y += d.Y
	}
	return b
}

func (b AABB2[S]) MinAxis(axis int) S {
	if axis == 0 {
		return b.Min.X
	}
	return b.Min.Y
}

func (b AABB2[S]) MaxAxis(axis int) S {
	if axis == 0 {
		return b.Max.X
	}
	return b.Max.Y
}

func (b AABB2[S]) Axes() int { return 2 }

// RayIntersection runs the slab test and returns the entry parameter along
// the ray, capped by tmax. Rays starting inside the bound hit at 0.
func (b AABB2[S]) RayIntersection(r Ray2[S], tmax S) (S, bool) {
	tmin := S(0)
	lo := [2]S{b.Min.X, b.Min.Y}
	hi := [2]S{b.Max.X, b.Max.Y}
	o := [2]S{r.Origin.X, r.Origin.Y}
	d := [2]S{r.Direction.X, r.Direction.Y}
	for i := 0; i < 2; i++ {
		if abs(d[i]) <= epsilon[S]() {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// AABB3 is an axis-aligned bounding box.
type AABB3[S Scalar] struct {
	Min, Max Vec3[S]
}

func NewAABB3[S Scalar](min, max Vec3[S]) AABB3[S] {
	return AABB3[S]{Min: min, Max: max}
}

func aabb3FromPoints[S Scalar](points []Vec3[S]) AABB3[S] {
	b := AABB3[S]{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

func (b AABB3[S]) Center() Vec3[S] { return b.Min.Add(b.Max).Mul(0.5) }
func (b AABB3[S]) Dim() Vec3[S]    { return b.Max.Sub(b.Min) }
func (b AABB3[S]) Extent() Vec3[S] { return b.Dim().Mul(0.5) }

func (b AABB3[S]) Union(o AABB3[S]) AABB3[S] {
	return AABB3[S]{
		Min: Vec3[S]{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Vec3[S]{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
	}
}

func (b AABB3[S]) Intersects(o AABB3[S]) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

func (b AABB3[S]) Contains(o AABB3[S]) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y && b.Min.Z <= o.Min.Z &&
		b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y && b.Max.Z >= o.Max.Z
}

func (b AABB3[S]) ContainsPoint(p Vec3[S]) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Cost is the surface area, the descent metric for tree insertion.
func (b AABB3[S]) Cost() S {
	d := b.Dim()
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

func (b AABB3[S]) Fatten(margin S) AABB3[S] {
	m := Vec3[S]{margin, margin, margin}
	return AABB3[S]{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

func (b AABB3[S]) Expand(d Vec3[S]) AABB3[S] {
	if d.X < 0 {
		b.Min.X += d.X
	} else {
		b.Max.X += d.X
	}
	if d.Y < 0 {
		b.Min.Y += d.Y
	} else {
		b.Max.Y += d.Y
	}
	if d.Z < 0 {
		b.Min.Z += d.Z
	} else {
		b.Max.Z += d.Z
	}
	return b
}

func (b AABB3[S]) MinAxis(axis int) S {
	switch axis {
	case 0:
		return b.Min.X
	case 1:
		return b.Min.Y
	}
	return b.Min.Z
}

func (b AABB3[S]) MaxAxis(axis int) S {
	switch axis {
	case 0:
		return b.Max.X
	case 1:
		return b.Max.Y
	}
	return b.Max.Z
}

func (b AABB3[S]) Axes() int { return 3 }

func (b AABB3[S]) RayIntersection(r Ray3[S], tmax S) (S, bool) {
	tmin := S(0)
	lo := [3]S{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]S{b.Max.X, b.Max.Y, b.Max.Z}
	o := [3]S{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]S{r.Direction.X, r.Direction.Y, r.Direction.Z}
	for i := 0; i < 3; i++ {
		if abs(d[i]) <= epsilon[S]() {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// Ray2 and Ray3 carry a unit direction by convention.
type Ray2[S Scalar] struct {
	Origin    Vec2[S]
	Direction Vec2[S]
}

type Ray3[S Scalar] struct {
	Origin    Vec3[S]
	Direction Vec3[S]
}

// Relation classifies a bound against a convex region.
type Relation int

const (
	// RelationIn means the bound is fully inside.
	RelationIn Relation = iota
	// RelationCross means the bound straddles the boundary.
	RelationCross
	// RelationOut means the bound is fully outside.
	RelationOut
)

// Plane2 is the line Normal*x = D with a unit normal; the positive side is
// the half plane the normal points into.
type Plane2[S Scalar] struct {
	Normal Vec2[S]
	D      S
}

func (p Plane2[S]) Relate(b AABB2[S]) Relation {
	c := b.Center()
	e := b.Extent()
	radius := e.X*abs(p.Normal.X) + e.Y*abs(p.Normal.Y)
	dist := p.Normal.Dot(c) - p.D
	switch {
	case dist < -radius:
		return RelationOut
	case dist > radius:
		return RelationIn
	}
	return RelationCross
}

// Plane3 is the plane Normal*x = D with a unit normal.
type Plane3[S Scalar] struct {
	Normal Vec3[S]
	D      S
}

func (p Plane3[S]) Relate(b AABB3[S]) Relation {
	c := b.Center()
	e := b.Extent()
	radius := e.X*abs(p.Normal.X) + e.Y*abs(p.Normal.Y) + e.Z*abs(p.Normal.Z)
	dist := p.Normal.Dot(c) - p.D
	switch {
	case dist < -radius:
		return RelationOut
	case dist > radius:
		return RelationIn
	}
	return RelationCross
}

// Frustum2 is a convex region bounded by planes whose normals point inward.
type Frustum2[S Scalar] struct {
	Planes []Plane2[S]
}

func (f Frustum2[S]) Relate(b AABB2[S]) Relation {
	rel := RelationIn
	for _, p := range f.Planes {
		switch p.Relate(b) {
		case RelationOut:
			return RelationOut
		case RelationCross:
			rel = RelationCross
		}
	}
	return rel
}

// Frustum3 is a convex region bounded by planes whose normals point inward.
type Frustum3[S Scalar] struct {
	Planes []Plane3[S]
}

func (f Frustum3[S]) Relate(b AABB3[S]) Relation {
	rel := RelationIn
	for _, p := range f.Planes {
		switch p.Relate(b) {
		case RelationOut:
			return RelationOut
		case RelationCross:
			rel = RelationCross
		}
	}
	return rel
}
