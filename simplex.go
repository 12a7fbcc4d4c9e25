package collide

// SupportPoint is a vertex of a simplex built on the Minkowski difference of
// two shapes. It keeps the world-space witness points on both shapes so the
// penetration stage can recover a contact point after the simplex has been
// refined.
type SupportPoint[V any] struct {
	// Diff is the support of the first shape minus the support of the
	// second, the actual Minkowski difference vertex.
	Diff V
	// A and B are the world-space support points on the first and second
	// shape that produced Diff.
	A V
	B V
}

// support2 samples the Minkowski difference of two posed shapes along dir.
func support2[S Scalar](left Shape2[S], leftPose Pose2[S], right Shape2[S], rightPose Pose2[S], dir Vec2[S]) SupportPoint[Vec2[S]] {
	a := left.Support(dir, leftPose)
	b := right.Support(dir.Mul(-1), rightPose)
	return SupportPoint[Vec2[S]]{Diff: a.Sub(b), A: a, B: b}
}

func support3[S Scalar](left Shape3[S], leftPose Pose3[S], right Shape3[S], rightPose Pose3[S], dir Vec3[S]) SupportPoint[Vec3[S]] {
	a := left.Support(dir, leftPose)
	b := right.Support(dir.Mul(-1), rightPose)
	return SupportPoint[Vec3[S]]{Diff: a.Sub(b), A: a, B: b}
}

// A simplexReducer refines a growing simplex after each new support point.
// reduce drops vertices that cannot contain the origin, steers dir toward the
// origin for the next support query, and reports whether the simplex now
// encloses the origin.
type simplexReducer[V any] interface {
	reduce(simplex *[]SupportPoint[V], dir *V) bool
}

// simplex2 reduces 2D simplices. The simplex is ordered oldest first, so the
// most recent support point is always the last element.
type simplex2[S Scalar] struct{}

func (simplex2[S]) reduce(simplex *[]SupportPoint[Vec2[S]], dir *Vec2[S]) bool {
	s := *simplex
	switch len(s) {
	case 3:
		a := s[2].Diff
		b := s[1].Diff
		c := s[0].Diff
		ao := a.Mul(-1)
		ab := b.Sub(a)
		ac := c.Sub(a)
		abPerp := tripleProduct(ac, ab, ab)
		if abPerp.Dot(ao) > 0 {
			// origin beyond edge AB, drop C
			s[0], s[1] = s[1], s[2]
			*simplex = s[:2]
			*dir = abPerp
			return false
		}
		acPerp := tripleProduct(ab, ac, ac)
		if acPerp.Dot(ao) > 0 {
			// origin beyond edge AC, drop B
			s[1] = s[2]
			*simplex = s[:2]
			*dir = acPerp
			return false
		}
		return true
	case 2:
		a := s[1].Diff
		b := s[0].Diff
		ao := a.Mul(-1)
		ab := b.Sub(a)
		d := tripleProduct(ab, ao, ab)
		if d.LenSqr() <= epsilon[S]() {
			// origin on the segment line, any perpendicular will do
			d = Vec2[S]{-ab.Y, ab.X}
		}
		*dir = d
	}
	return false
}

type simplex3[S Scalar] struct{}

func (simplex3[S]) reduce(simplex *[]SupportPoint[Vec3[S]], dir *Vec3[S]) bool {
	s := *simplex
	switch len(s) {
	case 4:
		a := s[3].Diff
		b := s[2].Diff
		c := s[1].Diff
		d := s[0].Diff
		ao := a.Mul(-1)
		ab := b.Sub(a)
		ac := c.Sub(a)
		ad := d.Sub(a)

		abc := ab.Cross(ac)
		if abc.Dot(ao) > 0 {
			// origin outside face ABC, drop D and resolve the edge regions
			removeSupport(simplex, 0)
			checkSide(abc, ab, ac, ao, simplex, dir, true, false)
			return false
		}
		acd := ac.Cross(ad)
		if acd.Dot(ao) > 0 {
			// origin outside face ACD, drop B; the AC edge region was
			// already covered by the ABC test
			removeSupport(simplex, 2)
			checkSide(acd, ac, ad, ao, simplex, dir, true, true)
			return false
		}
		adb := ad.Cross(ab)
		if adb.Dot(ao) > 0 {
			// origin outside face ADB, drop C; both edge regions were
			// covered by earlier tests
			removeSupport(simplex, 1)
			s := *simplex
			s[0], s[1] = s[1], s[0]
			*dir = adb
			return false
		}
		return true
	case 3:
		a := s[2].Diff
		b := s[1].Diff
		c := s[0].Diff
		ao := a.Mul(-1)
		ab := b.Sub(a)
		ac := c.Sub(a)
		checkSide(ab.Cross(ac), ab, ac, ao, simplex, dir, false, false)
	case 2:
		a := s[1].Diff
		b := s[0].Diff
		ao := a.Mul(-1)
		ab := b.Sub(a)
		d := crossABA(ab, ao)
		if d.LenSqr() <= epsilon[S]() {
			// origin on the segment line
			d = anyPerpendicular(ab)
		}
		*dir = d
	}
	return false
}

// checkSide resolves which Voronoi region of triangle ABC contains the
// origin. above is set when the caller already knows the origin is on the
// normal side of the face, ignoreAB when the AB edge region was ruled out by
// a previous face test.
func checkSide[S Scalar](abc, ab, ac, ao Vec3[S], simplex *[]SupportPoint[Vec3[S]], dir *Vec3[S], above, ignoreAB bool) {
	if !ignoreAB {
		abPerp := ab.Cross(abc)
		if abPerp.Dot(ao) > 0 {
			// origin beyond edge AB, drop C
			removeSupport(simplex, 0)
			*dir = crossABA(ab, ao)
			return
		}
	}
	acPerp := abc.Cross(ac)
	if acPerp.Dot(ao) > 0 {
		// origin beyond edge AC, drop B
		removeSupport(simplex, 1)
		*dir = crossABA(ac, ao)
		return
	}
	if above || abc.Dot(ao) > 0 {
		*dir = abc
		return
	}
	// origin below the triangle, rewind the winding so the face normal
	// keeps pointing at the origin
	s := *simplex
	s[0], s[1] = s[1], s[0]
	*dir = abc.Mul(-1)
}

// removeSupport deletes simplex[i] preserving the order of the rest.
func removeSupport[V any](simplex *[]SupportPoint[V], i int) {
	s := *simplex
	copy(s[i:], s[i+1:])
	*simplex = s[:len(s)-1]
}

// anyPerpendicular picks an arbitrary vector orthogonal to v.
func anyPerpendicular[S Scalar](v Vec3[S]) Vec3[S] {
	p := v.Cross(Vec3[S]{X: 1})
	if p.LenSqr() <= epsilon[S]() {
		p = v.Cross(Vec3[S]{Y: 1})
	}
	return p
}
