package collide

// DistanceOutput2 is the result of a closest-point query between two posed
// 2D shapes. For overlapping shapes Distance is zero and the witness points
// coincide somewhere inside the overlap region.
type DistanceOutput2[S Scalar] struct {
	// PointA and PointB are the closest world-space points on the first
	// and second shape.
	PointA Vec2[S]
	PointB Vec2[S]
	// Distance is the separation between the witness points.
	Distance S
	// Iterations is the number of refinement steps that were run.
	Iterations int
}

// DistanceOutput3 is the 3D counterpart of DistanceOutput2.
type DistanceOutput3[S Scalar] struct {
	PointA     Vec3[S]
	PointB     Vec3[S]
	Distance   S
	Iterations int
}

// Distance returns the separation and closest points between two posed
// shapes. Unlike Intersect it always produces a result, refining until the
// support point stops making progress or the iteration cap expires.
func (g *GJK2[S]) Distance(left Shape2[S], leftPose Pose2[S], right Shape2[S], rightPose Pose2[S]) DistanceOutput2[S] {
	d := rightPose.Position.Sub(leftPose.Position)
	if d.LenSqr() <= epsilon[S]() {
		d = Vec2[S]{X: 1}
	}
	simplex, v, iterations := gjkDistance[S, Vec2[S]](func(dir Vec2[S]) SupportPoint[Vec2[S]] {
		return support2(left, leftPose, right, rightPose, dir)
	}, d, closestOnSimplex2[S])
	pa, pb := witnessFeature[S, Vec2[S]](simplex, v)
	return DistanceOutput2[S]{PointA: pa, PointB: pb, Distance: v.Len(), Iterations: iterations}
}

// Distance returns the separation and closest points between two posed
// shapes. See GJK2.Distance for the contract.
func (g *GJK3[S]) Distance(left Shape3[S], leftPose Pose3[S], right Shape3[S], rightPose Pose3[S]) DistanceOutput3[S] {
	d := rightPose.Position.Sub(leftPose.Position)
	if d.LenSqr() <= epsilon[S]() {
		d = Vec3[S]{X: 1}
	}
	simplex, v, iterations := gjkDistance[S, Vec3[S]](func(dir Vec3[S]) SupportPoint[Vec3[S]] {
		return support3(left, leftPose, right, rightPose, dir)
	}, d, closestOnSimplex3[S])
	var pa, pb Vec3[S]
	if len(simplex) == 4 {
		pa, pb = tetrahedronWitness(simplex)
	} else {
		pa, pb = witnessFeature[S, Vec3[S]](simplex, v)
	}
	return DistanceOutput3[S]{PointA: pa, PointB: pb, Distance: v.Len(), Iterations: iterations}
}

// gjkDistance runs the closest-point refinement. closest reduces the simplex
// to the feature supporting the point nearest the origin and returns that
// point. The loop stops when the origin is reached, when a new support point
// stops improving the estimate, or at the iteration cap.
func gjkDistance[S Scalar, V vector[S, V]](
	support func(dir V) SupportPoint[V],
	initial V,
	closest func(simplex *[]SupportPoint[V]) V,
) ([]SupportPoint[V], V, int) {
	simplex := make([]SupportPoint[V], 0, 4)
	simplex = append(simplex, support(initial))
	var v V
	iterations := 0
	for ; iterations < distanceMaxIterations; iterations++ {
		v = closest(&simplex)
		if v.LenSqr() <= epsilon[S]() {
			// the simplex reached the origin, shapes touch or overlap
			break
		}
		w := support(v.Mul(-1))
		if v.LenSqr()-v.Dot(w.Diff) <= epsilon[S]()*v.LenSqr() {
			// the support point is no closer than the current feature
			break
		}
		if containsSupport(simplex, w) {
			break
		}
		simplex = append(simplex, w)
	}
	return simplex, v, iterations
}

func containsSupport[S Scalar, V vector[S, V]](simplex []SupportPoint[V], w SupportPoint[V]) bool {
	for i := range simplex {
		if simplex[i].Diff.Sub(w.Diff).LenSqr() <= epsilon[S]() {
			return true
		}
	}
	return false
}

func closestOnSimplex2[S Scalar](simplex *[]SupportPoint[Vec2[S]]) Vec2[S] {
	switch len(*simplex) {
	case 1:
		return (*simplex)[0].Diff
	case 2:
		return closestOnSegment[S, Vec2[S]](simplex)
	default:
		return closestOnTriangle[S, Vec2[S]](simplex)
	}
}

func closestOnSimplex3[S Scalar](simplex *[]SupportPoint[Vec3[S]]) Vec3[S] {
	switch len(*simplex) {
	case 1:
		return (*simplex)[0].Diff
	case 2:
		return closestOnSegment[S, Vec3[S]](simplex)
	case 3:
		return closestOnTriangle[S, Vec3[S]](simplex)
	default:
		return closestOnTetrahedron[S](simplex)
	}
}

// closestOnSegment returns the point on segment simplex[0]..simplex[1]
// nearest the origin and drops the far vertex when a region test allows it.
func closestOnSegment[S Scalar, V vector[S, V]](simplex *[]SupportPoint[V]) V {
	s := *simplex
	a, b := s[0], s[1]
	ab := b.Diff.Sub(a.Diff)
	denom := ab.LenSqr()
	if denom <= epsilon[S]() {
		*simplex = s[:1]
		return a.Diff
	}
	t := -a.Diff.Dot(ab) / denom
	if t <= 0 {
		*simplex = s[:1]
		return a.Diff
	}
	if t >= 1 {
		s[0] = b
		*simplex = s[:1]
		return b.Diff
	}
	return a.Diff.Add(ab.Mul(t))
}

// closestOnTriangle returns the point of triangle simplex[0..2] nearest the
// origin, reducing the simplex to the vertex, edge or face that supports it.
func closestOnTriangle[S Scalar, V vector[S, V]](simplex *[]SupportPoint[V]) V {
	s := *simplex
	a, b, c := s[0], s[1], s[2]
	ab := b.Diff.Sub(a.Diff)
	ac := c.Diff.Sub(a.Diff)
	ap := a.Diff.Mul(-1)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		*simplex = s[:1]
		return a.Diff
	}
	bp := b.Diff.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		s[0] = b
		*simplex = s[:1]
		return b.Diff
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		*simplex = s[:2]
		return a.Diff.Add(ab.Mul(t))
	}
	cp := c.Diff.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		s[0] = c
		*simplex = s[:1]
		return c.Diff
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		s[1] = c
		*simplex = s[:2]
		return a.Diff.Add(ac.Mul(t))
	}
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		s[0] = b
		s[1] = c
		*simplex = s[:2]
		return b.Diff.Add(c.Diff.Sub(b.Diff).Mul(t))
	}
	// origin projects inside the face
	denom := va + vb + vc
	if abs(denom) <= 0 {
		*simplex = s[:1]
		return a.Diff
	}
	v := vb / denom
	w := vc / denom
	return a.Diff.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// closestOnTetrahedron returns the point of the tetrahedron nearest the
// origin. When the origin is inside it keeps all four vertices and returns
// the zero vector.
func closestOnTetrahedron[S Scalar](simplex *[]SupportPoint[Vec3[S]]) Vec3[S] {
	s := *simplex
	faces := [4][4]int{
		{0, 1, 2, 3},
		{0, 2, 3, 1},
		{0, 3, 1, 2},
		{1, 3, 2, 0},
	}
	var (
		best        Vec3[S]
		bestFeature []SupportPoint[Vec3[S]]
		bestDist    = inf[S]()
		outside     bool
	)
	for _, f := range faces {
		a, b, c, d := s[f[0]], s[f[1]], s[f[2]], s[f[3]]
		if !originOutsidePlane(a.Diff, b.Diff, c.Diff, d.Diff) {
			continue
		}
		outside = true
		tri := []SupportPoint[Vec3[S]]{a, b, c}
		v := closestOnTriangle[S, Vec3[S]](&tri)
		if dist := v.LenSqr(); dist < bestDist {
			bestDist = dist
			best = v
			bestFeature = tri
		}
	}
	if !outside {
		return Vec3[S]{}
	}
	*simplex = append(s[:0], bestFeature...)
	return best
}

// originOutsidePlane reports whether the origin and d lie on opposite sides
// of the plane through abc.
func originOutsidePlane[S Scalar](a, b, c, d Vec3[S]) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	signOrigin := -a.Dot(n)
	signD := d.Sub(a).Dot(n)
	return signOrigin*signD < 0
}

// witnessFeature recovers world-space closest points from the reduced
// simplex and the closest point v on it.
func witnessFeature[S Scalar, V vector[S, V]](simplex []SupportPoint[V], v V) (V, V) {
	switch len(simplex) {
	case 1:
		return simplex[0].A, simplex[0].B
	case 2:
		a, b := simplex[0], simplex[1]
		ab := b.Diff.Sub(a.Diff)
		denom := ab.LenSqr()
		if denom <= epsilon[S]() {
			return a.A, a.B
		}
		t := v.Sub(a.Diff).Dot(ab) / denom
		pa := a.A.Add(b.A.Sub(a.A).Mul(t))
		pb := a.B.Add(b.B.Sub(a.B).Mul(t))
		return pa, pb
	default:
		a, b, c := simplex[0], simplex[1], simplex[2]
		u, w1, w2 := barycentric[S, V](v, a.Diff, b.Diff, c.Diff)
		pa := a.A.Mul(u).Add(b.A.Mul(w1)).Add(c.A.Mul(w2))
		pb := a.B.Mul(u).Add(b.B.Mul(w1)).Add(c.B.Mul(w2))
		return pa, pb
	}
}

// tetrahedronWitness resolves witness points when the simplex fully encloses
// the origin. The barycentric weights come from solving for the origin in
// the tetrahedron basis.
func tetrahedronWitness[S Scalar](simplex []SupportPoint[Vec3[S]]) (Vec3[S], Vec3[S]) {
	a, b, c, d := simplex[0], simplex[1], simplex[2], simplex[3]
	e1 := b.Diff.Sub(a.Diff)
	e2 := c.Diff.Sub(a.Diff)
	e3 := d.Diff.Sub(a.Diff)
	m := Mat3[S]{
		{e1.X, e2.X, e3.X},
		{e1.Y, e2.Y, e3.Y},
		{e1.Z, e2.Z, e3.Z},
	}
	l := m.Inverse().MulVec(a.Diff.Mul(-1))
	u := 1 - l.X - l.Y - l.Z
	pa := a.A.Mul(u).Add(b.A.Mul(l.X)).Add(c.A.Mul(l.Y)).Add(d.A.Mul(l.Z))
	pb := a.B.Mul(u).Add(b.B.Mul(l.X)).Add(c.B.Mul(l.Y)).Add(d.B.Mul(l.Z))
	return pa, pb
}
