package collide

// TimeOfImpact sweeps two moving shapes across a step and reports the
// earliest contact. Both poses are interpolated from their start to their
// end configuration over t in [0,1]. The advancement step is bounded by the
// relative displacement plus the rotational surface travel, so the reported
// time never overshoots the true impact.
//
// The second return is false when the shapes stay separated for the whole
// step. A contact with Approximate set means the advancement was still
// closing in when the iteration cap expired.
func (g *GJK2[S]) TimeOfImpact(left Shape2[S], leftStart, leftEnd Pose2[S], right Shape2[S], rightStart, rightEnd Pose2[S]) (Contact2[S], bool) {
	linear := rightEnd.Position.Sub(rightStart.Position).Sub(leftEnd.Position.Sub(leftStart.Position)).Len()
	angular := angleDelta2(leftStart.Rotation, leftEnd.Rotation)*shapeRadius2(left) +
		angleDelta2(rightStart.Rotation, rightEnd.Rotation)*shapeRadius2(right)
	bound := linear + angular

	var (
		t      S
		normal = Vec2[S]{X: 1}
		out    DistanceOutput2[S]
	)
	if d := rightStart.Position.Sub(leftStart.Position); d.LenSqr() > epsilon[S]() {
		normal = d.Normalize()
	}
	for i := 0; i < g.maxIterations(); i++ {
		lp := interpolatePose2(leftStart, leftEnd, t)
		rp := interpolatePose2(rightStart, rightEnd, t)
		out = g.Distance(left, lp, right, rp)
		if n := out.PointB.Sub(out.PointA); n.LenSqr() > epsilon[S]() {
			normal = n.Normalize()
		}
		if out.Distance <= contactTolerance[S]() {
			return Contact2[S]{
				Strategy:     FullResolution,
				Normal:       normal,
				ContactPoint: out.PointA,
				TimeOfImpact: t,
			}, true
		}
		if bound <= epsilon[S]() {
			// separated and no relative motion left to close the gap
			return Contact2[S]{}, false
		}
		t += out.Distance / bound
		if t > 1 {
			return Contact2[S]{}, false
		}
	}
	c := Contact2[S]{
		Strategy:     FullResolution,
		Normal:       normal,
		ContactPoint: out.PointA,
		TimeOfImpact: t,
		Approximate:  true,
	}
	g.log().Warnf("time of impact did not converge after %d iterations, reporting t=%v", g.maxIterations(), t)
	return c, true
}

// TimeOfImpact sweeps two moving shapes across a step. See GJK2.TimeOfImpact
// for the contract.
func (g *GJK3[S]) TimeOfImpact(left Shape3[S], leftStart, leftEnd Pose3[S], right Shape3[S], rightStart, rightEnd Pose3[S]) (Contact3[S], bool) {
	linear := rightEnd.Position.Sub(rightStart.Position).Sub(leftEnd.Position.Sub(leftStart.Position)).Len()
	angular := angleDelta3(leftStart.Rotation, leftEnd.Rotation)*shapeRadius3(left) +
		angleDelta3(rightStart.Rotation, rightEnd.Rotation)*shapeRadius3(right)
	bound := linear + angular

	var (
		t      S
		normal = Vec3[S]{X: 1}
		out    DistanceOutput3[S]
	)
	if d := rightStart.Position.Sub(leftStart.Position); d.LenSqr() > epsilon[S]() {
		normal = d.Normalize()
	}
	for i := 0; i < g.maxIterations(); i++ {
		lp := interpolatePose3(leftStart, leftEnd, t)
		rp := interpolatePose3(rightStart, rightEnd, t)
		out = g.Distance(left, lp, right, rp)
		if n := out.PointB.Sub(out.PointA); n.LenSqr() > epsilon[S]() {
			normal = n.Normalize()
		}
		if out.Distance <= contactTolerance[S]() {
			return Contact3[S]{
				Strategy:     FullResolution,
				Normal:       normal,
				ContactPoint: out.PointA,
				TimeOfImpact: t,
			}, true
		}
		if bound <= epsilon[S]() {
			return Contact3[S]{}, false
		}
		t += out.Distance / bound
		if t > 1 {
			return Contact3[S]{}, false
		}
	}
	c := Contact3[S]{
		Strategy:     FullResolution,
		Normal:       normal,
		ContactPoint: out.PointA,
		TimeOfImpact: t,
		Approximate:  true,
	}
	g.log().Warnf("time of impact did not converge after %d iterations, reporting t=%v", g.maxIterations(), t)
	return c, true
}

// interpolatePose2 blends position linearly and the rotation along the short
// arc on the unit circle.
func interpolatePose2[S Scalar](from, to Pose2[S], t S) Pose2[S] {
	pos := from.Position.Add(to.Position.Sub(from.Position).Mul(t))
	c := from.Rotation.Cos + (to.Rotation.Cos-from.Rotation.Cos)*t
	s := from.Rotation.Sin + (to.Rotation.Sin-from.Rotation.Sin)*t
	l := sqrt(c*c + s*s)
	rot := from.Rotation
	if l > epsilon[S]() {
		rot = Rot2[S]{Cos: c / l, Sin: s / l}
	}
	return Pose2[S]{Position: pos, Rotation: rot}
}

// interpolatePose3 blends position linearly and the orientation by
// normalized quaternion interpolation along the short arc.
func interpolatePose3[S Scalar](from, to Pose3[S], t S) Pose3[S] {
	pos := from.Position.Add(to.Position.Sub(from.Position).Mul(t))
	q := to.Rotation
	if quatDot(from.Rotation, q) < 0 {
		q = Quat[S]{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	}
	blended := Quat[S]{
		W: from.Rotation.W + (q.W-from.Rotation.W)*t,
		X: from.Rotation.X + (q.X-from.Rotation.X)*t,
		Y: from.Rotation.Y + (q.Y-from.Rotation.Y)*t,
		Z: from.Rotation.Z + (q.Z-from.Rotation.Z)*t,
	}
	rot := blended.Normalize()
	if rot == (Quat[S]{}) {
		rot = from.Rotation
	}
	return Pose3[S]{Position: pos, Rotation: rot}
}

// angleDelta2 is the absolute rotation angle between two orientations.
func angleDelta2[S Scalar](from, to Rot2[S]) S {
	c := from.Cos*to.Cos + from.Sin*to.Sin
	s := from.Cos*to.Sin - from.Sin*to.Cos
	return abs(atan2(s, c))
}

func angleDelta3[S Scalar](from, to Quat[S]) S {
	d := abs(quatDot(from, to))
	if d > 1 {
		d = 1
	}
	return 2 * acos(d)
}

func quatDot[S Scalar](a, b Quat[S]) S {
	return a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// shapeRadius2 bounds how far any point of the shape sits from its pose
// origin, from the local-space bound.
func shapeRadius2[S Scalar](s Shape2[S]) S {
	b := s.Bound()
	e := Vec2[S]{
		X: max(abs(b.Min.X), abs(b.Max.X)),
		Y: max(abs(b.Min.Y), abs(b.Max.Y)),
	}
	return e.Len()
}

func shapeRadius3[S Scalar](s Shape3[S]) S {
	b := s.Bound()
	e := Vec3[S]{
		X: max(abs(b.Min.X), abs(b.Max.X)),
		Y: max(abs(b.Min.Y), abs(b.Max.Y)),
		Z: max(abs(b.Min.Z), abs(b.Max.Z)),
	}
	return e.Len()
}
