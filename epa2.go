package collide

// epaEdge2 is the polytope edge currently closest to the origin. index is
// the position of the edge's second vertex, which is also where a new
// support point is inserted when the edge gets split.
type epaEdge2[S Scalar] struct {
	normal   Vec2[S]
	distance S
	index    int
}

// epa2 expands a GJK termination simplex into penetration normal, depth and
// a contact point on the first shape. ok is false when the simplex cannot
// seed a polytope.
func epa2[S Scalar](simplex []SupportPoint[Vec2[S]], left Shape2[S], leftPose Pose2[S], right Shape2[S], rightPose Pose2[S], maxIterations int) (Contact2[S], bool) {
	if len(simplex) < 3 {
		return Contact2[S]{}, false
	}
	for i := 1; ; i++ {
		e := closestEdge2(simplex)
		if isInf(e.distance) {
			// all edges collapsed, the polytope carries no area
			return Contact2[S]{}, false
		}
		p := support2(left, leftPose, right, rightPose, e.normal)
		d := p.Diff.Dot(e.normal)
		if d-e.distance < epaTolerance[S]() {
			return contactFromEdge2(simplex, e, false), true
		}
		if i >= maxIterations {
			return contactFromEdge2(simplex, e, true), true
		}
		// split the closest edge with the new support point
		simplex = append(simplex, SupportPoint[Vec2[S]]{})
		copy(simplex[e.index+1:], simplex[e.index:])
		simplex[e.index] = p
	}
}

func closestEdge2[S Scalar](simplex []SupportPoint[Vec2[S]]) epaEdge2[S] {
	edge := epaEdge2[S]{distance: inf[S]()}
	for i := range simplex {
		j := i + 1
		if j == len(simplex) {
			j = 0
		}
		a := simplex[i].Diff
		b := simplex[j].Diff
		e := b.Sub(a)
		if e.LenSqr() <= epsilon[S]() {
			// duplicate support points produce zero-length edges
			continue
		}
		n := tripleProduct(e, a, e)
		if n.LenSqr() <= epsilon[S]() {
			// origin sits on the edge line, either perpendicular works
			n = Vec2[S]{X: e.Y, Y: -e.X}
		}
		n = n.Normalize()
		d := n.Dot(a)
		if d < edge.distance {
			edge = epaEdge2[S]{normal: n, distance: d, index: j}
		}
	}
	return edge
}

// contactFromEdge2 projects the origin onto the closest edge and lerps the
// witness points on the first shape for the contact location.
func contactFromEdge2[S Scalar](simplex []SupportPoint[Vec2[S]], e epaEdge2[S], approximate bool) Contact2[S] {
	b := simplex[e.index]
	ai := e.index - 1
	if ai < 0 {
		ai = len(simplex) - 1
	}
	a := simplex[ai]
	oa := a.Diff.Mul(-1)
	ab := b.Diff.Sub(a.Diff)
	var t S
	if denom := ab.LenSqr(); denom > epsilon[S]() {
		t = oa.Dot(ab) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return Contact2[S]{
		Strategy:         FullResolution,
		Normal:           e.normal,
		PenetrationDepth: e.distance,
		ContactPoint:     a.A.Add(b.A.Sub(a.A).Mul(t)),
		Approximate:      approximate,
	}
}
