package collide

// Visit walks the tree guided by relate. RelationOut prunes a subtree,
// RelationCross descends into it, and RelationIn accepts every leaf below
// without further relate calls. visit returning false stops the whole walk.
func (t *Tree[S, V, B, ID]) Visit(relate func(bound B) Relation, visit func(id ID, bound B) bool) {
	if t.root == nullNode {
		return
	}
	type frame struct {
		node   int32
		inside bool
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{node: t.root})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.node]
		inside := f.inside
		if !inside {
			switch relate(n.bound) {
			case RelationOut:
				continue
			case RelationIn:
				inside = true
			}
		}
		if n.isLeaf() {
			if !visit(n.id, n.bound) {
				return
			}
			continue
		}
		stack = append(stack,
			frame{node: n.child1, inside: inside},
			frame{node: n.child2, inside: inside})
	}
}

// Query visits every leaf whose stored fattened bound overlaps the given
// bound. visit returning false stops the walk.
func (t *Tree[S, V, B, ID]) Query(bound B, visit func(id ID, b B) bool) {
	t.Visit(func(b B) Relation {
		if !bound.Intersects(b) {
			return RelationOut
		}
		if bound.Contains(b) {
			return RelationIn
		}
		return RelationCross
	}, visit)
}

// queryRay walks the tree with a bound piercing test, visiting leaves with
// the entry parameter of the ray into their stored bound.
func queryRay[S Scalar, V vector[S, V], B treeBound[S, V, B], ID any](
	t *Tree[S, V, B, ID],
	pierce func(b B, tmax S) (S, bool),
	tmax S,
	visit func(id ID, at S) bool,
) {
	if t.root == nullNode {
		return
	}
	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[index]
		at, ok := pierce(n.bound, tmax)
		if !ok {
			continue
		}
		if n.isLeaf() {
			if !visit(n.id, at) {
				return
			}
			continue
		}
		stack = append(stack, n.child1, n.child2)
	}
}

// QueryRay2 visits every leaf whose stored bound is pierced by the ray
// within tmax, reporting the entry parameter. Leaves arrive in tree order,
// not sorted along the ray.
func QueryRay2[S Scalar, ID any](t *Tree2[S, ID], ray Ray2[S], tmax S, visit func(id ID, at S) bool) {
	queryRay(t, func(b AABB2[S], cap S) (S, bool) {
		return b.RayIntersection(ray, cap)
	}, tmax, visit)
}

// QueryRay3 is the 3D counterpart of QueryRay2.
func QueryRay3[S Scalar, ID any](t *Tree3[S, ID], ray Ray3[S], tmax S, visit func(id ID, at S) bool) {
	queryRay(t, func(b AABB3[S], cap S) (S, bool) {
		return b.RayIntersection(ray, cap)
	}, tmax, visit)
}

func queryRayClosest[S Scalar, V vector[S, V], B treeBound[S, V, B], ID any](
	t *Tree[S, V, B, ID],
	pierce func(b B, tmax S) (S, bool),
	tmax S,
) (ID, S, bool) {
	var (
		id    ID
		found bool
	)
	best := tmax
	queryRay(t, func(b B, _ S) (S, bool) {
		// shrink the cap as hits come in so far subtrees are pruned
		return pierce(b, best)
	}, tmax, func(leaf ID, at S) bool {
		if at < best || !found {
			best = at
			id = leaf
			found = true
		}
		return true
	})
	return id, best, found
}

// QueryRayClosest2 returns the leaf whose stored bound the ray enters first,
// with the entry parameter. The second return is the parameter, the third is
// false when nothing is hit within tmax.
func QueryRayClosest2[S Scalar, ID any](t *Tree2[S, ID], ray Ray2[S], tmax S) (ID, S, bool) {
	return queryRayClosest(t, func(b AABB2[S], cap S) (S, bool) {
		return b.RayIntersection(ray, cap)
	}, tmax)
}

// QueryRayClosest3 is the 3D counterpart of QueryRayClosest2.
func QueryRayClosest3[S Scalar, ID any](t *Tree3[S, ID], ray Ray3[S], tmax S) (ID, S, bool) {
	return queryRayClosest(t, func(b AABB3[S], cap S) (S, bool) {
		return b.RayIntersection(ray, cap)
	}, tmax)
}

// QueryFrustum2 visits every leaf whose stored bound is at least partly
// inside the frustum.
func QueryFrustum2[S Scalar, ID any](t *Tree2[S, ID], f Frustum2[S], visit func(id ID, bound AABB2[S]) bool) {
	t.Visit(f.Relate, visit)
}

// QueryFrustum3 is the 3D counterpart of QueryFrustum2.
func QueryFrustum3[S Scalar, ID any](t *Tree3[S, ID], f Frustum3[S], visit func(id ID, bound AABB3[S]) bool) {
	t.Visit(f.Relate, visit)
}
