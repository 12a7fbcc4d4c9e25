package collide

// NarrowPhase2 resolves candidate pairs into actual contacts. Implementations
// receive whole collision shapes and deal with their primitive decomposition
// internally.
type NarrowPhase2[S Scalar] interface {
	// Collide tests two posed shapes and returns the deepest contact.
	Collide(left *CollisionShape2[S], leftPose Pose2[S], right *CollisionShape2[S], rightPose Pose2[S]) (Contact2[S], bool)
	// CollideContinuous tests two moving shapes across a step, reporting
	// the earliest contact with its time of impact.
	CollideContinuous(left *CollisionShape2[S], leftStart, leftEnd Pose2[S], right *CollisionShape2[S], rightStart, rightEnd Pose2[S]) (Contact2[S], bool)
}

// NarrowPhase3 is the 3D counterpart of NarrowPhase2.
type NarrowPhase3[S Scalar] interface {
	Collide(left *CollisionShape3[S], leftPose Pose3[S], right *CollisionShape3[S], rightPose Pose3[S]) (Contact3[S], bool)
	CollideContinuous(left *CollisionShape3[S], leftStart, leftEnd Pose3[S], right *CollisionShape3[S], rightStart, rightEnd Pose3[S]) (Contact3[S], bool)
}

var (
	_ NarrowPhase2[float32] = (*GJK2[float32])(nil)
	_ NarrowPhase3[float64] = (*GJK3[float64])(nil)
)

// Collide tests every primitive pair of the two shapes and returns the
// deepest contact found. When either shape asks for CollisionOnly the first
// overlapping pair short-circuits into a marker contact without penetration
// details. Pairs whose query does not converge are skipped with a warning,
// they never abort the remaining pairs.
func (g *GJK2[S]) Collide(left *CollisionShape2[S], leftPose Pose2[S], right *CollisionShape2[S], rightPose Pose2[S]) (Contact2[S], bool) {
	if left == nil || right == nil || !left.Enabled || !right.Enabled ||
		len(left.Primitives) == 0 || len(right.Primitives) == 0 {
		return Contact2[S]{}, false
	}
	if !boundAfter2(left.baseBound, leftPose).Intersects(boundAfter2(right.baseBound, rightPose)) {
		return Contact2[S]{}, false
	}
	markerOnly := left.Strategy == CollisionOnly || right.Strategy == CollisionOnly
	var (
		best  Contact2[S]
		found bool
	)
	for li := range left.Primitives {
		lp := &left.Primitives[li]
		lpose := leftPose.Mul(lp.LocalPose)
		for ri := range right.Primitives {
			rp := &right.Primitives[ri]
			rpose := rightPose.Mul(rp.LocalPose)
			simplex, err := g.Intersect(lp.Primitive, lpose, rp.Primitive, rpose)
			if err != nil {
				g.log().Warnf("narrow phase did not converge, skipping primitive pair: %v", err)
				continue
			}
			if simplex == nil {
				continue
			}
			if markerOnly {
				return Contact2[S]{Strategy: CollisionOnly}, true
			}
			contact, ok := epa2(simplex, lp.Primitive, lpose, rp.Primitive, rpose, g.maxIterations())
			if !ok {
				g.log().Debugf("penetration analysis rejected a degenerate simplex")
				continue
			}
			if !found || contact.PenetrationDepth > best.PenetrationDepth {
				best = contact
				found = true
			}
		}
	}
	return best, found
}

// CollideContinuous resolves a moving pair. Pairs already overlapping at the
// start report a contact at t=0. Otherwise every primitive pair is swept and
// the earliest impact wins. A final discrete test at the end poses catches
// contacts produced by rotation alone.
func (g *GJK2[S]) CollideContinuous(left *CollisionShape2[S], leftStart, leftEnd Pose2[S], right *CollisionShape2[S], rightStart, rightEnd Pose2[S]) (Contact2[S], bool) {
	if c, ok := g.Collide(left, leftStart, right, rightStart); ok {
		return c, true
	}
	if left == nil || right == nil || !left.Enabled || !right.Enabled {
		return Contact2[S]{}, false
	}
	markerOnly := left.Strategy == CollisionOnly || right.Strategy == CollisionOnly
	var (
		best  Contact2[S]
		found bool
	)
	for li := range left.Primitives {
		lp := &left.Primitives[li]
		ls := leftStart.Mul(lp.LocalPose)
		le := leftEnd.Mul(lp.LocalPose)
		for ri := range right.Primitives {
			rp := &right.Primitives[ri]
			rs := rightStart.Mul(rp.LocalPose)
			re := rightEnd.Mul(rp.LocalPose)
			contact, ok := g.TimeOfImpact(lp.Primitive, ls, le, rp.Primitive, rs, re)
			if !ok {
				continue
			}
			if !found || contact.TimeOfImpact < best.TimeOfImpact {
				best = contact
				found = true
			}
		}
	}
	if found {
		if markerOnly {
			return Contact2[S]{Strategy: CollisionOnly, TimeOfImpact: best.TimeOfImpact}, true
		}
		return best, true
	}
	if c, ok := g.Collide(left, leftEnd, right, rightEnd); ok {
		c.TimeOfImpact = 1
		return c, true
	}
	return Contact2[S]{}, false
}

// Collide tests every primitive pair of the two shapes and returns the
// deepest contact. See GJK2.Collide for the contract.
func (g *GJK3[S]) Collide(left *CollisionShape3[S], leftPose Pose3[S], right *CollisionShape3[S], rightPose Pose3[S]) (Contact3[S], bool) {
	if left == nil || right == nil || !left.Enabled || !right.Enabled ||
		len(left.Primitives) == 0 || len(right.Primitives) == 0 {
		return Contact3[S]{}, false
	}
	if !boundAfter3(left.baseBound, leftPose).Intersects(boundAfter3(right.baseBound, rightPose)) {
		return Contact3[S]{}, false
	}
	markerOnly := left.Strategy == CollisionOnly || right.Strategy == CollisionOnly
	var (
		best  Contact3[S]
		found bool
	)
	for li := range left.Primitives {
		lp := &left.Primitives[li]
		lpose := leftPose.Mul(lp.LocalPose)
		for ri := range right.Primitives {
			rp := &right.Primitives[ri]
			rpose := rightPose.Mul(rp.LocalPose)
			simplex, err := g.Intersect(lp.Primitive, lpose, rp.Primitive, rpose)
			if err != nil {
				g.log().Warnf("narrow phase did not converge, skipping primitive pair: %v", err)
				continue
			}
			if simplex == nil {
				continue
			}
			if markerOnly {
				return Contact3[S]{Strategy: CollisionOnly}, true
			}
			contact, ok := epa3(simplex, lp.Primitive, lpose, rp.Primitive, rpose, g.maxIterations())
			if !ok {
				g.log().Debugf("penetration analysis rejected a degenerate simplex")
				continue
			}
			if !found || contact.PenetrationDepth > best.PenetrationDepth {
				best = contact
				found = true
			}
		}
	}
	return best, found
}

// CollideContinuous resolves a moving pair. See GJK2.CollideContinuous for
// the contract.
func (g *GJK3[S]) CollideContinuous(left *CollisionShape3[S], leftStart, leftEnd Pose3[S], right *CollisionShape3[S], rightStart, rightEnd Pose3[S]) (Contact3[S], bool) {
	if c, ok := g.Collide(left, leftStart, right, rightStart); ok {
		return c, true
	}
	if left == nil || right == nil || !left.Enabled || !right.Enabled {
		return Contact3[S]{}, false
	}
	markerOnly := left.Strategy == CollisionOnly || right.Strategy == CollisionOnly
	var (
		best  Contact3[S]
		found bool
	)
	for li := range left.Primitives {
		lp := &left.Primitives[li]
		ls := leftStart.Mul(lp.LocalPose)
		le := leftEnd.Mul(lp.LocalPose)
		for ri := range right.Primitives {
			rp := &right.Primitives[ri]
			rs := rightStart.Mul(rp.LocalPose)
			re := rightEnd.Mul(rp.LocalPose)
			contact, ok := g.TimeOfImpact(lp.Primitive, ls, le, rp.Primitive, rs, re)
			if !ok {
				continue
			}
			if !found || contact.TimeOfImpact < best.TimeOfImpact {
				best = contact
				found = true
			}
		}
	}
	if found {
		if markerOnly {
			return Contact3[S]{Strategy: CollisionOnly, TimeOfImpact: best.TimeOfImpact}, true
		}
		return best, true
	}
	if c, ok := g.Collide(left, leftEnd, right, rightEnd); ok {
		c.TimeOfImpact = 1
		return c, true
	}
	return Contact3[S]{}, false
}
