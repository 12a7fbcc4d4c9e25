package collide

// CollisionData2 is what the host hands the detection pipeline each cycle.
// The pipeline never stores ids between calls, so the host is free to add
// and remove bodies at any time. Lookups return false for bodies that are
// gone; the pipeline drops their pairs instead of resolving stale data.
type CollisionData2[S Scalar, ID comparable] interface {
	// BroadData returns one entry per body to consider, with the body's
	// current world bound.
	BroadData() []BroadEntry2[S, ID]
	// Shape returns the body's collision shape.
	Shape(id ID) (*CollisionShape2[S], bool)
	// Pose returns the body's current transform.
	Pose(id ID) (Pose2[S], bool)
	// NextPose returns the body's upcoming transform when the host
	// integrates ahead of detection, false when there is none.
	NextPose(id ID) (Pose2[S], bool)
}

// CollisionData3 is the 3D counterpart of CollisionData2.
type CollisionData3[S Scalar, ID comparable] interface {
	BroadData() []BroadEntry3[S, ID]
	Shape(id ID) (*CollisionShape3[S], bool)
	Pose(id ID) (Pose3[S], bool)
	NextPose(id ID) (Pose3[S], bool)
}

// BroadCollide2 runs one broad phase pass over the host's entries and
// returns the candidate pairs. Pair order and content are those of the
// broad phase; filters are applied later, in the narrow pass.
func BroadCollide2[S Scalar, ID comparable](broad BroadPhase2[S, ID], data CollisionData2[S, ID], log Logger) []Pair[ID] {
	if broad == nil || data == nil {
		return nil
	}
	log = orNop(log)
	entries := data.BroadData()
	pairs := broad.Compute(entries)
	if log.DebugEnabled() {
		log.Debugf("broad phase found %d candidate pairs among %d bodies", len(pairs), len(entries))
	}
	return pairs
}

// NarrowCollide2 resolves candidate pairs into contact events. Pairs whose
// shapes reject each other's collision filter produce no event. A body that
// disappeared between the phases drops its pairs with a warning. Pairs where
// either shape is in Continuous mode are swept from the current to the next
// transform; purely Discrete pairs are tested at the next transform when the
// host provides one, else at the current.
func NarrowCollide2[S Scalar, ID comparable](narrow NarrowPhase2[S], data CollisionData2[S, ID], pairs []Pair[ID], log Logger) []ContactEvent2[S, ID] {
	if narrow == nil || data == nil || len(pairs) == 0 {
		return nil
	}
	log = orNop(log)
	events := make([]ContactEvent2[S, ID], 0, len(pairs))
	for _, p := range pairs {
		left, ok := data.Shape(p.A)
		if !ok {
			log.Warnf("body %v disappeared before the narrow phase, dropping pair", p.A)
			continue
		}
		right, ok := data.Shape(p.B)
		if !ok {
			log.Warnf("body %v disappeared before the narrow phase, dropping pair", p.B)
			continue
		}
		if !left.Filter.ShouldCollide(right.Filter) {
			continue
		}
		leftPose, ok := data.Pose(p.A)
		if !ok {
			log.Warnf("body %v has no transform, dropping pair", p.A)
			continue
		}
		rightPose, ok := data.Pose(p.B)
		if !ok {
			log.Warnf("body %v has no transform, dropping pair", p.B)
			continue
		}
		leftEnd := leftPose
		if next, ok := data.NextPose(p.A); ok {
			leftEnd = next
		}
		rightEnd := rightPose
		if next, ok := data.NextPose(p.B); ok {
			rightEnd = next
		}
		var (
			contact Contact2[S]
			hit     bool
		)
		if left.Mode == Continuous || right.Mode == Continuous {
			contact, hit = narrow.CollideContinuous(left, leftPose, leftEnd, right, rightPose, rightEnd)
		} else {
			contact, hit = narrow.Collide(left, leftEnd, right, rightEnd)
		}
		if hit {
			events = append(events, ContactEvent2[S, ID]{Bodies: p, Contact: contact})
		}
	}
	if log.DebugEnabled() {
		log.Debugf("narrow phase produced %d contacts from %d candidate pairs", len(events), len(pairs))
	}
	return events
}

// BasicCollide2 is a full detection cycle: broad phase, then narrow phase.
func BasicCollide2[S Scalar, ID comparable](broad BroadPhase2[S, ID], narrow NarrowPhase2[S], data CollisionData2[S, ID], log Logger) []ContactEvent2[S, ID] {
	return NarrowCollide2(narrow, data, BroadCollide2(broad, data, log), log)
}

// TreeCollide2 is BasicCollide2 over a persistent bounding volume tree. The
// tree keeps its nodes between calls and only reinserts bodies whose bounds
// left their fattened proxies, so it is the cheapest choice for worlds where
// most bodies move a little every cycle.
func TreeCollide2[S Scalar, ID comparable](tree *DBVTBroad2[S, ID], narrow NarrowPhase2[S], data CollisionData2[S, ID], log Logger) []ContactEvent2[S, ID] {
	return BasicCollide2(tree, narrow, data, log)
}

// BroadCollide3 runs one broad phase pass over the host's entries and
// returns the candidate pairs.
func BroadCollide3[S Scalar, ID comparable](broad BroadPhase3[S, ID], data CollisionData3[S, ID], log Logger) []Pair[ID] {
	if broad == nil || data == nil {
		return nil
	}
	log = orNop(log)
	entries := data.BroadData()
	pairs := broad.Compute(entries)
	if log.DebugEnabled() {
		log.Debugf("broad phase found %d candidate pairs among %d bodies", len(pairs), len(entries))
	}
	return pairs
}

// NarrowCollide3 resolves candidate pairs into contact events, with the same
// filter, dropped-body and mode rules as NarrowCollide2.
func NarrowCollide3[S Scalar, ID comparable](narrow NarrowPhase3[S], data CollisionData3[S, ID], pairs []Pair[ID], log Logger) []ContactEvent3[S, ID] {
	if narrow == nil || data == nil || len(pairs) == 0 {
		return nil
	}
	log = orNop(log)
	events := make([]ContactEvent3[S, ID], 0, len(pairs))
	for _, p := range pairs {
		left, ok := data.Shape(p.A)
		if !ok {
			log.Warnf("body %v disappeared before the narrow phase, dropping pair", p.A)
			continue
		}
		right, ok := data.Shape(p.B)
		if !ok {
			log.Warnf("body %v disappeared before the narrow phase, dropping pair", p.B)
			continue
		}
		if !left.Filter.ShouldCollide(right.Filter) {
			continue
		}
		leftPose, ok := data.Pose(p.A)
		if !ok {
			log.Warnf("body %v has no transform, dropping pair", p.A)
			continue
		}
		rightPose, ok := data.Pose(p.B)
		if !ok {
			log.Warnf("body %v has no transform, dropping pair", p.B)
			continue
		}
		leftEnd := leftPose
		if next, ok := data.NextPose(p.A); ok {
			leftEnd = next
		}
		rightEnd := rightPose
		if next, ok := data.NextPose(p.B); ok {
			rightEnd = next
		}
		var (
			contact Contact3[S]
			hit     bool
		)
		if left.Mode == Continuous || right.Mode == Continuous {
			contact, hit = narrow.CollideContinuous(left, leftPose, leftEnd, right, rightPose, rightEnd)
		} else {
			contact, hit = narrow.Collide(left, leftEnd, right, rightEnd)
		}
		if hit {
			events = append(events, ContactEvent3[S, ID]{Bodies: p, Contact: contact})
		}
	}
	if log.DebugEnabled() {
		log.Debugf("narrow phase produced %d contacts from %d candidate pairs", len(events), len(pairs))
	}
	return events
}

// BasicCollide3 is a full detection cycle: broad phase, then narrow phase.
func BasicCollide3[S Scalar, ID comparable](broad BroadPhase3[S, ID], narrow NarrowPhase3[S], data CollisionData3[S, ID], log Logger) []ContactEvent3[S, ID] {
	return NarrowCollide3(narrow, data, BroadCollide3(broad, data, log), log)
}

// TreeCollide3 is BasicCollide3 over a persistent bounding volume tree.
func TreeCollide3[S Scalar, ID comparable](tree *DBVTBroad3[S, ID], narrow NarrowPhase3[S], data CollisionData3[S, ID], log Logger) []ContactEvent3[S, ID] {
	return BasicCollide3(tree, narrow, data, log)
}
