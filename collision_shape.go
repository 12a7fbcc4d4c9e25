package collide

// CollisionPrimitive2 is one convex part of a collision shape, offset from
// the body origin by its local pose.
type CollisionPrimitive2[S Scalar] struct {
	Primitive Shape2[S]
	LocalPose Pose2[S]
}

func NewCollisionPrimitive2[S Scalar](p Shape2[S], local Pose2[S]) CollisionPrimitive2[S] {
	return CollisionPrimitive2[S]{Primitive: p, LocalPose: local}
}

// localBound is the part's bound in body space.
func (p CollisionPrimitive2[S]) localBound() AABB2[S] {
	return boundAfter2(p.Primitive.Bound(), p.LocalPose)
}

// worldBound is the part's bound with the body placed at pose.
func (p CollisionPrimitive2[S]) worldBound(pose Pose2[S]) AABB2[S] {
	return boundAfter2(p.Primitive.Bound(), pose.Mul(p.LocalPose))
}

// CollisionShape2 is the collision component of a body: one or more convex
// parts plus the detection strategy and mode. The transformed bound is a
// cache refreshed by Update whenever the body's pose changes.
type CollisionShape2[S Scalar] struct {
	Enabled    bool
	Strategy   CollisionStrategy
	Mode       CollisionMode
	Filter     ShapeFilter
	Primitives []CollisionPrimitive2[S]

	baseBound        AABB2[S]
	transformedBound AABB2[S]
}

// NewCollisionShape2 builds a shape from primitives placed at the body
// origin.
func NewCollisionShape2[S Scalar](strategy CollisionStrategy, mode CollisionMode, shapes ...Shape2[S]) *CollisionShape2[S] {
	parts := make([]CollisionPrimitive2[S], 0, len(shapes))
	for _, s := range shapes {
		parts = append(parts, NewCollisionPrimitive2(s, Pose2Identity[S]()))
	}
	return NewComplexCollisionShape2(strategy, mode, parts)
}

// NewComplexCollisionShape2 builds a shape from parts with individual local
// poses.
func NewComplexCollisionShape2[S Scalar](strategy CollisionStrategy, mode CollisionMode, parts []CollisionPrimitive2[S]) *CollisionShape2[S] {
	s := &CollisionShape2[S]{
		Enabled:    true,
		Strategy:   strategy,
		Mode:       mode,
		Filter:     FilterAll,
		Primitives: parts,
	}
	if len(parts) > 0 {
		b := parts[0].localBound()
		for _, p := range parts[1:] {
			b = b.Union(p.localBound())
		}
		s.baseBound = b
		s.transformedBound = b
	}
	return s
}

// Bound is the cached world bound from the last Update.
func (s *CollisionShape2[S]) Bound() AABB2[S] { return s.transformedBound }

// Update refreshes the cached world bound. With a known next pose the
// bound is taken there, since that is where the narrow phase will test; in
// Continuous mode it grows to cover the whole sweep.
func (s *CollisionShape2[S]) Update(pose Pose2[S], next *Pose2[S]) {
	if next == nil {
		s.transformedBound = boundAfter2(s.baseBound, pose)
		return
	}
	b := boundAfter2(s.baseBound, *next)
	if s.Mode == Continuous {
		b = b.Union(boundAfter2(s.baseBound, pose))
	}
	s.transformedBound = b
}

// CollisionPrimitive3 is one convex part of a 3D collision shape.
type CollisionPrimitive3[S Scalar] struct {
	Primitive Shape3[S]
	LocalPose Pose3[S]
}

func NewCollisionPrimitive3[S Scalar](p Shape3[S], local Pose3[S]) CollisionPrimitive3[S] {
	return CollisionPrimitive3[S]{Primitive: p, LocalPose: local}
}

func (p CollisionPrimitive3[S]) localBound() AABB3[S] {
	return boundAfter3(p.Primitive.Bound(), p.LocalPose)
}

func (p CollisionPrimitive3[S]) worldBound(pose Pose3[S]) AABB3[S] {
	return boundAfter3(p.Primitive.Bound(), pose.Mul(p.LocalPose))
}

// CollisionShape3 is the 3D collision component of a body.
type CollisionShape3[S Scalar] struct {
	Enabled    bool
	Strategy   CollisionStrategy
	Mode       CollisionMode
	Filter     ShapeFilter
	Primitives []CollisionPrimitive3[S]

	baseBound        AABB3[S]
	transformedBound AABB3[S]
}

func NewCollisionShape3[S Scalar](strategy CollisionStrategy, mode CollisionMode, shapes ...Shape3[S]) *CollisionShape3[S] {
	parts := make([]CollisionPrimitive3[S], 0, len(shapes))
	for _, s := range shapes {
		parts = append(parts, NewCollisionPrimitive3(s, Pose3Identity[S]()))
	}
	return NewComplexCollisionShape3(strategy, mode, parts)
}

func NewComplexCollisionShape3[S Scalar](strategy CollisionStrategy, mode CollisionMode, parts []CollisionPrimitive3[S]) *CollisionShape3[S] {
	s := &CollisionShape3[S]{
		Enabled:    true,
		Strategy:   strategy,
		Mode:       mode,
		Filter:     FilterAll,
		Primitives: parts,
	}
	if len(parts) > 0 {
		b := parts[0].localBound()
		for _, p := range parts[1:] {
			b = b.Union(p.localBound())
		}
		s.baseBound = b
		s.transformedBound = b
	}
	return s
}

func (s *CollisionShape3[S]) Bound() AABB3[S] { return s.transformedBound }

func (s *CollisionShape3[S]) Update(pose Pose3[S], next *Pose3[S]) {
	if next == nil {
		s.transformedBound = boundAfter3(s.baseBound, pose)
		return
	}
	b := boundAfter3(s.baseBound, *next)
	if s.Mode == Continuous {
		b = b.Union(boundAfter3(s.baseBound, pose))
	}
	s.transformedBound = b
}
