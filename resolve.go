package collide

// Contact resolution: positional correction plus a single impulse along the
// contact normal. The normal must point from body A toward body B, which is
// how the narrow phase orients it.

const (
	positionalCorrectionPercent = 0.2
	positionalCorrectionSlop    = 0.01
)

// Material holds the physical surface properties used by resolution and the
// mass calculators. Restitution is the fraction of relative normal velocity
// preserved by a bounce; the pair resolves with the smaller of its two.
type Material struct {
	Density     float64
	Restitution float64
}

var (
	// DefaultMaterial preserves all energy and derives mass from volume alone.
	DefaultMaterial = Material{Density: 1, Restitution: 1}

	Rock       = Material{Density: 0.6, Restitution: 0.1}
	Wood       = Material{Density: 0.3, Restitution: 0.2}
	Metal      = Material{Density: 1.2, Restitution: 0.05}
	BouncyBall = Material{Density: 0.3, Restitution: 0.8}
	SuperBall  = Material{Density: 0.3, Restitution: 0.95}
	Pillow     = Material{Density: 0.1, Restitution: 0.2}
	Static     = Material{Density: 0, Restitution: 0.4}
)

// Mass2 holds a 2D body's mass and moment of inertia with their inverses
// precomputed. Infinite mass or inertia inverts to zero, which is what keeps
// immovable bodies immovable through the resolution math.
type Mass2[S Scalar] struct {
	mass           S
	inverseMass    S
	inertia        S
	inverseInertia S
}

// NewMass2 builds mass properties from a mass and a moment of inertia.
func NewMass2[S Scalar](mass, inertia S) Mass2[S] {
	return Mass2[S]{
		mass:           mass,
		inverseMass:    invertMass(mass),
		inertia:        inertia,
		inverseInertia: invertInertia(inertia),
	}
}

// InfiniteMass2 is the mass of a body that never moves.
func InfiniteMass2[S Scalar]() Mass2[S] {
	return NewMass2(inf[S](), inf[S]())
}

func (m Mass2[S]) Mass() S           { return m.mass }
func (m Mass2[S]) InverseMass() S    { return m.inverseMass }
func (m Mass2[S]) Inertia() S        { return m.inertia }
func (m Mass2[S]) InverseInertia() S { return m.inverseInertia }

// Mass3 holds a 3D body's mass and inertia tensor with their inverses
// precomputed. The tensor is given in body space.
type Mass3[S Scalar] struct {
	mass           S
	inverseMass    S
	inertia        Mat3[S]
	inverseInertia Mat3[S]
}

// NewMass3 builds mass properties from a mass and a body space inertia
// tensor.
func NewMass3[S Scalar](mass S, inertia Mat3[S]) Mass3[S] {
	inverse := Mat3[S]{}
	if !isInf(inertia[0][0]) {
		inverse = inertia.Inverse()
	}
	return Mass3[S]{
		mass:           mass,
		inverseMass:    invertMass(mass),
		inertia:        inertia,
		inverseInertia: inverse,
	}
}

// InfiniteMass3 is the mass of a body that never moves.
func InfiniteMass3[S Scalar]() Mass3[S] {
	return NewMass3(inf[S](), Mat3Diagonal(inf[S]()))
}

func (m Mass3[S]) Mass() S                 { return m.mass }
func (m Mass3[S]) InverseMass() S          { return m.inverseMass }
func (m Mass3[S]) Inertia() Mat3[S]        { return m.inertia }
func (m Mass3[S]) InverseInertia() Mat3[S] { return m.inverseInertia }

// WorldInertia is the inertia tensor rotated into the body's current
// orientation.
func (m Mass3[S]) WorldInertia(orientation Quat[S]) Mat3[S] {
	r := orientation.Mat3()
	return r.Mul(m.inertia.Mul(r.Transpose()))
}

// WorldInverseInertia is the inverse inertia tensor rotated into the body's
// current orientation.
func (m Mass3[S]) WorldInverseInertia(orientation Quat[S]) Mat3[S] {
	r := orientation.Mat3()
	return r.Mul(m.inverseInertia.Mul(r.Transpose()))
}

func invertMass[S Scalar](mass S) S {
	if isInf(mass) {
		return 0
	}
	return 1 / mass
}

func invertInertia[S Scalar](inertia S) S {
	if inertia == 0 || isInf(inertia) {
		return 0
	}
	return 1 / inertia
}

// Velocity2 is a 2D body's linear and angular velocity, the angular part a
// signed rate around the z axis.
type Velocity2[S Scalar] struct {
	Linear  Vec2[S]
	Angular S
}

// Apply integrates the velocity over dt and returns the moved pose.
func (v Velocity2[S]) Apply(pose Pose2[S], dt S) Pose2[S] {
	return Pose2[S]{
		Position: pose.Position.Add(v.Linear.Mul(dt)),
		Rotation: pose.Rotation.Mul(Rot2FromAngle(v.Angular * dt)),
	}
}

// Velocity3 is a 3D body's linear and angular velocity, the angular part an
// axis scaled by the rate around it.
type Velocity3[S Scalar] struct {
	Linear  Vec3[S]
	Angular Vec3[S]
}

// Apply integrates the velocity over dt and returns the moved pose.
func (v Velocity3[S]) Apply(pose Pose3[S], dt S) Pose3[S] {
	rotation := pose.Rotation
	if speed := v.Angular.Len(); speed > 0 {
		rotation = rotation.Mul(QuatFromAxisAngle(v.Angular, speed*dt)).Normalize()
	}
	return Pose3[S]{
		Position: pose.Position.Add(v.Linear.Mul(dt)),
		Rotation: rotation,
	}
}

// ResolveData2 is one body's state handed to contact resolution. A nil
// Velocity marks a body whose velocity resolution must not touch.
type ResolveData2[S Scalar] struct {
	Velocity *Velocity2[S]
	Pose     Pose2[S]
	Mass     Mass2[S]
	Material Material
}

// ResolveData3 is the 3D counterpart of ResolveData2.
type ResolveData3[S Scalar] struct {
	Velocity *Velocity3[S]
	Pose     Pose3[S]
	Mass     Mass3[S]
	Material Material
}

// Change2 carries the pose and velocity a body should take after resolution.
// Nil fields mean no change.
type Change2[S Scalar] struct {
	Pose     *Pose2[S]
	Velocity *Velocity2[S]
}

// Apply copies the changes onto the given destinations, skipping nil ones.
func (c Change2[S]) Apply(pose *Pose2[S], velocity *Velocity2[S]) {
	if c.Pose != nil && pose != nil {
		*pose = *c.Pose
	}
	if c.Velocity != nil && velocity != nil {
		*velocity = *c.Velocity
	}
}

// Change3 is the 3D counterpart of Change2.
type Change3[S Scalar] struct {
	Pose     *Pose3[S]
	Velocity *Velocity3[S]
}

func (c Change3[S]) Apply(pose *Pose3[S], velocity *Velocity3[S]) {
	if c.Pose != nil && pose != nil {
		*pose = *c.Pose
	}
	if c.Velocity != nil && velocity != nil {
		*velocity = *c.Velocity
	}
}

// ResolveContact2 performs impulse resolution of a single contact and returns
// the changes for body A and body B. Positional correction runs first so the
// bodies stop sinking into each other; when the pair is separating already,
// or both bodies are immovable, the impulse is skipped.
func ResolveContact2[S Scalar](contact Contact2[S], a, b ResolveData2[S]) (Change2[S], Change2[S]) {
	var aChange, bChange Change2[S]

	aInverseMass := a.Mass.InverseMass()
	bInverseMass := b.Mass.InverseMass()
	totalInverseMass := aInverseMass + bInverseMass
	if totalInverseMass == 0 {
		return aChange, bChange
	}

	aPose, bPose := positionalCorrection2(contact, a.Pose, b.Pose, aInverseMass, bInverseMass)
	aChange.Pose = &aPose
	bChange.Pose = &bPose

	var aVelocity, bVelocity Velocity2[S]
	if a.Velocity != nil {
		aVelocity = *a.Velocity
	}
	if b.Velocity != nil {
		bVelocity = *b.Velocity
	}

	rA := contact.ContactPoint.Sub(a.Pose.Position)
	rB := contact.ContactPoint.Sub(b.Pose.Position)

	pointVelocityA := aVelocity.Linear.Add(crossSV(aVelocity.Angular, rA))
	pointVelocityB := bVelocity.Linear.Add(crossSV(bVelocity.Angular, rB))
	velocityAlongNormal := contact.Normal.Dot(pointVelocityB.Sub(pointVelocityA))
	if velocityAlongNormal > 0 {
		return aChange, bChange
	}

	e := S(min(a.Material.Restitution, b.Material.Restitution))
	aTensor := a.Mass.InverseInertia()
	bTensor := b.Mass.InverseInertia()
	angularA := contact.Normal.Dot(crossSV(aTensor*rA.Cross(contact.Normal), rA))
	angularB := contact.Normal.Dot(crossSV(bTensor*rB.Cross(contact.Normal), rB))

	j := -(1 + e) * velocityAlongNormal / (totalInverseMass + angularA + angularB)
	impulse := contact.Normal.Mul(j)

	if a.Velocity != nil {
		aChange.Velocity = &Velocity2[S]{
			Linear:  aVelocity.Linear.Sub(impulse.Mul(aInverseMass)),
			Angular: aVelocity.Angular - aTensor*rA.Cross(impulse),
		}
	}
	if b.Velocity != nil {
		bChange.Velocity = &Velocity2[S]{
			Linear:  bVelocity.Linear.Add(impulse.Mul(bInverseMass)),
			Angular: bVelocity.Angular + bTensor*rB.Cross(impulse),
		}
	}
	return aChange, bChange
}

// ResolveContact3 performs impulse resolution of a single 3D contact, with
// the same structure as ResolveContact2 but tensor valued inertia.
func ResolveContact3[S Scalar](contact Contact3[S], a, b ResolveData3[S]) (Change3[S], Change3[S]) {
	var aChange, bChange Change3[S]

	aInverseMass := a.Mass.InverseMass()
	bInverseMass := b.Mass.InverseMass()
	totalInverseMass := aInverseMass + bInverseMass
	if totalInverseMass == 0 {
		return aChange, bChange
	}

	aPose, bPose := positionalCorrection3(contact, a.Pose, b.Pose, aInverseMass, bInverseMass)
	aChange.Pose = &aPose
	bChange.Pose = &bPose

	var aVelocity, bVelocity Velocity3[S]
	if a.Velocity != nil {
		aVelocity = *a.Velocity
	}
	if b.Velocity != nil {
		bVelocity = *b.Velocity
	}

	rA := contact.ContactPoint.Sub(a.Pose.Position)
	rB := contact.ContactPoint.Sub(b.Pose.Position)

	pointVelocityA := aVelocity.Linear.Add(aVelocity.Angular.Cross(rA))
	pointVelocityB := bVelocity.Linear.Add(bVelocity.Angular.Cross(rB))
	velocityAlongNormal := contact.Normal.Dot(pointVelocityB.Sub(pointVelocityA))
	if velocityAlongNormal > 0 {
		return aChange, bChange
	}

	e := S(min(a.Material.Restitution, b.Material.Restitution))
	aTensor := a.Mass.WorldInverseInertia(a.Pose.Rotation)
	bTensor := b.Mass.WorldInverseInertia(b.Pose.Rotation)
	angularA := contact.Normal.Dot(aTensor.MulVec(rA.Cross(contact.Normal)).Cross(rA))
	angularB := contact.Normal.Dot(bTensor.MulVec(rB.Cross(contact.Normal)).Cross(rB))

	j := -(1 + e) * velocityAlongNormal / (totalInverseMass + angularA + angularB)
	impulse := contact.Normal.Mul(j)

	if a.Velocity != nil {
		aChange.Velocity = &Velocity3[S]{
			Linear:  aVelocity.Linear.Sub(impulse.Mul(aInverseMass)),
			Angular: aVelocity.Angular.Sub(aTensor.MulVec(rA.Cross(impulse))),
		}
	}
	if b.Velocity != nil {
		bChange.Velocity = &Velocity3[S]{
			Linear:  bVelocity.Linear.Add(impulse.Mul(bInverseMass)),
			Angular: bVelocity.Angular.Add(bTensor.MulVec(rB.Cross(impulse))),
		}
	}
	return aChange, bChange
}

// positionalCorrection2 pushes the bodies apart along the normal by a
// fraction of the penetration beyond the slop, split by inverse mass.
// Correcting only a fraction per step keeps stacked bodies stable.
func positionalCorrection2[S Scalar](contact Contact2[S], aPose, bPose Pose2[S], aInverseMass, bInverseMass S) (Pose2[S], Pose2[S]) {
	magnitude := correctionMagnitude(contact.PenetrationDepth, aInverseMass+bInverseMass)
	correction := contact.Normal.Mul(magnitude)
	aPose.Position = aPose.Position.Sub(correction.Mul(aInverseMass))
	bPose.Position = bPose.Position.Add(correction.Mul(bInverseMass))
	return aPose, bPose
}

func positionalCorrection3[S Scalar](contact Contact3[S], aPose, bPose Pose3[S], aInverseMass, bInverseMass S) (Pose3[S], Pose3[S]) {
	magnitude := correctionMagnitude(contact.PenetrationDepth, aInverseMass+bInverseMass)
	correction := contact.Normal.Mul(magnitude)
	aPose.Position = aPose.Position.Sub(correction.Mul(aInverseMass))
	bPose.Position = bPose.Position.Add(correction.Mul(bInverseMass))
	return aPose, bPose
}

func correctionMagnitude[S Scalar](penetrationDepth, totalInverseMass S) S {
	depth := penetrationDepth - S(positionalCorrectionSlop)
	if depth < 0 {
		depth = 0
	}
	return depth / totalInverseMass * S(positionalCorrectionPercent)
}

// RigidBody2 bundles the physical state batch resolution reads and writes.
type RigidBody2[S Scalar] struct {
	Active   bool
	Pose     Pose2[S]
	Velocity Velocity2[S]
	Mass     Mass2[S]
	Material Material
}

// RigidBody3 is the 3D counterpart of RigidBody2.
type RigidBody3[S Scalar] struct {
	Active   bool
	Pose     Pose3[S]
	Velocity Velocity3[S]
	Mass     Mass3[S]
	Material Material
}

// ResolveContacts2 resolves a batch of contact events in order, applying each
// pair's changes before the next event is looked at. Bodies are fetched
// through lookup at resolution time; an event whose body is gone or inactive
// is dropped with a warning rather than resolved against stale state. Marker
// contacts carry no geometry and are skipped.
func ResolveContacts2[S Scalar, ID comparable](events []ContactEvent2[S, ID], lookup func(ID) (*RigidBody2[S], bool), log Logger) {
	log = orNop(log)
	for _, event := range events {
		if event.Contact.Strategy != FullResolution {
			continue
		}
		a, ok := lookup(event.Bodies.A)
		if !ok || a == nil || !a.Active {
			log.Warnf("body %v is gone or inactive, dropping its contact", event.Bodies.A)
			continue
		}
		b, ok := lookup(event.Bodies.B)
		if !ok || b == nil || !b.Active {
			log.Warnf("body %v is gone or inactive, dropping its contact", event.Bodies.B)
			continue
		}
		aChange, bChange := ResolveContact2(event.Contact,
			ResolveData2[S]{Velocity: &a.Velocity, Pose: a.Pose, Mass: a.Mass, Material: a.Material},
			ResolveData2[S]{Velocity: &b.Velocity, Pose: b.Pose, Mass: b.Mass, Material: b.Material})
		aChange.Apply(&a.Pose, &a.Velocity)
		bChange.Apply(&b.Pose, &b.Velocity)
	}
}

// ResolveContacts3 is the 3D counterpart of ResolveContacts2.
func ResolveContacts3[S Scalar, ID comparable](events []ContactEvent3[S, ID], lookup func(ID) (*RigidBody3[S], bool), log Logger) {
	log = orNop(log)
	for _, event := range events {
		if event.Contact.Strategy != FullResolution {
			continue
		}
		a, ok := lookup(event.Bodies.A)
		if !ok || a == nil || !a.Active {
			log.Warnf("body %v is gone or inactive, dropping its contact", event.Bodies.A)
			continue
		}
		b, ok := lookup(event.Bodies.B)
		if !ok || b == nil || !b.Active {
			log.Warnf("body %v is gone or inactive, dropping its contact", event.Bodies.B)
			continue
		}
		aChange, bChange := ResolveContact3(event.Contact,
			ResolveData3[S]{Velocity: &a.Velocity, Pose: a.Pose, Mass: a.Mass, Material: a.Material},
			ResolveData3[S]{Velocity: &b.Velocity, Pose: b.Pose, Mass: b.Mass, Material: b.Material})
		aChange.Apply(&a.Pose, &a.Velocity)
		bChange.Apply(&b.Pose, &b.Velocity)
	}
}
