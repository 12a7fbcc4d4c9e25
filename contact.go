package collide

// CollisionStrategy selects how much work the narrow phase does for a pair.
// A pair yields contact details only when both shapes ask for FullResolution;
// one CollisionOnly side turns the whole pair into a marker, the way a trigger
// volume wants to know about touches without paying for manifolds.
type CollisionStrategy int

const (
	// CollisionOnly reports that a pair collided, nothing more.
	CollisionOnly CollisionStrategy = iota
	// FullResolution computes normal, penetration depth and contact point.
	FullResolution
)

// CollisionMode selects discrete or swept (time of impact) detection.
type CollisionMode int

const (
	Discrete CollisionMode = iota
	Continuous
)

// ShapeFilter decides whether two shapes may generate contacts. Shapes in
// the same non-zero group never collide; otherwise each side's categories
// must intersect the other side's mask.
type ShapeFilter struct {
	Group      uint
	Categories uint32
	Mask       uint32
}

// FilterAll collides with everything.
var FilterAll = ShapeFilter{Group: 0, Categories: ^uint32(0), Mask: ^uint32(0)}

func (f ShapeFilter) ShouldCollide(o ShapeFilter) bool {
	if f.Group != 0 && f.Group == o.Group {
		return false
	}
	return f.Categories&o.Mask != 0 && o.Categories&f.Mask != 0
}

// Contact is the narrow phase result for one pair. CollisionOnly pairs get
// a marker contact with zero normal and depth. Approximate is set when an
// iteration cap cut the computation short and the values are an estimate.
type Contact[S Scalar, V any] struct {
	Strategy         CollisionStrategy
	Normal           V
	PenetrationDepth S
	ContactPoint     V
	TimeOfImpact     S
	Approximate      bool
}

type Contact2[S Scalar] = Contact[S, Vec2[S]]
type Contact3[S Scalar] = Contact[S, Vec3[S]]

// Pair is an unordered pair of body ids, stored in discovery order.
type Pair[ID comparable] struct {
	A, B ID
}

// ContactEvent pairs a contact with the two bodies that produced it.
type ContactEvent[S Scalar, ID comparable, V any] struct {
	Bodies  Pair[ID]
	Contact Contact[S, V]
}

type ContactEvent2[S Scalar, ID comparable] = ContactEvent[S, ID, Vec2[S]]
type ContactEvent3[S Scalar, ID comparable] = ContactEvent[S, ID, Vec3[S]]
