package collide

// broadBound is what the broad phase algorithms need from a bounding volume.
// AABB2 and AABB3 both satisfy it.
type broadBound[S Scalar, B any] interface {
	Intersects(B) bool
	MinAxis(int) S
	MaxAxis(int) S
	Axes() int
}

// BroadEntry feeds one body into a broad phase: an opaque id plus the world
// bound it currently occupies.
type BroadEntry[S Scalar, ID comparable, B broadBound[S, B]] struct {
	ID    ID
	Bound B
}

// BroadEntry2 and BroadEntry3 fix the bound type per dimension.
type (
	BroadEntry2[S Scalar, ID comparable] = BroadEntry[S, ID, AABB2[S]]
	BroadEntry3[S Scalar, ID comparable] = BroadEntry[S, ID, AABB3[S]]
)

// BroadPhase produces candidate pairs whose bounds overlap. Every algorithm
// in this package reports the same pair set for the same input, they differ
// only in running time. Compute may reorder the entry slice.
type BroadPhase[S Scalar, ID comparable, B broadBound[S, B]] interface {
	Compute(entries []BroadEntry[S, ID, B]) []Pair[ID]
}

type (
	BroadPhase2[S Scalar, ID comparable] = BroadPhase[S, ID, AABB2[S]]
	BroadPhase3[S Scalar, ID comparable] = BroadPhase[S, ID, AABB3[S]]
)

// BruteForce tests every pair of bounds. Quadratic, but exact and a useful
// baseline for the smarter algorithms.
type BruteForce[S Scalar, ID comparable, B broadBound[S, B]] struct{}

type (
	BruteForce2[S Scalar, ID comparable] = BruteForce[S, ID, AABB2[S]]
	BruteForce3[S Scalar, ID comparable] = BruteForce[S, ID, AABB3[S]]
)

func (BruteForce[S, ID, B]) Compute(entries []BroadEntry[S, ID, B]) []Pair[ID] {
	var pairs []Pair[ID]
	for i := 0; i < len(entries)-1; i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].Bound.Intersects(entries[j].Bound) {
				pairs = append(pairs, Pair[ID]{A: entries[i].ID, B: entries[j].ID})
			}
		}
	}
	return pairs
}
