package collide

import (
	"cmp"
	"slices"
)

// SweepAndPrune sorts the bounds along a sweep axis and only tests bounds
// whose intervals on that axis overlap. Roughly linear when bodies are
// similar in size, degrading toward quadratic when a few bounds span the
// whole world. The sweep axis follows the axis of highest bound-center
// variance, recomputed every pass.
type SweepAndPrune[S Scalar, ID comparable, B broadBound[S, B]] struct {
	sweepAxis int
}

type (
	SweepAndPrune2[S Scalar, ID comparable] = SweepAndPrune[S, ID, AABB2[S]]
	SweepAndPrune3[S Scalar, ID comparable] = SweepAndPrune[S, ID, AABB3[S]]
)

// NewSweepAndPrune2 returns a 2D sweep and prune starting on the X axis.
func NewSweepAndPrune2[S Scalar, ID comparable]() *SweepAndPrune2[S, ID] {
	return &SweepAndPrune2[S, ID]{}
}

// NewSweepAndPrune3 returns a 3D sweep and prune starting on the X axis.
func NewSweepAndPrune3[S Scalar, ID comparable]() *SweepAndPrune3[S, ID] {
	return &SweepAndPrune3[S, ID]{}
}

// Axis returns the axis the next Compute call will sweep along.
func (sap *SweepAndPrune[S, ID, B]) Axis() int {
	return sap.sweepAxis
}

func (sap *SweepAndPrune[S, ID, B]) Compute(entries []BroadEntry[S, ID, B]) []Pair[ID] {
	var pairs []Pair[ID]
	if len(entries) <= 1 {
		return pairs
	}
	axis := sap.sweepAxis
	slices.SortFunc(entries, func(a, b BroadEntry[S, ID, B]) int {
		if c := cmp.Compare(a.Bound.MinAxis(axis), b.Bound.MinAxis(axis)); c != 0 {
			return c
		}
		return cmp.Compare(a.Bound.MaxAxis(axis), b.Bound.MaxAxis(axis))
	})

	var csum, csumsq [3]S
	accumulate := func(b B) {
		for a := 0; a < b.Axes(); a++ {
			c := (b.MinAxis(a) + b.MaxAxis(a)) / 2
			csum[a] += c
			csumsq[a] += c * c
		}
	}
	accumulate(entries[0].Bound)

	// indices of bounds whose interval on the sweep axis is still open
	active := make([]int, 0, len(entries))
	active = append(active, 0)
	for index := 1; index < len(entries); index++ {
		bound := entries[index].Bound
		for i := 0; i < len(active); {
			if entries[active[i]].Bound.MaxAxis(axis) < bound.MinAxis(axis) {
				active = append(active[:i], active[i+1:]...)
				continue
			}
			if entries[active[i]].Bound.Intersects(bound) {
				pairs = append(pairs, Pair[ID]{A: entries[active[i]].ID, B: entries[index].ID})
			}
			i++
		}
		active = append(active, index)
		accumulate(bound)
	}

	// pick the highest-variance axis for the next pass
	n := S(len(entries))
	var zero B
	best, bestVariance := 0, csumsq[0]-csum[0]*csum[0]/n
	for a := 1; a < zero.Axes(); a++ {
		if v := csumsq[a] - csum[a]*csum[a]/n; v > bestVariance {
			best, bestVariance = a, v
		}
	}
	sap.sweepAxis = best
	return pairs
}
