package collide

import "math"

// SpatialHash buckets bounds into a uniform grid of hashed cells and only
// tests bounds sharing a cell. Fast and simple when bodies are roughly the
// size of a cell; oversized bounds touch many cells and degrade it, so pick
// the cell size near the typical body size.
type SpatialHash[S Scalar, ID comparable, B broadBound[S, B]] struct {
	cellSize S
	cells    map[uint64][]int
}

type (
	SpatialHash2[S Scalar, ID comparable] = SpatialHash[S, ID, AABB2[S]]
	SpatialHash3[S Scalar, ID comparable] = SpatialHash[S, ID, AABB3[S]]
)

// NewSpatialHash2 returns a 2D grid broad phase with the given cell size.
func NewSpatialHash2[S Scalar, ID comparable](cellSize S) *SpatialHash2[S, ID] {
	return &SpatialHash2[S, ID]{cellSize: cellSize, cells: make(map[uint64][]int)}
}

// NewSpatialHash3 returns a 3D grid broad phase with the given cell size.
func NewSpatialHash3[S Scalar, ID comparable](cellSize S) *SpatialHash3[S, ID] {
	return &SpatialHash3[S, ID]{cellSize: cellSize, cells: make(map[uint64][]int)}
}

func (h *SpatialHash[S, ID, B]) Compute(entries []BroadEntry[S, ID, B]) []Pair[ID] {
	clear(h.cells)
	for i := range entries {
		h.insert(i, entries[i].Bound)
	}

	// overlapping bounds always share at least one cell, the exact test
	// afterwards keeps the pair set identical to the other broad phases
	var pairs []Pair[ID]
	seen := make(map[[2]int]struct{})
	for _, bucket := range h.cells {
		for bi := 0; bi < len(bucket)-1; bi++ {
			for bj := bi + 1; bj < len(bucket); bj++ {
				lo, hi := bucket[bi], bucket[bj]
				if hi < lo {
					lo, hi = hi, lo
				}
				if _, dup := seen[[2]int{lo, hi}]; dup {
					continue
				}
				seen[[2]int{lo, hi}] = struct{}{}
				if entries[lo].Bound.Intersects(entries[hi].Bound) {
					pairs = append(pairs, Pair[ID]{A: entries[lo].ID, B: entries[hi].ID})
				}
			}
		}
	}
	return pairs
}

func (h *SpatialHash[S, ID, B]) insert(index int, b B) {
	var lo, hi [3]int
	for a := 0; a < b.Axes(); a++ {
		lo[a] = h.cellIndex(b.MinAxis(a))
		hi[a] = h.cellIndex(b.MaxAxis(a))
	}
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				key := hashCell(x, y, z)
				h.cells[key] = append(h.cells[key], index)
			}
		}
	}
}

func (h *SpatialHash[S, ID, B]) cellIndex(v S) int {
	return int(math.Floor(float64(v / h.cellSize)))
}

// hashCell mixes the cell coordinates with large primes.
func hashCell(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
