package collide

import (
	"math/rand"
	"slices"
	"testing"
)

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// pairSet normalizes a pair list into a set, failing on self pairs and
// duplicates since no algorithm may ever produce them.
func pairSet(t *testing.T, name string, pairs []Pair[int]) map[[2]int]bool {
	t.Helper()
	set := make(map[[2]int]bool, len(pairs))
	for _, p := range pairs {
		if p.A == p.B {
			t.Fatalf("%s emitted the self pair %v", name, p)
		}
		k := pairKey(p.A, p.B)
		if set[k] {
			t.Fatalf("%s emitted the duplicate pair %v", name, p)
		}
		set[k] = true
	}
	return set
}

func TestBruteForcePairOrder(t *testing.T) {
	var brute BruteForce2[float64, int]
	entries := []BroadEntry2[float64, int]{
		{ID: 7, Bound: NewAABB2(V2(0.0, 0.0), V2(2.0, 2.0))},
		{ID: 8, Bound: NewAABB2(V2(1.0, 1.0), V2(3.0, 3.0))},
		{ID: 9, Bound: NewAABB2(V2(1.5, 0.5), V2(2.5, 1.5))},
	}
	pairs := brute.Compute(entries)
	want := []Pair[int]{{A: 7, B: 8}, {A: 7, B: 9}, {A: 8, B: 9}}
	if len(pairs) != len(want) {
		t.Fatalf("Expected %d pairs, got %v", len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("Expected pair %v at %d, got %v", want[i], i, pairs[i])
		}
	}
}

func randomEntries2(count int) []BroadEntry2[float64, int] {
	rng := rand.New(rand.NewSource(42))
	entries := make([]BroadEntry2[float64, int], count)
	for i := range entries {
		cx := rng.Float64()*40 - 20
		cy := rng.Float64()*40 - 20
		hx := rng.Float64()*2 + 0.1
		hy := rng.Float64()*2 + 0.1
		entries[i] = BroadEntry2[float64, int]{ID: i, Bound: NewAABB2(V2(cx-hx, cy-hy), V2(cx+hx, cy+hy))}
	}
	return entries
}

func TestBroadPhasesAgree2D(t *testing.T) {
	entries := randomEntries2(80)
	var brute BruteForce2[float64, int]
	want := pairSet(t, "brute force", brute.Compute(slices.Clone(entries)))
	if len(want) == 0 {
		t.Fatalf("Fixture produced no overlaps")
	}
	phases := map[string]BroadPhase2[float64, int]{
		"sweep and prune": NewSweepAndPrune2[float64, int](),
		"spatial hash":    NewSpatialHash2[float64, int](2.5),
		"dbvt":            NewDBVTBroad2[float64, int](0),
	}
	// Compute may reorder its input, every phase gets a fresh copy
	for name, phase := range phases {
		got := pairSet(t, name, phase.Compute(slices.Clone(entries)))
		for k := range want {
			if !got[k] {
				t.Errorf("%s missed pair %v", name, k)
			}
		}
		for k := range got {
			if !want[k] {
				t.Errorf("%s invented pair %v", name, k)
			}
		}
	}
}

func TestBroadPhasesAgree3D(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	entries := make([]BroadEntry3[float64, int], 80)
	for i := range entries {
		c := V3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		h := V3(rng.Float64()*2+0.1, rng.Float64()*2+0.1, rng.Float64()*2+0.1)
		entries[i] = BroadEntry3[float64, int]{ID: i, Bound: NewAABB3(c.Sub(h), c.Add(h))}
	}
	var brute BruteForce3[float64, int]
	want := pairSet(t, "brute force", brute.Compute(slices.Clone(entries)))
	phases := map[string]BroadPhase3[float64, int]{
		"sweep and prune": NewSweepAndPrune3[float64, int](),
		"spatial hash":    NewSpatialHash3[float64, int](2.5),
		"dbvt":            NewDBVTBroad3[float64, int](0),
	}
	for name, phase := range phases {
		got := pairSet(t, name, phase.Compute(slices.Clone(entries)))
		for k := range want {
			if !got[k] {
				t.Errorf("%s missed pair %v", name, k)
			}
		}
		for k := range got {
			if !want[k] {
				t.Errorf("%s invented pair %v", name, k)
			}
		}
	}
}

func TestSweepAndPruneAxisAdaptation(t *testing.T) {
	sap := NewSweepAndPrune2[float64, int]()
	if sap.Axis() != 0 {
		t.Fatalf("Fresh sweep should sort on x, got axis %v", sap.Axis())
	}
	// entries strung out along y, stacked on x
	entries := make([]BroadEntry2[float64, int], 10)
	for i := range entries {
		y := float64(i) * 5
		entries[i] = BroadEntry2[float64, int]{ID: i, Bound: NewAABB2(V2(0.0, y), V2(1.0, y+1))}
	}
	sap.Compute(entries)
	if sap.Axis() != 1 {
		t.Errorf("Expected the sort axis to adapt to y, got %v", sap.Axis())
	}
}

func TestDBVTBroadTracksEntrySet(t *testing.T) {
	broad := NewDBVTBroad2[float64, int](0)
	pairs := broad.Compute([]BroadEntry2[float64, int]{
		{ID: 1, Bound: NewAABB2(V2(0.0, 0.0), V2(1.0, 1.0))},
		{ID: 2, Bound: NewAABB2(V2(0.5, 0.0), V2(1.5, 1.0))},
		{ID: 3, Bound: NewAABB2(V2(10.0, 0.0), V2(11.0, 1.0))},
	})
	got := pairSet(t, "dbvt", pairs)
	if len(got) != 1 || !got[pairKey(1, 2)] {
		t.Errorf("Expected only pair (1,2), got %v", pairs)
	}
	if broad.Tree().Len() != 3 {
		t.Errorf("Expected 3 leaves, got %v", broad.Tree().Len())
	}

	// id 3 moves next to id 1, id 2 leaves the world
	pairs = broad.Compute([]BroadEntry2[float64, int]{
		{ID: 1, Bound: NewAABB2(V2(0.0, 0.0), V2(1.0, 1.0))},
		{ID: 3, Bound: NewAABB2(V2(0.5, 0.0), V2(1.5, 1.0))},
	})
	got = pairSet(t, "dbvt", pairs)
	if len(got) != 1 || !got[pairKey(1, 3)] {
		t.Errorf("Expected only pair (1,3), got %v", pairs)
	}
	if broad.Tree().Len() != 2 {
		t.Errorf("Expected 2 leaves, got %v", broad.Tree().Len())
	}
	if err := broad.Tree().Validate(); err != nil {
		t.Errorf("Tree invariants violated: %v", err)
	}
}

func TestSpatialHashOversizedBound(t *testing.T) {
	hash := NewSpatialHash2[float64, int](2.0)
	pairs := hash.Compute([]BroadEntry2[float64, int]{
		{ID: 1, Bound: NewAABB2(V2(-5.0, -5.0), V2(5.0, 5.0))},
		{ID: 2, Bound: NewAABB2(V2(0.2, 0.2), V2(0.8, 0.8))},
	})
	// the large bound spans many cells, the pair must still come out once
	got := pairSet(t, "spatial hash", pairs)
	if len(got) != 1 || !got[pairKey(1, 2)] {
		t.Errorf("Expected only pair (1,2), got %v", pairs)
	}
}
