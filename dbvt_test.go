package collide

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeInsertRemoveValidate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := NewTree2[float64, int](0)
	handles := make([]int32, 0, 64)
	for i := 0; i < 64; i++ {
		c := V2(rng.Float64()*100-50, rng.Float64()*100-50)
		h := V2(rng.Float64()*2+0.1, rng.Float64()*2+0.1)
		handles = append(handles, tree.Insert(NewAABB2(c.Sub(h), c.Add(h)), i))
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, 64, tree.Len())
	assert.LessOrEqual(t, tree.Height(), int32(12))

	for i, h := range handles {
		require.Equal(t, i, tree.Data(h))
		tree.Remove(h)
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, 0, tree.Len())
	require.Equal(t, int32(0), tree.Height())
}

func TestTreeBalancedOnSortedInserts(t *testing.T) {
	tree := NewTree2[float64, int](0)
	for i := 0; i < 128; i++ {
		x := float64(i) * 2
		tree.Insert(NewAABB2(V2(x, 0.0), V2(x+1, 1.0)), i)
	}
	require.NoError(t, tree.Validate())
	require.Equal(t, 128, tree.Len())
	// a degenerate chain would be 127 levels deep
	assert.LessOrEqual(t, tree.Height(), int32(14))
}

func TestTreeUpdateKeepsFatBound(t *testing.T) {
	tree := NewTree2[float64, int](0.5)
	h := tree.Insert(NewAABB2(V2(0.0, 0.0), V2(1.0, 1.0)), 42)
	require.Equal(t, NewAABB2(V2(-0.5, -0.5), V2(1.5, 1.5)), tree.FatBound(h))

	// a small move stays inside the fat bound and costs nothing
	require.False(t, tree.Update(h, NewAABB2(V2(0.2, 0.0), V2(1.2, 1.0)), V2(0.2, 0.0)))
	require.Equal(t, NewAABB2(V2(-0.5, -0.5), V2(1.5, 1.5)), tree.FatBound(h))

	// a large move reinserts, growing the bound along the motion
	require.True(t, tree.Update(h, NewAABB2(V2(5.0, 0.0), V2(6.0, 1.0)), V2(5.0, 0.0)))
	require.Equal(t, NewAABB2(V2(4.5, -0.5), V2(16.5, 1.5)), tree.FatBound(h))
	require.Equal(t, 42, tree.Data(h))
}

func TestTreePanicsOnUnknownHandle(t *testing.T) {
	tree := NewTree2[float64, int](0)
	h := tree.Insert(NewAABB2(V2(0.0, 0.0), V2(1.0, 1.0)), 1)
	tree.Remove(h)
	require.PanicsWithValue(t, "collide: unknown tree handle 0", func() {
		tree.Data(h)
	})
	require.Panics(t, func() {
		tree.FatBound(99)
	})
}

func rowTree(margin float64) *Tree2[float64, int] {
	tree := NewTree2[float64, int](margin)
	for i := 0; i < 10; i++ {
		x := float64(i) * 3
		tree.Insert(NewAABB2(V2(x, 0.0), V2(x+1, 1.0)), i)
	}
	return tree
}

func TestTreeQuery(t *testing.T) {
	tree := rowTree(0.1)
	var found []int
	tree.Query(NewAABB2(V2(2.5, 0.0), V2(7.0, 1.0)), func(id int, _ AABB2[float64]) bool {
		found = append(found, id)
		return true
	})
	slices.Sort(found)
	require.Equal(t, []int{1, 2}, found)

	// returning false stops the walk after the first leaf
	visits := 0
	tree.Query(NewAABB2(V2(2.5, 0.0), V2(7.0, 1.0)), func(int, AABB2[float64]) bool {
		visits++
		return false
	})
	require.Equal(t, 1, visits)
}

func TestTreeQueryRay(t *testing.T) {
	tree := rowTree(0.1)
	ray := Ray2[float64]{Origin: V2(-2.0, 0.5), Direction: V2(1.0, 0.0)}

	hits := 0
	QueryRay2(tree, ray, 100, func(int, float64) bool {
		hits++
		return true
	})
	require.Equal(t, 10, hits)

	// fat bounds start at 3i-0.1, giving hits at t=3i+1.9
	hits = 0
	QueryRay2(tree, ray, 7, func(int, float64) bool {
		hits++
		return true
	})
	require.Equal(t, 2, hits)

	id, at, ok := QueryRayClosest2(tree, ray, 100)
	require.True(t, ok)
	require.Equal(t, 0, id)
	require.InDelta(t, 1.9, at, 1e-9)

	_, _, ok = QueryRayClosest2(tree, Ray2[float64]{Origin: V2(0.5, 5.0), Direction: V2(0.0, 1.0)}, 100)
	require.False(t, ok)
}

func TestTreeQueryFrustum(t *testing.T) {
	tree := rowTree(0.1)
	// the band 2 <= x <= 11
	f := Frustum2[float64]{Planes: []Plane2[float64]{
		{Normal: V2(1.0, 0.0), D: 2},
		{Normal: V2(-1.0, 0.0), D: -11},
	}}
	var found []int
	QueryFrustum2(tree, f, func(id int, _ AABB2[float64]) bool {
		found = append(found, id)
		return true
	})
	slices.Sort(found)
	require.Equal(t, []int{1, 2, 3}, found)
}
