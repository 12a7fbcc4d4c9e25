package collide

// dbvtBound combines what the tree and the broad phase front each need from
// a bounding volume.
type dbvtBound[S Scalar, V any, B any] interface {
	treeBound[S, V, B]
	broadBound[S, B]
	Center() V
}

// DBVTBroad drives a dynamic bounding volume tree as a broad phase. The tree
// is kept synchronized with the entry set between calls, so mostly static
// worlds only pay for the bodies that actually moved. Bodies are matched by
// id: entries that disappear are removed from the tree, new ones inserted,
// and moved ones refitted with their observed displacement.
type DBVTBroad[S Scalar, V vector[S, V], B dbvtBound[S, V, B], ID comparable] struct {
	tree    *Tree[S, V, B, ID]
	handles map[ID]int32
	centers map[ID]V
}

type (
	DBVTBroad2[S Scalar, ID comparable] = DBVTBroad[S, Vec2[S], AABB2[S], ID]
	DBVTBroad3[S Scalar, ID comparable] = DBVTBroad[S, Vec3[S], AABB3[S], ID]
)

// NewDBVTBroad2 returns a 2D tree-backed broad phase. A margin of zero or
// less selects the default leaf fattening.
func NewDBVTBroad2[S Scalar, ID comparable](margin S) *DBVTBroad2[S, ID] {
	return &DBVTBroad2[S, ID]{
		tree:    NewTree2[S, ID](margin),
		handles: make(map[ID]int32),
		centers: make(map[ID]Vec2[S]),
	}
}

// NewDBVTBroad3 returns a 3D tree-backed broad phase. A margin of zero or
// less selects the default leaf fattening.
func NewDBVTBroad3[S Scalar, ID comparable](margin S) *DBVTBroad3[S, ID] {
	return &DBVTBroad3[S, ID]{
		tree:    NewTree3[S, ID](margin),
		handles: make(map[ID]int32),
		centers: make(map[ID]Vec3[S]),
	}
}

// Tree exposes the underlying hierarchy for ray, frustum and custom
// queries against the same leaves the broad phase maintains.
func (d *DBVTBroad[S, V, B, ID]) Tree() *Tree[S, V, B, ID] {
	return d.tree
}

func (d *DBVTBroad[S, V, B, ID]) Compute(entries []BroadEntry[S, ID, B]) []Pair[ID] {
	// drop bodies that left the entry set
	present := make(map[ID]int, len(entries))
	for i := range entries {
		present[entries[i].ID] = i
	}
	for id, handle := range d.handles {
		if _, ok := present[id]; !ok {
			d.tree.Remove(handle)
			delete(d.handles, id)
			delete(d.centers, id)
		}
	}

	// insert new bodies, refit moved ones
	for i := range entries {
		e := &entries[i]
		if handle, ok := d.handles[e.ID]; ok {
			d.tree.Update(handle, e.Bound, e.Bound.Center().Sub(d.centers[e.ID]))
		} else {
			d.handles[e.ID] = d.tree.Insert(e.Bound, e.ID)
		}
		d.centers[e.ID] = e.Bound.Center()
	}

	// query each tight bound against the fat leaves, then filter exactly
	// so the pair set matches the other broad phases
	var pairs []Pair[ID]
	seen := make(map[[2]int]struct{})
	for i := range entries {
		e := &entries[i]
		d.tree.Query(e.Bound, func(other ID, _ B) bool {
			j := present[other]
			if j == i {
				return true
			}
			lo, hi := i, j
			if hi < lo {
				lo, hi = hi, lo
			}
			if _, dup := seen[[2]int{lo, hi}]; dup {
				return true
			}
			seen[[2]int{lo, hi}] = struct{}{}
			if entries[lo].Bound.Intersects(entries[hi].Bound) {
				pairs = append(pairs, Pair[ID]{A: entries[lo].ID, B: entries[hi].ID})
			}
			return true
		})
	}
	return pairs
}
