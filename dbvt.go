package collide

import "fmt"

// nullNode marks an absent tree link.
const nullNode int32 = -1

const (
	// defaultTreeMargin fattens stored leaf bounds so small movements do
	// not force a reinsert.
	defaultTreeMargin = 0.1
	// displacementMultiplier stretches a moved leaf's bound along its
	// motion, betting it keeps going the same way.
	displacementMultiplier = 2
)

// treeBound is what the tree needs from a bounding volume. AABB2 and AABB3
// both satisfy it with V fixed to the matching vector type.
type treeBound[S Scalar, V any, B any] interface {
	Union(B) B
	Intersects(B) bool
	Contains(B) bool
	Cost() S
	Fatten(S) B
	Expand(V) B
}

type treeNode[S Scalar, B any, ID any] struct {
	// bound is fattened for leaves and the exact child union for
	// internal nodes.
	bound B
	id    ID
	// parentOrNext doubles as the free list link while the node is
	// unused.
	parentOrNext   int32
	child1, child2 int32
	// height is 0 for leaves and -1 for free nodes.
	height int32
}

func (n *treeNode[S, B, ID]) isLeaf() bool { return n.child1 == nullNode }

// Tree is a dynamic bounding volume hierarchy over an arena of nodes. Leaves
// carry fattened bounds and an opaque id, internal nodes are kept balanced
// with AVL rotations so queries stay logarithmic while bodies move around.
//
// Handles returned by Insert are only valid until Remove. Passing a handle
// the tree does not know is a programming error and panics.
type Tree[S Scalar, V vector[S, V], B treeBound[S, V, B], ID any] struct {
	root     int32
	nodes    []treeNode[S, B, ID]
	freeList int32
	margin   S
	count    int
}

// Tree2 and Tree3 fix the vector and bound types per dimension.
type (
	Tree2[S Scalar, ID any] = Tree[S, Vec2[S], AABB2[S], ID]
	Tree3[S Scalar, ID any] = Tree[S, Vec3[S], AABB3[S], ID]
)

// NewTree2 returns an empty 2D tree. A margin of zero or less selects the
// default fattening.
func NewTree2[S Scalar, ID any](margin S) *Tree2[S, ID] {
	return &Tree2[S, ID]{root: nullNode, freeList: nullNode, margin: treeMargin(margin)}
}

// NewTree3 returns an empty 3D tree. A margin of zero or less selects the
// default fattening.
func NewTree3[S Scalar, ID any](margin S) *Tree3[S, ID] {
	return &Tree3[S, ID]{root: nullNode, freeList: nullNode, margin: treeMargin(margin)}
}

func treeMargin[S Scalar](margin S) S {
	if margin <= 0 {
		return defaultTreeMargin
	}
	return margin
}

// Insert adds a leaf with the given tight bound, fattened by the tree
// margin, and returns its handle.
func (t *Tree[S, V, B, ID]) Insert(bound B, id ID) int32 {
	handle := t.allocateNode()
	n := &t.nodes[handle]
	n.bound = bound.Fatten(t.margin)
	n.id = id
	n.height = 0
	t.insertLeaf(handle)
	t.count++
	return handle
}

// Update moves a leaf to a new tight bound. While the tight bound still fits
// in the stored fattened one the tree is left untouched and Update reports
// false. Otherwise the leaf is reinserted with a bound fattened and stretched
// along the displacement since the last update.
func (t *Tree[S, V, B, ID]) Update(handle int32, bound B, displacement V) bool {
	n := t.leaf(handle)
	if n.bound.Contains(bound) {
		return false
	}
	t.removeLeaf(handle)
	t.nodes[handle].bound = bound.Fatten(t.margin).Expand(displacement.Mul(displacementMultiplier))
	t.insertLeaf(handle)
	return true
}

// Remove deletes a leaf. The handle is invalid afterwards.
func (t *Tree[S, V, B, ID]) Remove(handle int32) {
	t.leaf(handle)
	t.removeLeaf(handle)
	t.freeNode(handle)
	t.count--
}

// Data returns the id stored on a leaf.
func (t *Tree[S, V, B, ID]) Data(handle int32) ID {
	return t.leaf(handle).id
}

// FatBound returns the stored, fattened bound of a leaf.
func (t *Tree[S, V, B, ID]) FatBound(handle int32) B {
	return t.leaf(handle).bound
}

// Len is the number of leaves.
func (t *Tree[S, V, B, ID]) Len() int {
	return t.count
}

// Height is the height of the root, zero for an empty tree.
func (t *Tree[S, V, B, ID]) Height() int32 {
	if t.root == nullNode {
		return 0
	}
	return t.nodes[t.root].height
}

func (t *Tree[S, V, B, ID]) leaf(handle int32) *treeNode[S, B, ID] {
	if handle < 0 || int(handle) >= len(t.nodes) ||
		t.nodes[handle].height != 0 || !t.nodes[handle].isLeaf() {
		panic(fmt.Sprintf("collide: unknown tree handle %d", handle))
	}
	return &t.nodes[handle]
}

func (t *Tree[S, V, B, ID]) allocateNode() int32 {
	if t.freeList == nullNode {
		t.nodes = append(t.nodes, treeNode[S, B, ID]{
			parentOrNext: nullNode,
			child1:       nullNode,
			child2:       nullNode,
		})
		return int32(len(t.nodes) - 1)
	}
	handle := t.freeList
	n := &t.nodes[handle]
	t.freeList = n.parentOrNext
	n.parentOrNext = nullNode
	n.child1 = nullNode
	n.child2 = nullNode
	n.height = 0
	return handle
}

func (t *Tree[S, V, B, ID]) freeNode(handle int32) {
	n := &t.nodes[handle]
	n.parentOrNext = t.freeList
	n.height = -1
	var zero ID
	n.id = zero
	t.freeList = handle
}

// insertLeaf descends to the sibling whose pairing grows the tree least,
// splices a new parent in and walks back up rebalancing and refitting.
func (t *Tree[S, V, B, ID]) insertLeaf(leaf int32) {
	if t.root == nullNode {
		t.root = leaf
		t.nodes[leaf].parentOrNext = nullNode
		return
	}

	leafBound := t.nodes[leaf].bound
	index := t.root
	for !t.nodes[index].isLeaf() {
		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2

		area := t.nodes[index].bound.Cost()
		combinedArea := t.nodes[index].bound.Union(leafBound).Cost()

		// cost of pairing the leaf with this whole subtree
		cost := 2 * combinedArea
		inheritanceCost := 2 * (combinedArea - area)

		cost1 := t.descendCost(leafBound, child1) + inheritanceCost
		cost2 := t.descendCost(leafBound, child2) + inheritanceCost

		if cost < cost1 && cost < cost2 {
			break
		}
		if cost1 < cost2 {
			index = child1
		} else {
			index = child2
		}
	}
	sibling := index

	oldParent := t.nodes[sibling].parentOrNext
	newParent := t.allocateNode()
	t.nodes[newParent].parentOrNext = oldParent
	t.nodes[newParent].bound = leafBound.Union(t.nodes[sibling].bound)
	t.nodes[newParent].height = t.nodes[sibling].height + 1

	if oldParent != nullNode {
		if t.nodes[oldParent].child1 == sibling {
			t.nodes[oldParent].child1 = newParent
		} else {
			t.nodes[oldParent].child2 = newParent
		}
	} else {
		t.root = newParent
	}
	t.nodes[newParent].child1 = sibling
	t.nodes[newParent].child2 = leaf
	t.nodes[sibling].parentOrNext = newParent
	t.nodes[leaf].parentOrNext = newParent

	for index := t.nodes[leaf].parentOrNext; index != nullNode; index = t.nodes[index].parentOrNext {
		index = t.balance(index)
		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2
		t.nodes[index].height = 1 + max(t.nodes[child1].height, t.nodes[child2].height)
		t.nodes[index].bound = t.nodes[child1].bound.Union(t.nodes[child2].bound)
	}
}

// descendCost is the growth caused by pushing the leaf into a subtree. For
// internal nodes only the bound growth counts, a leaf costs its full pairing.
func (t *Tree[S, V, B, ID]) descendCost(leafBound B, child int32) S {
	n := &t.nodes[child]
	combined := leafBound.Union(n.bound).Cost()
	if n.isLeaf() {
		return combined
	}
	return combined - n.bound.Cost()
}

func (t *Tree[S, V, B, ID]) removeLeaf(leaf int32) {
	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.nodes[leaf].parentOrNext
	grandParent := t.nodes[parent].parentOrNext
	sibling := t.nodes[parent].child1
	if sibling == leaf {
		sibling = t.nodes[parent].child2
	}

	if grandParent == nullNode {
		t.root = sibling
		t.nodes[sibling].parentOrNext = nullNode
		t.freeNode(parent)
		return
	}

	// splice the sibling into the grandparent and refit upwards
	if t.nodes[grandParent].child1 == parent {
		t.nodes[grandParent].child1 = sibling
	} else {
		t.nodes[grandParent].child2 = sibling
	}
	t.nodes[sibling].parentOrNext = grandParent
	t.freeNode(parent)

	for index := grandParent; index != nullNode; index = t.nodes[index].parentOrNext {
		index = t.balance(index)
		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2
		t.nodes[index].bound = t.nodes[child1].bound.Union(t.nodes[child2].bound)
		t.nodes[index].height = 1 + max(t.nodes[child1].height, t.nodes[child2].height)
	}
}

// balance rotates the subtree at iA when its children differ in height by
// more than one, returning the index now occupying iA's position.
func (t *Tree[S, V, B, ID]) balance(iA int32) int32 {
	a := &t.nodes[iA]
	if a.isLeaf() || a.height < 2 {
		return iA
	}

	iB := a.child1
	iC := a.child2
	b := &t.nodes[iB]
	c := &t.nodes[iC]
	diff := c.height - b.height

	if diff > 1 {
		// rotate C up
		iF := c.child1
		iG := c.child2
		f := &t.nodes[iF]
		g := &t.nodes[iG]

		c.child1 = iA
		c.parentOrNext = a.parentOrNext
		a.parentOrNext = iC
		if c.parentOrNext != nullNode {
			if t.nodes[c.parentOrNext].child1 == iA {
				t.nodes[c.parentOrNext].child1 = iC
			} else {
				t.nodes[c.parentOrNext].child2 = iC
			}
		} else {
			t.root = iC
		}

		if f.height > g.height {
			c.child2 = iF
			a.child2 = iG
			g.parentOrNext = iA
			a.bound = b.bound.Union(g.bound)
			c.bound = a.bound.Union(f.bound)
			a.height = 1 + max(b.height, g.height)
			c.height = 1 + max(a.height, f.height)
		} else {
			c.child2 = iG
			a.child2 = iF
			f.parentOrNext = iA
			a.bound = b.bound.Union(f.bound)
			c.bound = a.bound.Union(g.bound)
			a.height = 1 + max(b.height, f.height)
			c.height = 1 + max(a.height, g.height)
		}
		return iC
	}

	if diff < -1 {
		// rotate B up
		iD := b.child1
		iE := b.child2
		d := &t.nodes[iD]
		e := &t.nodes[iE]

		b.child1 = iA
		b.parentOrNext = a.parentOrNext
		a.parentOrNext = iB
		if b.parentOrNext != nullNode {
			if t.nodes[b.parentOrNext].child1 == iA {
				t.nodes[b.parentOrNext].child1 = iB
			} else {
				t.nodes[b.parentOrNext].child2 = iB
			}
		} else {
			t.root = iB
		}

		if d.height > e.height {
			b.child2 = iD
			a.child1 = iE
			e.parentOrNext = iA
			a.bound = c.bound.Union(e.bound)
			b.bound = a.bound.Union(d.bound)
			a.height = 1 + max(c.height, e.height)
			b.height = 1 + max(a.height, d.height)
		} else {
			b.child2 = iE
			a.child1 = iD
			d.parentOrNext = iA
			a.bound = c.bound.Union(d.bound)
			b.bound = a.bound.Union(e.bound)
			a.height = 1 + max(c.height, d.height)
			b.height = 1 + max(a.height, e.height)
		}
		return iB
	}

	return iA
}

// Validate walks the whole arena and reports the first structural violation:
// broken parent links, stale heights, bounds not enclosing their children,
// or nodes leaked between the tree and the free list.
func (t *Tree[S, V, B, ID]) Validate() error {
	if t.root != nullNode && t.nodes[t.root].parentOrNext != nullNode {
		return fmt.Errorf("root %d has parent %d", t.root, t.nodes[t.root].parentOrNext)
	}
	leaves := 0
	var walk func(index, parent int32) error
	walk = func(index, parent int32) error {
		if index == nullNode {
			return nil
		}
		if index < 0 || int(index) >= len(t.nodes) {
			return fmt.Errorf("node index %d out of range", index)
		}
		n := &t.nodes[index]
		if n.height < 0 {
			return fmt.Errorf("node %d is on the free list", index)
		}
		if n.parentOrNext != parent {
			return fmt.Errorf("node %d has parent %d, expected %d", index, n.parentOrNext, parent)
		}
		if n.isLeaf() {
			leaves++
			if n.child2 != nullNode {
				return fmt.Errorf("leaf %d has child2 %d", index, n.child2)
			}
			if n.height != 0 {
				return fmt.Errorf("leaf %d has height %d", index, n.height)
			}
			return nil
		}
		c1, c2 := n.child1, n.child2
		if err := walk(c1, index); err != nil {
			return err
		}
		if err := walk(c2, index); err != nil {
			return err
		}
		if want := 1 + max(t.nodes[c1].height, t.nodes[c2].height); n.height != want {
			return fmt.Errorf("node %d has height %d, expected %d", index, n.height, want)
		}
		if union := t.nodes[c1].bound.Union(t.nodes[c2].bound); !n.bound.Contains(union) {
			return fmt.Errorf("node %d bound does not enclose its children", index)
		}
		return nil
	}
	if err := walk(t.root, nullNode); err != nil {
		return err
	}
	if leaves != t.count {
		return fmt.Errorf("found %d leaves, expected %d", leaves, t.count)
	}
	free := 0
	for handle := t.freeList; handle != nullNode; handle = t.nodes[handle].parentOrNext {
		if handle < 0 || int(handle) >= len(t.nodes) {
			return fmt.Errorf("free list index %d out of range", handle)
		}
		free++
	}
	live := 0
	for i := range t.nodes {
		if t.nodes[i].height >= 0 {
			live++
		}
	}
	if live+free != len(t.nodes) {
		return fmt.Errorf("%d live and %d free nodes do not cover the arena of %d", live, free, len(t.nodes))
	}
	return nil
}
