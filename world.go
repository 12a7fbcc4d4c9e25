package collide

import "sync"

// World2 is a map backed body store implementing CollisionData2. It is the
// reference data source for hosts without their own component storage; the
// bench tool and the tests run on it. Reads and writes are guarded, so poses
// may be updated from one goroutine while another runs a detection cycle,
// though a cycle sees whatever mix of old and new poses the interleaving
// produces.
type World2[S Scalar, ID comparable] struct {
	mu     sync.RWMutex
	bodies map[ID]*worldBody2[S]
	order  []ID
}

type worldBody2[S Scalar] struct {
	shape *CollisionShape2[S]
	pose  Pose2[S]
	next  *Pose2[S]
}

func NewWorld2[S Scalar, ID comparable]() *World2[S, ID] {
	return &World2[S, ID]{bodies: make(map[ID]*worldBody2[S])}
}

// Add registers a body, replacing any previous body with the same id.
func (w *World2[S, ID]) Add(id ID, shape *CollisionShape2[S], pose Pose2[S]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bodies[id]; !ok {
		w.order = append(w.order, id)
	}
	w.bodies[id] = &worldBody2[S]{shape: shape, pose: pose}
}

// Remove drops a body. Contacts already produced for it are the caller's to
// discard; the resolution helpers drop them on lookup.
func (w *World2[S, ID]) Remove(id ID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bodies[id]; !ok {
		return false
	}
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// SetPose moves a body and forgets any stored next pose.
func (w *World2[S, ID]) SetPose(id ID, pose Pose2[S]) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	b.pose = pose
	b.next = nil
	return true
}

// SetNextPose stores the transform the body will take after the step, for
// swept detection.
func (w *World2[S, ID]) SetNextPose(id ID, next Pose2[S]) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	b.next = &next
	return true
}

func (w *World2[S, ID]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// BroadData refreshes every enabled shape's world bound and returns the
// entries in insertion order, which keeps pair order deterministic.
func (w *World2[S, ID]) BroadData() []BroadEntry2[S, ID] {
	w.mu.Lock()
	defer w.mu.Unlock()
	entries := make([]BroadEntry2[S, ID], 0, len(w.order))
	for _, id := range w.order {
		b := w.bodies[id]
		if b.shape == nil || !b.shape.Enabled {
			continue
		}
		b.shape.Update(b.pose, b.next)
		entries = append(entries, BroadEntry2[S, ID]{ID: id, Bound: b.shape.Bound()})
	}
	return entries
}

func (w *World2[S, ID]) Shape(id ID) (*CollisionShape2[S], bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	if !ok || b.shape == nil {
		return nil, false
	}
	return b.shape, true
}

func (w *World2[S, ID]) Pose(id ID) (Pose2[S], bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	if !ok {
		return Pose2[S]{}, false
	}
	return b.pose, true
}

func (w *World2[S, ID]) NextPose(id ID) (Pose2[S], bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	if !ok || b.next == nil {
		return Pose2[S]{}, false
	}
	return *b.next, true
}

// World3 is the 3D counterpart of World2.
type World3[S Scalar, ID comparable] struct {
	mu     sync.RWMutex
	bodies map[ID]*worldBody3[S]
	order  []ID
}

type worldBody3[S Scalar] struct {
	shape *CollisionShape3[S]
	pose  Pose3[S]
	next  *Pose3[S]
}

func NewWorld3[S Scalar, ID comparable]() *World3[S, ID] {
	return &World3[S, ID]{bodies: make(map[ID]*worldBody3[S])}
}

func (w *World3[S, ID]) Add(id ID, shape *CollisionShape3[S], pose Pose3[S]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bodies[id]; !ok {
		w.order = append(w.order, id)
	}
	w.bodies[id] = &worldBody3[S]{shape: shape, pose: pose}
}

func (w *World3[S, ID]) Remove(id ID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bodies[id]; !ok {
		return false
	}
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

func (w *World3[S, ID]) SetPose(id ID, pose Pose3[S]) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	b.pose = pose
	b.next = nil
	return true
}

func (w *World3[S, ID]) SetNextPose(id ID, next Pose3[S]) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	b.next = &next
	return true
}

func (w *World3[S, ID]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

func (w *World3[S, ID]) BroadData() []BroadEntry3[S, ID] {
	w.mu.Lock()
	defer w.mu.Unlock()
	entries := make([]BroadEntry3[S, ID], 0, len(w.order))
	for _, id := range w.order {
		b := w.bodies[id]
		if b.shape == nil || !b.shape.Enabled {
			continue
		}
		b.shape.Update(b.pose, b.next)
		entries = append(entries, BroadEntry3[S, ID]{ID: id, Bound: b.shape.Bound()})
	}
	return entries
}

func (w *World3[S, ID]) Shape(id ID) (*CollisionShape3[S], bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	if !ok || b.shape == nil {
		return nil, false
	}
	return b.shape, true
}

func (w *World3[S, ID]) Pose(id ID) (Pose3[S], bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	if !ok {
		return Pose3[S]{}, false
	}
	return b.pose, true
}

func (w *World3[S, ID]) NextPose(id ID) (Pose3[S], bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	if !ok || b.next == nil {
		return Pose3[S]{}, false
	}
	return *b.next, true
}

var (
	_ CollisionData2[float32, int] = (*World2[float32, int])(nil)
	_ CollisionData3[float64, int] = (*World3[float64, int])(nil)
)
