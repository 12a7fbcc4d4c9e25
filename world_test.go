package collide

import "testing"

func TestWorldAddRemove(t *testing.T) {
	square, err := NewRectangle(2.0, 2.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	world := NewWorld2[float64, int]()
	for i := 1; i <= 3; i++ {
		world.Add(i, NewCollisionShape2[float64](FullResolution, Discrete, square), NewPose2(V2(float64(i)*10, 0.0), 0))
	}
	if world.Len() != 3 {
		t.Fatalf("Expected 3 bodies, got %v", world.Len())
	}

	// replacing a body keeps its slot in the iteration order
	world.Add(2, NewCollisionShape2[float64](CollisionOnly, Discrete, square), NewPose2(V2(50.0, 0.0), 0))
	if world.Len() != 3 {
		t.Errorf("Replacing should not grow the world, got %v", world.Len())
	}
	entries := world.BroadData()
	for i, want := range []int{1, 2, 3} {
		if entries[i].ID != want {
			t.Errorf("Expected id %v at %d, got %v", want, i, entries[i].ID)
		}
	}
	shape, ok := world.Shape(2)
	if !ok || shape.Strategy != CollisionOnly {
		t.Errorf("Expected the replacement shape, got %+v %v", shape, ok)
	}

	if !world.Remove(2) {
		t.Errorf("Remove should report the body existed")
	}
	if world.Remove(2) {
		t.Errorf("Second remove should report a missing body")
	}
	if world.Len() != 2 {
		t.Errorf("Expected 2 bodies, got %v", world.Len())
	}
	if _, ok := world.Shape(2); ok {
		t.Errorf("Removed body should have no shape")
	}
}

func TestWorldPoseTracking(t *testing.T) {
	square, err := NewRectangle(2.0, 2.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	world := NewWorld2[float64, int]()
	world.Add(1, NewCollisionShape2[float64](FullResolution, Discrete, square), Pose2Identity[float64]())

	if !world.SetPose(1, NewPose2(V2(3.0, 0.0), 0)) {
		t.Fatalf("SetPose should find body 1")
	}
	p, ok := world.Pose(1)
	if !ok || p.Position != V2(3.0, 0.0) {
		t.Errorf("Expected pose (3,0), got %+v %v", p, ok)
	}
	if _, ok := world.NextPose(1); ok {
		t.Errorf("No next pose was set yet")
	}

	if !world.SetNextPose(1, NewPose2(V2(4.0, 0.0), 0)) {
		t.Fatalf("SetNextPose should find body 1")
	}
	np, ok := world.NextPose(1)
	if !ok || np.Position != V2(4.0, 0.0) {
		t.Errorf("Expected next pose (4,0), got %+v %v", np, ok)
	}

	// committing a pose consumes the pending next pose
	world.SetPose(1, NewPose2(V2(4.0, 0.0), 0))
	if _, ok := world.NextPose(1); ok {
		t.Errorf("SetPose should clear the next pose")
	}

	if world.SetPose(99, Pose2Identity[float64]()) {
		t.Errorf("SetPose on an unknown body should report false")
	}
}

func TestWorldBroadData(t *testing.T) {
	square, err := NewRectangle(2.0, 2.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	world := NewWorld2[float64, int]()
	world.Add(1, NewCollisionShape2[float64](FullResolution, Discrete, square), NewPose2(V2(5.0, 0.0), 0))
	disabled := NewCollisionShape2[float64](FullResolution, Discrete, square)
	disabled.Enabled = false
	world.Add(2, disabled, Pose2Identity[float64]())

	entries := world.BroadData()
	if len(entries) != 1 || entries[0].ID != 1 {
		t.Fatalf("Expected only body 1, got %v", entries)
	}
	if entries[0].Bound != NewAABB2(V2(4.0, -1.0), V2(6.0, 1.0)) {
		t.Errorf("Expected the bound at the current pose, got %+v", entries[0].Bound)
	}

	// a pending next pose moves the bound where detection will look
	world.SetNextPose(1, NewPose2(V2(8.0, 0.0), 0))
	entries = world.BroadData()
	if entries[0].Bound != NewAABB2(V2(7.0, -1.0), V2(9.0, 1.0)) {
		t.Errorf("Expected the bound at the next pose, got %+v", entries[0].Bound)
	}
}
