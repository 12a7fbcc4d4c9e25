package collide

import "testing"

func TestCollisionShapeBaseBound(t *testing.T) {
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}
	dumbbell := NewComplexCollisionShape2(FullResolution, Discrete, []CollisionPrimitive2[float64]{
		NewCollisionPrimitive2[float64](circle, NewPose2(V2(-2.0, 0.0), 0)),
		NewCollisionPrimitive2[float64](circle, NewPose2(V2(2.0, 0.0), 0)),
	})
	if !dumbbell.Enabled {
		t.Errorf("New shapes start enabled")
	}
	if dumbbell.Filter != FilterAll {
		t.Errorf("New shapes start with FilterAll, got %+v", dumbbell.Filter)
	}
	// before any update the bound is the union of the local parts
	if got := dumbbell.Bound(); got != NewAABB2(V2(-3.0, -1.0), V2(3.0, 1.0)) {
		t.Errorf("Expected bound (-3,-1)-(3,1), got %+v", got)
	}
}

func TestCollisionShapeUpdate(t *testing.T) {
	square, err := NewRectangle(2.0, 2.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	shape := NewCollisionShape2[float64](FullResolution, Discrete, square)

	shape.Update(NewPose2(V2(5.0, 0.0), 0), nil)
	if got := shape.Bound(); got != NewAABB2(V2(4.0, -1.0), V2(6.0, 1.0)) {
		t.Errorf("Expected bound at the pose, got %+v", got)
	}

	// discrete shapes bound the next pose, where the pair will be tested
	next := NewPose2(V2(8.0, 0.0), 0)
	shape.Update(NewPose2(V2(5.0, 0.0), 0), &next)
	if got := shape.Bound(); got != NewAABB2(V2(7.0, -1.0), V2(9.0, 1.0)) {
		t.Errorf("Expected bound at the next pose, got %+v", got)
	}

	// continuous shapes bound the whole sweep
	shape.Mode = Continuous
	shape.Update(NewPose2(V2(5.0, 0.0), 0), &next)
	if got := shape.Bound(); got != NewAABB2(V2(4.0, -1.0), V2(9.0, 1.0)) {
		t.Errorf("Expected bound covering the sweep, got %+v", got)
	}
}
