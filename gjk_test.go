package collide

import (
	"errors"
	"testing"
)

func TestGJK2IntersectHitAndMiss(t *testing.T) {
	g := NewGJK2[float64]()
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}

	simplex, err := g.Intersect(circle, NewPose2(V2(0.0, 0.0), 0), circle, NewPose2(V2(1.5, 0.0), 0))
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if simplex == nil {
		t.Fatalf("Overlapping circles should intersect")
	}

	simplex, err = g.Intersect(circle, NewPose2(V2(0.0, 0.0), 0), circle, NewPose2(V2(3.0, 0.0), 0))
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if simplex != nil {
		t.Errorf("Separated circles should not intersect")
	}
	if got := g.Iterations().Count(); got != 2 {
		t.Errorf("Expected 2 recorded queries, got %v", got)
	}
}

func TestGJK2IntersectTouchingIsMiss(t *testing.T) {
	g := NewGJK2[float64]()
	rect, err := NewRectangle(1.0, 1.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}

	// unit squares sharing the x=0.5 edge have no interior overlap
	simplex, err := g.Intersect(rect, NewPose2(V2(0.0, 0.0), 0), rect, NewPose2(V2(1.0, 0.0), 0))
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if simplex != nil {
		t.Errorf("Touching squares should be a proven miss")
	}
}

func TestGJK3IntersectHitAndMiss(t *testing.T) {
	g := NewGJK3[float64]()
	sphere, err := NewSphere(1.0)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	cube, err := NewCuboid(1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("NewCuboid failed: %v", err)
	}

	simplex, err := g.Intersect(sphere, Pose3Identity[float64](), cube, NewPose3(V3(1.2, 0.0, 0.0), QuatIdentity[float64]()))
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if simplex == nil {
		t.Fatalf("Sphere and cube should intersect")
	}

	simplex, err = g.Intersect(sphere, Pose3Identity[float64](), cube, NewPose3(V3(3.0, 0.0, 0.0), QuatIdentity[float64]()))
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if simplex != nil {
		t.Errorf("Separated shapes should not intersect")
	}
}

func TestGJK2IterationLimit(t *testing.T) {
	g := NewGJK2[float64]()
	g.MaxIterations = 1
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}

	// overlap needs more than one refinement step
	simplex, err := g.Intersect(circle, NewPose2(V2(0.0, 0.0), 0), circle, NewPose2(V2(1.5, 0.0), 0))
	if !errors.Is(err, ErrIterationLimit) {
		t.Fatalf("Expected ErrIterationLimit, got %v", err)
	}
	if simplex != nil {
		t.Errorf("Capped query should not return a simplex")
	}
}

func TestRunningAverage(t *testing.T) {
	var r RunningAverage
	if r.Average() != 0 || r.Count() != 0 {
		t.Fatalf("Fresh average should be empty")
	}
	r.Add(2)
	r.Add(4)
	if got := r.Average(); got != 3 {
		t.Errorf("Expected average 3, got %v", got)
	}
	if got := r.Count(); got != 2 {
		t.Errorf("Expected count 2, got %v", got)
	}
	r.Add(0)
	if got := r.Average(); !near(got, 2, 1e-12) {
		t.Errorf("Expected average 2, got %v", got)
	}
}
