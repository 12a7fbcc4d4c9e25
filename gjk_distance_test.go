package collide

import "testing"

func TestGJK2Distance(t *testing.T) {
	g := NewGJK2[float64]()
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}

	out := g.Distance(circle, NewPose2(V2(0.0, 0.0), 0), circle, NewPose2(V2(4.0, 0.0), 0))
	if out.Distance != 2 {
		t.Errorf("Expected distance 2, got %v", out.Distance)
	}
	if out.PointA != V2(1.0, 0.0) {
		t.Errorf("Expected witness (1,0) on the first circle, got %v", out.PointA)
	}
	if out.PointB != V2(3.0, 0.0) {
		t.Errorf("Expected witness (3,0) on the second circle, got %v", out.PointB)
	}
	// the very first support point is already optimal here
	if out.Iterations != 0 {
		t.Errorf("Expected 0 iterations, got %v", out.Iterations)
	}

	// overlapping circles report zero separation
	out = g.Distance(circle, NewPose2(V2(0.0, 0.0), 0), circle, NewPose2(V2(1.0, 0.0), 0))
	if out.Distance != 0 {
		t.Errorf("Expected distance 0 for overlap, got %v", out.Distance)
	}
}

func TestGJK2DistanceRectangles(t *testing.T) {
	g := NewGJK2[float64]()
	rect, err := NewRectangle(1.0, 1.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}

	out := g.Distance(rect, NewPose2(V2(0.0, 0.0), 0), rect, NewPose2(V2(3.0, 0.0), 0))
	if !near(out.Distance, 2, 1e-9) {
		t.Errorf("Expected distance 2, got %v", out.Distance)
	}
	// witnesses land on the facing edges
	if !near(out.PointA.X, 0.5, 1e-9) {
		t.Errorf("Expected witness on x=0.5, got %v", out.PointA)
	}
	if !near(out.PointB.X, 2.5, 1e-9) {
		t.Errorf("Expected witness on x=2.5, got %v", out.PointB)
	}
}

func TestGJK3Distance(t *testing.T) {
	g := NewGJK3[float64]()
	sphere, err := NewSphere(1.0)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}

	out := g.Distance(sphere, Pose3Identity[float64](), sphere, NewPose3(V3(0.0, 5.0, 0.0), QuatIdentity[float64]()))
	if out.Distance != 3 {
		t.Errorf("Expected distance 3, got %v", out.Distance)
	}
	if out.PointA != V3(0.0, 1.0, 0.0) {
		t.Errorf("Expected witness (0,1,0), got %v", out.PointA)
	}
	if out.PointB != V3(0.0, 4.0, 0.0) {
		t.Errorf("Expected witness (0,4,0), got %v", out.PointB)
	}
}
