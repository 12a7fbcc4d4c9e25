package collide

import "testing"

func TestTimeOfImpactHeadOn(t *testing.T) {
	g := NewGJK2[float64]()
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}

	// moving circle covers 6 units, surfaces meet after 1 unit of travel
	static := Pose2Identity[float64]()
	c, ok := g.TimeOfImpact(circle, NewPose2(V2(-3.0, 0.0), 0), NewPose2(V2(3.0, 0.0), 0), circle, static, static)
	if !ok {
		t.Fatalf("Expected an impact")
	}
	if !near(c.TimeOfImpact, 1.0/6.0, 1e-15) {
		t.Errorf("Expected impact at t=1/6, got %v", c.TimeOfImpact)
	}
	if !nearVec2(c.Normal, V2(1.0, 0.0), 1e-9) {
		t.Errorf("Expected normal (1,0), got %v", c.Normal)
	}
	if !nearVec2(c.ContactPoint, V2(-1.0, 0.0), 1e-9) {
		t.Errorf("Expected contact at (-1,0), got %v", c.ContactPoint)
	}
	if c.Approximate {
		t.Errorf("Converged impact should not be approximate")
	}
	if c.Strategy != FullResolution {
		t.Errorf("Expected FullResolution, got %v", c.Strategy)
	}
}

func TestTimeOfImpactTunneling(t *testing.T) {
	g := NewGJK2[float64]()
	bullet, err := NewCircle(0.1)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}
	wall, err := NewRectangle(0.2, 10.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}

	start := NewPose2(V2(-5.0, 0.0), 0)
	end := NewPose2(V2(5.0, 0.0), 0)
	static := Pose2Identity[float64]()

	// the end pose is clear of the wall, only the sweep sees the hit
	if out := g.Distance(bullet, end, wall, static); out.Distance <= 0 {
		t.Fatalf("End pose should be separated, got distance %v", out.Distance)
	}
	c, ok := g.TimeOfImpact(bullet, start, end, wall, static, static)
	if !ok {
		t.Fatalf("Expected the sweep to hit the wall")
	}
	if !near(c.TimeOfImpact, 0.48, 1e-6) {
		t.Errorf("Expected impact at t=0.48, got %v", c.TimeOfImpact)
	}
}

func TestTimeOfImpactMiss(t *testing.T) {
	g := NewGJK2[float64]()
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}

	// the mover passes by without ever closing the gap
	static := Pose2Identity[float64]()
	if _, ok := g.TimeOfImpact(circle, static, static, circle, NewPose2(V2(4.0, 0.0), 0), NewPose2(V2(4.0, 3.0), 0)); ok {
		t.Errorf("Expected no impact")
	}
}

func TestTimeOfImpactNoRelativeMotion(t *testing.T) {
	g := NewGJK2[float64]()
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}

	static := Pose2Identity[float64]()
	other := NewPose2(V2(4.0, 0.0), 0)
	if _, ok := g.TimeOfImpact(circle, static, static, circle, other, other); ok {
		t.Errorf("Separated shapes at rest should not impact")
	}
}

func TestTimeOfImpact3DTunneling(t *testing.T) {
	g := NewGJK3[float64]()
	sphere, err := NewSphere(1.0)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	wall, err := NewCuboid(0.1, 10.0, 10.0)
	if err != nil {
		t.Fatalf("NewCuboid failed: %v", err)
	}

	start := NewPose3(V3(-10.0, 0.0, 0.0), QuatIdentity[float64]())
	end := NewPose3(V3(10.0, 0.0, 0.0), QuatIdentity[float64]())
	static := Pose3Identity[float64]()

	// 20 units of travel through a 0.1 thick wall, end pose already clear
	if out := g.Distance(sphere, end, wall, static); out.Distance <= 0 {
		t.Fatalf("End pose should be separated, got distance %v", out.Distance)
	}
	c, ok := g.TimeOfImpact(sphere, start, end, wall, static, static)
	if !ok {
		t.Fatalf("Expected the sweep to hit the wall")
	}
	// surfaces meet once the center has covered 10 - 1 - 0.05 units
	if !near(c.TimeOfImpact, 8.95/20.0, 1e-6) {
		t.Errorf("Expected impact at t=0.4475, got %v", c.TimeOfImpact)
	}
	if !nearVec3(c.Normal, V3(1.0, 0.0, 0.0), 1e-9) {
		t.Errorf("Expected normal (1,0,0), got %v", c.Normal)
	}
}

func TestTimeOfImpact3DHeadOn(t *testing.T) {
	g := NewGJK3[float64]()
	sphere, err := NewSphere(1.0)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}

	static := Pose3Identity[float64]()
	c, ok := g.TimeOfImpact(sphere,
		NewPose3(V3(-3.0, 0.0, 0.0), QuatIdentity[float64]()),
		NewPose3(V3(3.0, 0.0, 0.0), QuatIdentity[float64]()),
		sphere, static, static)
	if !ok {
		t.Fatalf("Expected an impact")
	}
	if !near(c.TimeOfImpact, 1.0/6.0, 1e-15) {
		t.Errorf("Expected impact at t=1/6, got %v", c.TimeOfImpact)
	}
	if !nearVec3(c.Normal, V3(1.0, 0.0, 0.0), 1e-9) {
		t.Errorf("Expected normal (1,0,0), got %v", c.Normal)
	}
	if !nearVec3(c.ContactPoint, V3(-1.0, 0.0, 0.0), 1e-9) {
		t.Errorf("Expected contact at (-1,0,0), got %v", c.ContactPoint)
	}
}
