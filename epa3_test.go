package collide

import "testing"

func TestEPA3CubePenetration(t *testing.T) {
	g := NewGJK3[float64]()
	cube, err := NewCuboid(10.0, 10.0, 10.0)
	if err != nil {
		t.Fatalf("NewCuboid failed: %v", err)
	}
	leftPose := NewPose3(V3(15.0, 0.0, 0.0), QuatIdentity[float64]())
	rightPose := NewPose3(V3(7.0, 2.0, 0.0), QuatIdentity[float64]())

	simplex, err := g.Intersect(cube, leftPose, cube, rightPose)
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if len(simplex) != 4 {
		t.Fatalf("Expected a 4-point termination simplex, got %d points", len(simplex))
	}

	c, ok := epa3(simplex, cube, leftPose, cube, rightPose, gjkMaxIterations)
	if !ok {
		t.Fatalf("Expected a contact")
	}
	// the boxes overlap 2 units along x, far more along y and z
	if !nearVec3(c.Normal, V3(-1.0, 0.0, 0.0), 1e-9) {
		t.Errorf("Expected normal (-1,0,0), got %v", c.Normal)
	}
	if !near(c.PenetrationDepth, 2, 1e-9) {
		t.Errorf("Expected depth 2, got %v", c.PenetrationDepth)
	}
	// every witness on the contact face sits on the x=10 side of the left box
	if !near(c.ContactPoint.X, 10, 1e-9) {
		t.Errorf("Expected contact on x=10, got %v", c.ContactPoint)
	}
}

func TestRemoveOrAddEdge(t *testing.T) {
	var edges [][2]int
	edges = removeOrAddEdge(edges, [2]int{0, 1})
	edges = removeOrAddEdge(edges, [2]int{1, 2})
	if len(edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(edges))
	}
	// the reversed duplicate cancels instead of accumulating
	edges = removeOrAddEdge(edges, [2]int{1, 0})
	if len(edges) != 1 || edges[0] != [2]int{1, 2} {
		t.Errorf("Expected only edge (1,2) to remain, got %v", edges)
	}
}
