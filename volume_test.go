package collide

import (
	"errors"
	"math"
	"testing"
)

func TestMassFromShape2(t *testing.T) {
	circle, err := NewCircle(2.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}
	m, err := MassFromShape2(circle, DefaultMaterial)
	if err != nil {
		t.Fatalf("MassFromShape2 failed: %v", err)
	}
	// disc of radius 2: mass pi r^2, inertia mass r^2 / 2
	if !near(m.Mass(), 4*math.Pi, 1e-9) {
		t.Errorf("Expected mass 4pi, got %v", m.Mass())
	}
	if !near(m.Inertia(), 8*math.Pi, 1e-9) {
		t.Errorf("Expected inertia 8pi, got %v", m.Inertia())
	}

	rect, err := NewRectangle(2.0, 4.0)
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	m, err = MassFromShape2(rect, Material{Density: 0.5, Restitution: 1})
	if err != nil {
		t.Fatalf("MassFromShape2 failed: %v", err)
	}
	if !near(m.Mass(), 4, 1e-9) {
		t.Errorf("Expected mass 4, got %v", m.Mass())
	}
	if !near(m.Inertia(), 80.0/12.0, 1e-9) {
		t.Errorf("Expected inertia 80/12, got %v", m.Inertia())
	}
}

func TestMassFromPolygonMatchesRectangle(t *testing.T) {
	square, err := NewConvexPolygon([]Vec2[float64]{
		V2(0.5, 0.5), V2(-0.5, 0.5), V2(-0.5, -0.5), V2(0.5, -0.5),
	})
	if err != nil {
		t.Fatalf("NewConvexPolygon failed: %v", err)
	}
	m, err := MassFromShape2(square, DefaultMaterial)
	if err != nil {
		t.Fatalf("MassFromShape2 failed: %v", err)
	}
	// the unit square must agree with the closed rectangle formula
	if !near(m.Mass(), 1, 1e-9) {
		t.Errorf("Expected mass 1, got %v", m.Mass())
	}
	if !near(m.Inertia(), 1.0/6.0, 1e-9) {
		t.Errorf("Expected inertia 1/6, got %v", m.Inertia())
	}
}

func TestMassFromShape3(t *testing.T) {
	sphere, err := NewSphere(1.0)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	m, err := MassFromShape3(sphere, DefaultMaterial)
	if err != nil {
		t.Fatalf("MassFromShape3 failed: %v", err)
	}
	wantMass := 4 * math.Pi / 3
	if !near(m.Mass(), wantMass, 1e-9) {
		t.Errorf("Expected mass 4pi/3, got %v", m.Mass())
	}
	inertia := m.Inertia()
	for i := 0; i < 3; i++ {
		if !near(inertia[i][i], 0.4*wantMass, 1e-9) {
			t.Errorf("Expected inertia 2/5 mass on diagonal %d, got %v", i, inertia[i][i])
		}
	}

	box, err := NewCuboid(1.0, 2.0, 3.0)
	if err != nil {
		t.Fatalf("NewCuboid failed: %v", err)
	}
	m, err = MassFromShape3(box, DefaultMaterial)
	if err != nil {
		t.Fatalf("MassFromShape3 failed: %v", err)
	}
	if !near(m.Mass(), 6, 1e-9) {
		t.Errorf("Expected mass 6, got %v", m.Mass())
	}
	inertia = m.Inertia()
	want := [3]float64{6.5, 5, 2.5}
	for i := 0; i < 3; i++ {
		if !near(inertia[i][i], want[i], 1e-9) {
			t.Errorf("Expected inertia %v on diagonal %d, got %v", want[i], i, inertia[i][i])
		}
	}
}

func TestMassFromPolytopeHasNoVolume(t *testing.T) {
	tetra, err := NewConvexPolytope([]Vec3[float64]{
		V3(0.0, 0.0, 0.0), V3(1.0, 0.0, 0.0), V3(0.0, 1.0, 0.0), V3(0.0, 0.0, 1.0),
	})
	if err != nil {
		t.Fatalf("NewConvexPolytope failed: %v", err)
	}
	if _, err := MassFromShape3(tetra, DefaultMaterial); !errors.Is(err, ErrNoVolume) {
		t.Errorf("Expected ErrNoVolume, got %v", err)
	}
}

func TestMassFromCollisionShape2(t *testing.T) {
	circle, err := NewCircle(1.0)
	if err != nil {
		t.Fatalf("NewCircle failed: %v", err)
	}
	dumbbell := NewComplexCollisionShape2(FullResolution, Discrete, []CollisionPrimitive2[float64]{
		NewCollisionPrimitive2[float64](circle, NewPose2(V2(-2.0, 0.0), 0)),
		NewCollisionPrimitive2[float64](circle, NewPose2(V2(2.0, 0.0), 0)),
	})
	m, err := MassFromCollisionShape2(dumbbell, DefaultMaterial)
	if err != nil {
		t.Fatalf("MassFromCollisionShape2 failed: %v", err)
	}
	if !near(m.Mass(), 2*math.Pi, 1e-9) {
		t.Errorf("Expected mass 2pi, got %v", m.Mass())
	}
	// each lobe contributes pi/2 about its center plus pi*2^2 offset
	if !near(m.Inertia(), 9*math.Pi, 1e-9) {
		t.Errorf("Expected inertia 9pi, got %v", m.Inertia())
	}
}

func TestMassFromCollisionShape3(t *testing.T) {
	sphere, err := NewSphere(1.0)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	pair := NewComplexCollisionShape3(FullResolution, Discrete, []CollisionPrimitive3[float64]{
		NewCollisionPrimitive3[float64](sphere, NewPose3(V3(-2.0, 0.0, 0.0), QuatIdentity[float64]())),
		NewCollisionPrimitive3[float64](sphere, NewPose3(V3(2.0, 0.0, 0.0), QuatIdentity[float64]())),
	})
	m, err := MassFromCollisionShape3(pair, DefaultMaterial)
	if err != nil {
		t.Fatalf("MassFromCollisionShape3 failed: %v", err)
	}
	partMass := 4 * math.Pi / 3
	partInertia := 0.4 * partMass
	inertia := m.Inertia()
	// offsets along x leave the x axis unchanged and load the other two
	if !near(inertia[0][0], 2*partInertia, 1e-9) {
		t.Errorf("Expected x inertia %v, got %v", 2*partInertia, inertia[0][0])
	}
	want := 2 * (partInertia + partMass*4)
	if !near(inertia[1][1], want, 1e-9) || !near(inertia[2][2], want, 1e-9) {
		t.Errorf("Expected off-axis inertia %v, got %v and %v", want, inertia[1][1], inertia[2][2])
	}

	tetra, err := NewConvexPolytope([]Vec3[float64]{
		V3(0.0, 0.0, 0.0), V3(1.0, 0.0, 0.0), V3(0.0, 1.0, 0.0), V3(0.0, 0.0, 1.0),
	})
	if err != nil {
		t.Fatalf("NewConvexPolytope failed: %v", err)
	}
	mixed := NewComplexCollisionShape3(FullResolution, Discrete, []CollisionPrimitive3[float64]{
		NewCollisionPrimitive3[float64](sphere, Pose3Identity[float64]()),
		NewCollisionPrimitive3[float64](tetra, Pose3Identity[float64]()),
	})
	if _, err := MassFromCollisionShape3(mixed, DefaultMaterial); !errors.Is(err, ErrNoVolume) {
		t.Errorf("Expected ErrNoVolume to propagate, got %v", err)
	}
}
