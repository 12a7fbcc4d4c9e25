package collide

import (
	"math"
	"testing"
)

func TestAABB2Operations(t *testing.T) {
	a := NewAABB2(V2(0.0, 0.0), V2(2.0, 3.0))
	b := NewAABB2(V2(1.0, 1.0), V2(4.0, 2.0))

	u := a.Union(b)
	if u.Min != V2(0.0, 0.0) || u.Max != V2(4.0, 3.0) {
		t.Errorf("Union wrong: %+v", u)
	}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Errorf("Overlapping boxes should intersect")
	}
	// touching edges count as intersecting
	c := NewAABB2(V2(2.0, 0.0), V2(3.0, 1.0))
	if !a.Intersects(c) {
		t.Errorf("Touching boxes should intersect")
	}
	far := NewAABB2(V2(5.0, 5.0), V2(6.0, 6.0))
	if a.Intersects(far) {
		t.Errorf("Disjoint boxes should not intersect")
	}
	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("Union should contain both inputs")
	}
	if a.Contains(b) {
		t.Errorf("a does not enclose b")
	}
	if !a.ContainsPoint(V2(1.0, 1.5)) || a.ContainsPoint(V2(-0.1, 0.0)) {
		t.Errorf("ContainsPoint wrong")
	}
	if got := a.Center(); got != V2(1.0, 1.5) {
		t.Errorf("Expected center (1,1.5), got %v", got)
	}
	// perimeter of a 2x3 box
	if got := a.Cost(); got != 10 {
		t.Errorf("Expected cost 10, got %v", got)
	}
	f := a.Fatten(0.5)
	if f.Min != V2(-0.5, -0.5) || f.Max != V2(2.5, 3.5) {
		t.Errorf("Fatten wrong: %+v", f)
	}
	// growth follows the displacement sign per axis
	e := a.Expand(V2(2.0, -1.0))
	if e.Min != V2(0.0, -1.0) || e.Max != V2(4.0, 3.0) {
		t.Errorf("Expand wrong: %+v", e)
	}
}

func TestAABB3Cost(t *testing.T) {
	b := NewAABB3(V3(0.0, 0.0, 0.0), V3(1.0, 2.0, 3.0))
	// surface area 2*(1*2 + 2*3 + 3*1)
	if got := b.Cost(); got != 22 {
		t.Errorf("Expected cost 22, got %v", got)
	}
}

func TestAABB2RayIntersection(t *testing.T) {
	box := NewAABB2(V2(0.0, 0.0), V2(1.0, 1.0))

	// entry at x=0 after traveling 2 units
	at, ok := box.RayIntersection(Ray2[float64]{Origin: V2(-2.0, 0.5), Direction: V2(1.0, 0.0)}, 10)
	if !ok || at != 2 {
		t.Errorf("Expected a hit at 2, got %v %v", at, ok)
	}
	// same ray, capped before the box
	if _, ok := box.RayIntersection(Ray2[float64]{Origin: V2(-2.0, 0.5), Direction: V2(1.0, 0.0)}, 1.5); ok {
		t.Errorf("Capped ray should miss")
	}
	// a ray starting inside hits at 0
	at, ok = box.RayIntersection(Ray2[float64]{Origin: V2(0.5, 0.5), Direction: V2(1.0, 0.0)}, 10)
	if !ok || at != 0 {
		t.Errorf("Inside ray should report 0, got %v %v", at, ok)
	}
	// pointing away
	if _, ok := box.RayIntersection(Ray2[float64]{Origin: V2(2.0, 0.5), Direction: V2(1.0, 0.0)}, 10); ok {
		t.Errorf("Ray pointing away should miss")
	}
	// parallel to the box but outside the slab
	if _, ok := box.RayIntersection(Ray2[float64]{Origin: V2(-2.0, 2.0), Direction: V2(1.0, 0.0)}, 10); ok {
		t.Errorf("Parallel ray outside the slab should miss")
	}
	// diagonal entry exactly at the (0,0) corner
	at, ok = box.RayIntersection(Ray2[float64]{Origin: V2(-1.0, -1.0), Direction: V2(math.Sqrt2/2, math.Sqrt2/2)}, 10)
	if !ok || !near(at, math.Sqrt2, 1e-9) {
		t.Errorf("Expected a diagonal hit at sqrt2, got %v %v", at, ok)
	}
}

func TestAABB3RayIntersection(t *testing.T) {
	box := NewAABB3(V3(0.0, 0.0, 0.0), V3(1.0, 1.0, 1.0))
	at, ok := box.RayIntersection(Ray3[float64]{Origin: V3(0.5, 0.5, -3.0), Direction: V3(0.0, 0.0, 1.0)}, 10)
	if !ok || at != 3 {
		t.Errorf("Expected a hit at 3, got %v %v", at, ok)
	}
	if _, ok := box.RayIntersection(Ray3[float64]{Origin: V3(0.5, 2.0, -3.0), Direction: V3(0.0, 0.0, 1.0)}, 10); ok {
		t.Errorf("Ray outside the y slab should miss")
	}
}

func TestPlane2Relate(t *testing.T) {
	// the vertical line x=0, positive side toward +X
	p := Plane2[float64]{Normal: V2(1.0, 0.0), D: 0}
	if got := p.Relate(NewAABB2(V2(1.0, 1.0), V2(2.0, 2.0))); got != RelationIn {
		t.Errorf("Expected RelationIn, got %v", got)
	}
	if got := p.Relate(NewAABB2(V2(-2.0, 0.0), V2(-1.0, 1.0))); got != RelationOut {
		t.Errorf("Expected RelationOut, got %v", got)
	}
	if got := p.Relate(NewAABB2(V2(-1.0, -1.0), V2(1.0, 1.0))); got != RelationCross {
		t.Errorf("Expected RelationCross, got %v", got)
	}
}

func TestPlane3Relate(t *testing.T) {
	// the z=1 plane, positive side above
	p := Plane3[float64]{Normal: V3(0.0, 0.0, 1.0), D: 1}
	if got := p.Relate(NewAABB3(V3(0.0, 0.0, 2.0), V3(1.0, 1.0, 3.0))); got != RelationIn {
		t.Errorf("Expected RelationIn, got %v", got)
	}
	if got := p.Relate(NewAABB3(V3(0.0, 0.0, -1.0), V3(1.0, 1.0, 0.0))); got != RelationOut {
		t.Errorf("Expected RelationOut, got %v", got)
	}
	if got := p.Relate(NewAABB3(V3(0.0, 0.0, 0.5), V3(1.0, 1.0, 1.5))); got != RelationCross {
		t.Errorf("Expected RelationCross, got %v", got)
	}
}

func TestFrustum2Relate(t *testing.T) {
	// the square region [-2,2]x[-2,2] from four inward planes
	f := Frustum2[float64]{Planes: []Plane2[float64]{
		{Normal: V2(1.0, 0.0), D: -2},
		{Normal: V2(-1.0, 0.0), D: -2},
		{Normal: V2(0.0, 1.0), D: -2},
		{Normal: V2(0.0, -1.0), D: -2},
	}}
	if got := f.Relate(NewAABB2(V2(-1.0, -1.0), V2(1.0, 1.0))); got != RelationIn {
		t.Errorf("Expected RelationIn, got %v", got)
	}
	if got := f.Relate(NewAABB2(V2(1.5, -0.5), V2(3.0, 0.5))); got != RelationCross {
		t.Errorf("Expected RelationCross, got %v", got)
	}
	if got := f.Relate(NewAABB2(V2(5.0, 5.0), V2(6.0, 6.0))); got != RelationOut {
		t.Errorf("Expected RelationOut, got %v", got)
	}
}
