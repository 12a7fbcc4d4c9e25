package collide

import "errors"

var (
	ErrZeroRadius     = errors.New("collide: radius must be positive")
	ErrZeroDim        = errors.New("collide: dimensions must be positive")
	ErrTooFewVertices = errors.New("collide: not enough vertices for a convex shape")
)

// Shape2 is the closed set of 2D convex primitives. Every variant answers
// support queries in world space and exposes its local bound.
type Shape2[S Scalar] interface {
	// Support returns the farthest point of the shape along direction,
	// with the shape placed at pose.
	Support(direction Vec2[S], pose Pose2[S]) Vec2[S]
	// Bound is the axis-aligned bound of the shape in local space.
	Bound() AABB2[S]

	shape2()
}

// Shape3 is the closed set of 3D convex primitives.
type Shape3[S Scalar] interface {
	Support(direction Vec3[S], pose Pose3[S]) Vec3[S]
	Bound() AABB3[S]

	shape3()
}

type Circle[S Scalar] struct {
	Radius S
}

func NewCircle[S Scalar](radius S) (Circle[S], error) {
	if radius <= 0 {
		return Circle[S]{}, ErrZeroRadius
	}
	return Circle[S]{Radius: radius}, nil
}

func (c Circle[S]) Support(direction Vec2[S], pose Pose2[S]) Vec2[S] {
	return pose.Position.Add(direction.NormalizeTo(c.Radius))
}

func (c Circle[S]) Bound() AABB2[S] {
	r := c.Radius
	return AABB2[S]{Min: Vec2[S]{-r, -r}, Max: Vec2[S]{r, r}}
}

func (Circle[S]) shape2() {}

// Rectangle is an origin-centered box given by its full dimensions. The
// corners are cached for support queries.
type Rectangle[S Scalar] struct {
	Dim     Vec2[S]
	corners [4]Vec2[S]
}

func NewRectangle[S Scalar](dimX, dimY S) (Rectangle[S], error) {
	if dimX <= 0 || dimY <= 0 {
		return Rectangle[S]{}, ErrZeroDim
	}
	hx, hy := dimX/2, dimY/2
	return Rectangle[S]{
		Dim: Vec2[S]{dimX, dimY},
		corners: [4]Vec2[S]{
			{hx, hy}, {-hx, hy}, {-hx, -hy}, {hx, -hy},
		},
	}, nil
}

func (r Rectangle[S]) Support(direction Vec2[S], pose Pose2[S]) Vec2[S] {
	local := pose.RotateVecInv(direction)
	best := r.corners[0]
	bestDot := best.Dot(local)
	for _, c := range r.corners[1:] {
		if d := c.Dot(local); d > bestDot {
			best, bestDot = c, d
		}
	}
	return pose.TransformPoint(best)
}

func (r Rectangle[S]) Bound() AABB2[S] {
	h := r.Dim.Mul(0.5)
	return AABB2[S]{Min: Vec2[S]{-h.X, -h.Y}, Max: Vec2[S]{h.X, h.Y}}
}

func (Rectangle[S]) shape2() {}

// hillClimbMin is the vertex count above which polygon support switches
// from the linear scan to neighbor ascent.
const hillClimbMin = 10

// ConvexPolygon is a convex vertex loop in counterclockwise order.
type ConvexPolygon[S Scalar] struct {
	Vertices []Vec2[S]
}

func NewConvexPolygon[S Scalar](vertices []Vec2[S]) (ConvexPolygon[S], error) {
	if len(vertices) < 3 {
		return ConvexPolygon[S]{}, ErrTooFewVertices
	}
	return ConvexPolygon[S]{Vertices: vertices}, nil
}

func (p ConvexPolygon[S]) Support(direction Vec2[S], pose Pose2[S]) Vec2[S] {
	local := pose.RotateVecInv(direction)
	if len(p.Vertices) < hillClimbMin {
		best := p.Vertices[0]
		bestDot := best.Dot(local)
		for _, v := range p.Vertices[1:] {
			if d := v.Dot(local); d > bestDot {
				best, bestDot = v, d
			}
		}
		return pose.TransformPoint(best)
	}
	return pose.TransformPoint(p.hillClimb(local))
}

// hillClimb walks the vertex loop toward increasing dot product. Convexity
// makes the dot sequence unimodal, so the walk ends at the global maximum.
func (p ConvexPolygon[S]) hillClimb(local Vec2[S]) Vec2[S] {
	n := len(p.Vertices)
	i := 0
	if p.Vertices[0].Dot(local) < 0 {
		i = n / 2
	}
	for steps := 0; steps < n; steps++ {
		cur := p.Vertices[i].Dot(local)
		next := (i + 1) % n
		if p.Vertices[next].Dot(local) > cur {
			i = next
			continue
		}
		prev := (i - 1 + n) % n
		if p.Vertices[prev].Dot(local) > cur {
			i = prev
			continue
		}
		break
	}
	return p.Vertices[i]
}

func (p ConvexPolygon[S]) Bound() AABB2[S] {
	return aabb2FromPoints(p.Vertices)
}

func (ConvexPolygon[S]) shape2() {}

type Sphere[S Scalar] struct {
	Radius S
}

func NewSphere[S Scalar](radius S) (Sphere[S], error) {
	if radius <= 0 {
		return Sphere[S]{}, ErrZeroRadius
	}
	return Sphere[S]{Radius: radius}, nil
}

func (s Sphere[S]) Support(direction Vec3[S], pose Pose3[S]) Vec3[S] {
	return pose.Position.Add(direction.NormalizeTo(s.Radius))
}

func (s Sphere[S]) Bound() AABB3[S] {
	r := s.Radius
	return AABB3[S]{Min: Vec3[S]{-r, -r, -r}, Max: Vec3[S]{r, r, r}}
}

func (Sphere[S]) shape3() {}

// Cuboid is an origin-centered box given by its full dimensions.
type Cuboid[S Scalar] struct {
	Dim     Vec3[S]
	corners [8]Vec3[S]
}

func NewCuboid[S Scalar](dimX, dimY, dimZ S) (Cuboid[S], error) {
	if dimX <= 0 || dimY <= 0 || dimZ <= 0 {
		return Cuboid[S]{}, ErrZeroDim
	}
	hx, hy, hz := dimX/2, dimY/2, dimZ/2
	return Cuboid[S]{
		Dim: Vec3[S]{dimX, dimY, dimZ},
		corners: [8]Vec3[S]{
			{hx, hy, hz}, {-hx, hy, hz}, {-hx, -hy, hz}, {hx, -hy, hz},
			{hx, hy, -hz}, {-hx, hy, -hz}, {-hx, -hy, -hz}, {hx, -hy, -hz},
		},
	}, nil
}

func (c Cuboid[S]) Support(direction Vec3[S], pose Pose3[S]) Vec3[S] {
	local := pose.RotateVecInv(direction)
	best := c.corners[0]
	bestDot := best.Dot(local)
	for _, v := range c.corners[1:] {
		if d := v.Dot(local); d > bestDot {
			best, bestDot = v, d
		}
	}
	return pose.TransformPoint(best)
}

func (c Cuboid[S]) Bound() AABB3[S] {
	h := c.Dim.Mul(0.5)
	return AABB3[S]{Min: Vec3[S]{-h.X, -h.Y, -h.Z}, Max: Vec3[S]{h.X, h.Y, h.Z}}
}

func (Cuboid[S]) shape3() {}

// ConvexPolytope is a convex point cloud. Support queries scan all
// vertices; the hull is implied, faces are never stored.
type ConvexPolytope[S Scalar] struct {
	Vertices []Vec3[S]
}

func NewConvexPolytope[S Scalar](vertices []Vec3[S]) (ConvexPolytope[S], error) {
	if len(vertices) < 4 {
		return ConvexPolytope[S]{}, ErrTooFewVertices
	}
	return ConvexPolytope[S]{Vertices: vertices}, nil
}

func (p ConvexPolytope[S]) Support(direction Vec3[S], pose Pose3[S]) Vec3[S] {
	local := pose.RotateVecInv(direction)
	best := p.Vertices[0]
	bestDot := best.Dot(local)
	for _, v := range p.Vertices[1:] {
		if d := v.Dot(local); d > bestDot {
			best, bestDot = v, d
		}
	}
	return pose.TransformPoint(best)
}

func (p ConvexPolytope[S]) Bound() AABB3[S] {
	return aabb3FromPoints(p.Vertices)
}

func (ConvexPolytope[S]) shape3() {}

// boundAfter2 is the world bound of a local bound placed at pose,
// the enclosing box of the transformed corners.
func boundAfter2[S Scalar](b AABB2[S], pose Pose2[S]) AABB2[S] {
	corners := [4]Vec2[S]{
		{b.Min.X, b.Min.Y}, {b.Max.X, b.Min.Y},
		{b.Max.X, b.Max.Y}, {b.Min.X, b.Max.Y},
	}
	out := AABB2[S]{Min: pose.TransformPoint(corners[0]), Max: pose.TransformPoint(corners[0])}
	for _, c := range corners[1:] {
		p := pose.TransformPoint(c)
		out.Min.X = min(out.Min.X, p.X)
		out.Min.Y = min(out.Min.Y, p.Y)
		out.Max.X = max(out.Max.X, p.X)
		out.Max.Y = max(out.Max.Y, p.Y)
	}
	return out
}

func boundAfter3[S Scalar](b AABB3[S], pose Pose3[S]) AABB3[S] {
	corners := [8]Vec3[S]{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z}, {b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z}, {b.Min.X, b.Max.Y, b.Max.Z},
	}
	out := AABB3[S]{Min: pose.TransformPoint(corners[0]), Max: pose.TransformPoint(corners[0])}
	for _, c := range corners[1:] {
		p := pose.TransformPoint(c)
		out.Min.X = min(out.Min.X, p.X)
		out.Min.Y = min(out.Min.Y, p.Y)
		out.Min.Z = min(out.Min.Z, p.Z)
		out.Max.X = max(out.Max.X, p.X)
		out.Max.Y = max(out.Max.Y, p.Y)
		out.Max.Z = max(out.Max.Z, p.Z)
	}
	return out
}
