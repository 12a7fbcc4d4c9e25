package collide

import "errors"

// ErrIterationLimit is reported when an iterative query gives up before
// converging. The query result is indeterminate, not a proven miss.
var ErrIterationLimit = errors.New("collide: iteration limit exceeded")

const (
	// gjkMaxIterations bounds the intersection and penetration loops.
	gjkMaxIterations = 100
	// distanceMaxIterations bounds the closest-point refinement, which
	// converges much faster than the boolean query.
	distanceMaxIterations = 20
)

// RunningAverage accumulates a mean without storing samples. The narrow
// phase feeds it iteration counts so convergence can be watched over time.
type RunningAverage struct {
	average float64
	n       uint32
}

// Add folds one sample into the average.
func (r *RunningAverage) Add(value uint32) {
	n0 := float64(r.n)
	r.n++
	n := float64(r.n)
	r.average *= n0 / n
	r.average += float64(value) / n
}

// Average returns the current mean, zero when no samples were added.
func (r *RunningAverage) Average() float64 {
	return r.average
}

// Count returns the number of samples folded in.
func (r RunningAverage) Count() uint32 {
	return r.n
}

// gjkIntersect runs the boolean GJK loop. The initial direction seeds the
// first support query, after that the reducer steers. A nil simplex with a
// nil error is a proven miss; ErrIterationLimit means the loop gave up.
func gjkIntersect[S Scalar, V vector[S, V]](
	support func(dir V) SupportPoint[V],
	initial V,
	reducer simplexReducer[V],
	maxIterations int,
	average *RunningAverage,
) ([]SupportPoint[V], error) {
	d := initial
	a := support(d)
	if a.Diff.Dot(d) <= 0 {
		average.Add(0)
		return nil, nil
	}
	simplex := make([]SupportPoint[V], 0, 5)
	simplex = append(simplex, a)
	d = d.Mul(-1)
	for i := 0; ; {
		a := support(d)
		if a.Diff.Dot(d) <= 0 {
			// the support point never crossed the origin, the
			// shapes cannot overlap
			average.Add(uint32(i + 1))
			return nil, nil
		}
		simplex = append(simplex, a)
		if reducer.reduce(&simplex, &d) {
			average.Add(uint32(i + 1))
			return simplex, nil
		}
		i++
		if i >= maxIterations {
			average.Add(uint32(i))
			return nil, ErrIterationLimit
		}
	}
}

// GJK2 is the 2D narrow-phase collider. It answers boolean, distance and
// time-of-impact queries on support-mapped shapes and hands overlapping
// simplices to the penetration stage for contact details.
//
// A GJK2 keeps running statistics and is not safe for concurrent use; give
// each worker its own instance.
type GJK2[S Scalar] struct {
	// MaxIterations caps the intersection and penetration loops.
	MaxIterations int
	// Log receives diagnostics for non-converging pairs. Nil discards.
	Log Logger

	processor simplex2[S]
	average   RunningAverage
}

// NewGJK2 returns a 2D collider with the default iteration cap.
func NewGJK2[S Scalar]() *GJK2[S] {
	return &GJK2[S]{MaxIterations: gjkMaxIterations}
}

// Intersect reports whether two posed shapes overlap. On overlap it returns
// the simplex enclosing the origin, ready for penetration analysis. A nil
// simplex with a nil error is a proven miss; ErrIterationLimit means the
// query is indeterminate and the caller should treat the pair as missed.
func (g *GJK2[S]) Intersect(left Shape2[S], leftPose Pose2[S], right Shape2[S], rightPose Pose2[S]) ([]SupportPoint[Vec2[S]], error) {
	d := rightPose.Position.Sub(leftPose.Position)
	if d.LenSqr() <= epsilon[S]() {
		// coincident centers still overlap, pick a fixed axis to start
		d = Vec2[S]{X: 1}
	}
	return gjkIntersect[S, Vec2[S]](func(dir Vec2[S]) SupportPoint[Vec2[S]] {
		return support2(left, leftPose, right, rightPose, dir)
	}, d, g.processor, g.maxIterations(), &g.average)
}

// AverageIterations returns the mean iteration count over all boolean
// queries so far.
func (g *GJK2[S]) AverageIterations() float64 {
	return g.average.Average()
}

// Iterations returns a copy of the running iteration statistics.
func (g *GJK2[S]) Iterations() RunningAverage {
	return g.average
}

func (g *GJK2[S]) maxIterations() int {
	if g.MaxIterations <= 0 {
		return gjkMaxIterations
	}
	return g.MaxIterations
}

func (g *GJK2[S]) log() Logger {
	return orNop(g.Log)
}

// GJK3 is the 3D counterpart of GJK2.
type GJK3[S Scalar] struct {
	MaxIterations int
	Log           Logger

	processor simplex3[S]
	average   RunningAverage
}

// NewGJK3 returns a 3D collider with the default iteration cap.
func NewGJK3[S Scalar]() *GJK3[S] {
	return &GJK3[S]{MaxIterations: gjkMaxIterations}
}

// Intersect reports whether two posed shapes overlap, returning the
// enclosing simplex on overlap. See GJK2.Intersect for the contract.
func (g *GJK3[S]) Intersect(left Shape3[S], leftPose Pose3[S], right Shape3[S], rightPose Pose3[S]) ([]SupportPoint[Vec3[S]], error) {
	d := rightPose.Position.Sub(leftPose.Position)
	if d.LenSqr() <= epsilon[S]() {
		d = Vec3[S]{X: 1}
	}
	return gjkIntersect[S, Vec3[S]](func(dir Vec3[S]) SupportPoint[Vec3[S]] {
		return support3(left, leftPose, right, rightPose, dir)
	}, d, g.processor, g.maxIterations(), &g.average)
}

func (g *GJK3[S]) AverageIterations() float64 {
	return g.average.Average()
}

// Iterations returns a copy of the running iteration statistics.
func (g *GJK3[S]) Iterations() RunningAverage {
	return g.average
}

func (g *GJK3[S]) maxIterations() int {
	if g.MaxIterations <= 0 {
		return gjkMaxIterations
	}
	return g.MaxIterations
}

func (g *GJK3[S]) log() Logger {
	return orNop(g.Log)
}
