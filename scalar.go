package collide

import "math"

// Scalar is the floating point type the whole library is parameterized over.
// Tolerances scale with the chosen width, see epsilon.
type Scalar interface {
	~float32 | ~float64
}

// epsilon is the base numeric tolerance for S. Derived guards (squared
// distances, convergence checks) are built from this, never hard-coded
// to one precision.
func epsilon[S Scalar]() S {
	if isSingle[S]() {
		return 1e-6
	}
	return 1e-10
}

// epaTolerance bounds polytope growth per expansion round.
func epaTolerance[S Scalar]() S {
	if isSingle[S]() {
		return 1e-5
	}
	return 1e-9
}

// contactTolerance is the surface separation below which a sweep counts as
// touching.
func contactTolerance[S Scalar]() S {
	if isSingle[S]() {
		return 1e-3
	}
	return 1e-7
}

func isSingle[S Scalar]() bool {
	// 1 + 2^-30 only rounds away in single precision
	return S(1)+S(9.3e-10) == S(1)
}

func sqrt[S Scalar](v S) S {
	return S(math.Sqrt(float64(v)))
}

func abs[S Scalar](v S) S {
	if v < 0 {
		return -v
	}
	return v
}

func inf[S Scalar]() S {
	return S(math.Inf(1))
}

func isInf[S Scalar](v S) bool {
	return math.IsInf(float64(v), 0)
}

func sincos[S Scalar](angle S) (sin, cos S) {
	s, c := math.Sincos(float64(angle))
	return S(s), S(c)
}

func atan2[S Scalar](y, x S) S {
	return S(math.Atan2(float64(y), float64(x)))
}

func acos[S Scalar](v S) S {
	return S(math.Acos(float64(v)))
}
