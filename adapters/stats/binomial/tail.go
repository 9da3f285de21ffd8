// Package binomial evaluates exact one-sided binomial tail probabilities.
package binomial

import (
	"math"

	"fam450/internal/errors"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Direction selects which tail of the distribution is summed
type Direction int

const (
	// AtMost is P(X <= k)
	AtMost Direction = iota
	// AtLeast is P(X >= k)
	AtLeast
)

func (d Direction) String() string {
	switch d {
	case AtMost:
		return "<="
	case AtLeast:
		return ">="
	default:
		return "unknown"
	}
}

// Tail returns the exact one-sided binomial probability for X ~ Binomial(n, p)
// in the given direction. It fails with INVALID_PARAMETER when n < 0, k is
// outside [0, n] or p is outside (0, 1).
func Tail(n, k int, p float64, dir Direction) (float64, error) {
	if err := validate(n, k, p); err != nil {
		return 0, err
	}
	switch dir {
	case AtMost:
		return lowerTail(n, k, p), nil
	case AtLeast:
		return upperTail(n, k, p), nil
	default:
		return 0, errors.InvalidParameter("unknown tail direction %d", int(dir))
	}
}

// LowerTail returns P(X <= k)
func LowerTail(n, k int, p float64) (float64, error) {
	return Tail(n, k, p, AtMost)
}

// UpperTail returns P(X >= k)
func UpperTail(n, k int, p float64) (float64, error) {
	return Tail(n, k, p, AtLeast)
}

func validate(n, k int, p float64) error {
	if n < 0 {
		return errors.InvalidParameter("number of trials must be non-negative, got %d", n)
	}
	if k < 0 || k > n {
		return errors.InvalidParameter("observed count %d outside [0, %d]", k, n)
	}
	if !(p > 0 && p < 1) {
		return errors.InvalidParameter("success probability must be in (0, 1), got %v", p)
	}
	return nil
}

// lowerTail uses the regularized incomplete beta identity inside distuv:
// P(X <= k) = I_{1-p}(n-k, k+1).
func lowerTail(n, k int, p float64) float64 {
	if k >= n {
		return 1
	}
	dist := distuv.Binomial{N: float64(n), P: p}
	return clamp(dist.CDF(float64(k)))
}

// upperTail evaluates P(X >= k) = I_p(k, n-k+1) directly instead of 1 - CDF(k-1),
// which would lose the small right-tail values to cancellation.
func upperTail(n, k int, p float64) float64 {
	if k <= 0 {
		return 1
	}
	return clamp(mathext.RegIncBeta(float64(k), float64(n-k+1), p))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
