// Package threshold finds the allowed number of deviations for a one-sided
// exact binomial test.
package threshold

import (
	"fam450/adapters/stats/binomial"
	"fam450/domain/sampling"
	"fam450/internal/errors"
	"fam450/internal/logging"

	"go.uber.org/zap"
)

// Finder scans the binomial p-value sequence for the reject / fail-to-reject boundary.
// It holds no per-search state and is safe for concurrent use.
type Finder struct {
	logger *zap.Logger
}

// NewFinder creates a finder; a nil logger disables logging
func NewFinder(logger *zap.Logger) *Finder {
	return &Finder{logger: logging.OrNop(logger)}
}

// Find returns the allowed number of deviations k for the given alternative.
//
// LessThan: the first k with P(X <= k) < ovr <= P(X <= k+1).
// GreaterThan: the first k with P(X >= k) >= ovr > P(X >= k+1).
//
// The scan is bounded to k in [0, n]; when no crossing exists in that range the
// search fails with SEARCH_EXHAUSTED.
func (f *Finder) Find(params sampling.Parameters, alt sampling.Alternative) (*sampling.Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := alt.Validate(); err != nil {
		return nil, err
	}

	n, ovr := params.SampleSize(), params.OverrelianceRisk()

	current, err := f.PValue(params, alt, 0)
	if err != nil {
		return nil, err
	}
	evaluations := 1

	for k := 0; k <= n; k++ {
		next, err := f.PValue(params, alt, k+1)
		if err != nil {
			return nil, err
		}
		evaluations++

		if crosses(alt, current, next, ovr) {
			f.logger.Debug("allowed deviations found",
				zap.String("op", "threshold.Find"),
				zap.Int("n", n),
				zap.Float64("trd", params.TolerableRate()),
				zap.Float64("ovr", ovr),
				zap.String("alternative", alt.String()),
				zap.Int("k", k),
				zap.Int("evaluations", evaluations),
			)
			return &sampling.Result{Alternative: alt, K: k}, nil
		}
		current = next
	}

	f.logger.Warn("no reject boundary within sample size",
		zap.String("op", "threshold.Find"),
		zap.Int("n", n),
		zap.Float64("trd", params.TolerableRate()),
		zap.Float64("ovr", ovr),
		zap.String("alternative", alt.String()),
	)
	return nil, errors.SearchExhausted(
		"no allowed deviations for alternative %q within [0, %d] (trd=%v, ovr=%v)",
		alt.String(), n, params.TolerableRate(), ovr,
	)
}

// PValue returns the one-sided p-value for observing k deviations under trd.
// k = n+1 is accepted and evaluates to 1 for LessThan and 0 for GreaterThan.
func (f *Finder) PValue(params sampling.Parameters, alt sampling.Alternative, k int) (float64, error) {
	if err := alt.Validate(); err != nil {
		return 0, err
	}
	n := params.SampleSize()

	if k == n+1 {
		if alt == sampling.LessThan {
			return 1, nil
		}
		return 0, nil
	}

	dir := binomial.AtMost
	if alt == sampling.GreaterThan {
		dir = binomial.AtLeast
	}
	return binomial.Tail(n, k, params.TolerableRate(), dir)
}

func crosses(alt sampling.Alternative, current, next, ovr float64) bool {
	if alt == sampling.LessThan {
		return current < ovr && next >= ovr
	}
	return current >= ovr && next < ovr
}
