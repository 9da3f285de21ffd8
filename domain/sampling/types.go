package sampling

import (
	"fmt"

	"fam450/internal/errors"
)

// Alternative is the direction of the one-sided binomial test
type Alternative string

const (
	LessThan    Alternative = "less"    // true deviation rate is below trd
	GreaterThan Alternative = "greater" // true deviation rate is above trd
)

// ParseAlternative converts exactly "less" or "greater" into an Alternative
func ParseAlternative(s string) (Alternative, error) {
	alt := Alternative(s)
	if err := alt.Validate(); err != nil {
		return "", err
	}
	return alt, nil
}

// Validate fails with INVALID_ARGUMENT for anything but LessThan and GreaterThan
func (a Alternative) Validate() error {
	switch a {
	case LessThan, GreaterThan:
		return nil
	default:
		return errors.InvalidArgument("unsupported alternative: %q", string(a))
	}
}

func (a Alternative) String() string {
	return string(a)
}

// Parameters holds the inputs of an attribute sampling test.
//
// Fields are unexported so a value obtained from NewParameters always satisfies
// n >= 1, 0 < trd < 1 and 0 < ovr < 1.
type Parameters struct {
	n   int
	trd float64
	ovr float64
}

// NewParameters validates and builds sampling parameters
func NewParameters(n int, trd, ovr float64) (Parameters, error) {
	if n < 1 {
		return Parameters{}, errors.InvalidParameter("sample size must be at least 1, got %d", n)
	}
	if !(trd > 0 && trd < 1) {
		return Parameters{}, errors.InvalidParameter("tolerable deviation rate must be in (0, 1), got %v", trd)
	}
	if !(ovr > 0 && ovr < 1) {
		return Parameters{}, errors.InvalidParameter("risk of overreliance must be in (0, 1), got %v", ovr)
	}
	return Parameters{n: n, trd: trd, ovr: ovr}, nil
}

// SampleSize returns n
func (p Parameters) SampleSize() int { return p.n }

// TolerableRate returns trd
func (p Parameters) TolerableRate() float64 { return p.trd }

// OverrelianceRisk returns ovr
func (p Parameters) OverrelianceRisk() float64 { return p.ovr }

// ConfidenceLevel returns 1 - ovr
func (p Parameters) ConfidenceLevel() float64 { return 1 - p.ovr }

// Validate re-checks the invariants; the zero value is invalid.
func (p Parameters) Validate() error {
	_, err := NewParameters(p.n, p.trd, p.ovr)
	return err
}

func (p Parameters) String() string {
	return fmt.Sprintf("n=%d trd=%v ovr=%v", p.n, p.trd, p.ovr)
}

// Result is the allowed number of deviations found for one alternative
type Result struct {
	Alternative Alternative `json:"alternative"`
	K           int         `json:"k"`
}

// CheckAgainst verifies that r is consistent with the parameters it is reported for
func (r *Result) CheckAgainst(p Parameters) error {
	if r == nil {
		return errors.Precondition("no threshold result: run the allowed deviations search first")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.Alternative.Validate(); err != nil {
		return err
	}
	if r.K < 0 || r.K > p.n {
		return errors.InvalidArgument("allowed deviations %d outside [0, %d]", r.K, p.n)
	}
	return nil
}

// Rate returns k/n
func (r Result) Rate(p Parameters) float64 {
	return float64(r.K) / float64(p.n)
}
