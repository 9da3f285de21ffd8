// Package fam450 computes the allowed number of deviations for attribute
// sampling tests of internal controls, following GAO FAM section 450.
//
// Given a sample size n, a tolerable deviation rate trd and a risk of
// overreliance ovr, the allowed number of deviations k is the boundary of a
// one-sided exact binomial test:
//
//	s, _ := fam450.New(158, 0.05, 0.1)
//	res, _ := s.AllowedDeviations(fam450.LessThan) // res.K == 4
//	text, _ := fam450.DetailedResults(s, res)
package fam450

import (
	"io"

	"fam450/domain/sampling"
	"fam450/internal/config"
	"fam450/internal/errors"
	"fam450/internal/logging"
	"fam450/internal/report"
	"fam450/internal/tables"
	"fam450/internal/threshold"

	"go.uber.org/zap"
)

type (
	Alternative = sampling.Alternative
	Parameters  = sampling.Parameters
	Result      = sampling.Result
	Table       = tables.Table
	Config      = config.Config
	TableConfig = config.TableConfig
)

const (
	LessThan    = sampling.LessThan
	GreaterThan = sampling.GreaterThan
)

// ParseAlternative accepts "less" or "greater"
func ParseAlternative(s string) (Alternative, error) {
	return sampling.ParseAlternative(s)
}

// Sample is a validated set of sampling parameters bound to a finder.
// Its parameters cannot change after New; searches return fresh results.
type Sample struct {
	params sampling.Parameters
	finder *threshold.Finder
}

// New validates n, trd and ovr
func New(n int, trd, ovr float64) (*Sample, error) {
	return NewWithLogger(n, trd, ovr, nil)
}

// NewWithLogger is New with search logging sent to logger
func NewWithLogger(n int, trd, ovr float64, logger *zap.Logger) (*Sample, error) {
	params, err := sampling.NewParameters(n, trd, ovr)
	if err != nil {
		return nil, err
	}
	return &Sample{params: params, finder: threshold.NewFinder(logger)}, nil
}

// Parameters returns a copy of the validated parameters
func (s *Sample) Parameters() Parameters { return s.params }

// SampleSize returns n
func (s *Sample) SampleSize() int { return s.params.SampleSize() }

// TolerableRate returns trd
func (s *Sample) TolerableRate() float64 { return s.params.TolerableRate() }

// OverrelianceRisk returns ovr
func (s *Sample) OverrelianceRisk() float64 { return s.params.OverrelianceRisk() }

// AllowedDeviations searches for k under the given alternative
func (s *Sample) AllowedDeviations(alt Alternative) (*Result, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.finder.Find(s.params, alt)
}

// PValue returns the one-sided p-value of observing k deviations
func (s *Sample) PValue(alt Alternative, k int) (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.finder.PValue(s.params, alt, k)
}

func (s *Sample) check() error {
	if s == nil || s.finder == nil {
		return errors.Precondition("no sample: construct one with fam450.New first")
	}
	return nil
}

// DetailedResults states the hypotheses and decision rule for res
func DetailedResults(s *Sample, res *Result) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return report.Detailed(s.params, res)
}

// SimpleResults summarizes res in one sentence
func SimpleResults(s *Sample, res *Result) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return report.Simple(s.params, res)
}

// DetailedHTML renders the detailed results as an HTML fragment
func DetailedHTML(s *Sample, res *Result) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return report.DetailedHTML(s.params, res)
}

// PrintDetailedResults writes DetailedResults and a newline to w
func PrintDetailedResults(w io.Writer, s *Sample, res *Result) error {
	if err := s.check(); err != nil {
		return err
	}
	return report.PrintDetailed(w, s.params, res)
}

// PrintSimpleResults writes SimpleResults and a newline to w
func PrintSimpleResults(w io.Writer, s *Sample, res *Result) error {
	if err := s.check(); err != nil {
		return err
	}
	return report.PrintSimple(w, s.params, res)
}

// LessThanTable reproduces the published allowed deviations table for the
// less than alternative at a 10% risk of overreliance.
func LessThanTable() (*Table, error) {
	return tables.LessThan()
}

// GreaterThanTable reproduces the published allowed deviations table for the
// greater than alternative at a 10% risk of overreliance.
func GreaterThanTable() (*Table, error) {
	return tables.GreaterThan()
}

// BuildTable evaluates a custom grid
func BuildTable(cfg TableConfig, alt Alternative, logger *zap.Logger) (*Table, error) {
	return tables.NewBuilder(threshold.NewFinder(logger), cfg).Build(alt)
}

// DefaultConfig returns the published table parameters
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads FAM450_* environment variables, optionally from a .env file first
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		return config.LoadFile(envFile)
	}
	return config.Load()
}

// NewLogger builds the zap logger described by cfg.Logging
func NewLogger(cfg *Config) (*zap.Logger, error) {
	return logging.New(cfg.Logging)
}
