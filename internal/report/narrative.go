// Package report renders the outcome of an allowed deviations search as text.
package report

import (
	"fmt"
	"io"

	"fam450/domain/sampling"
	"fam450/internal/errors"
	"fam450/internal/format"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Detailed states both hypotheses and the decision rule for a completed search.
// It fails with PRECONDITION_FAILED when result is nil.
func Detailed(params sampling.Parameters, result *sampling.Result) (string, error) {
	h, err := newHypotheses(params, result)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Null Hypothesis: %s\nAlternative Hypothesis: %s\n\n%s", h.null, h.alternative, h.decision), nil
}

// Simple is a one sentence summary of what the threshold means in practice
func Simple(params sampling.Parameters, result *sampling.Result) (string, error) {
	if err := result.CheckAgainst(params); err != nil {
		return "", err
	}

	k := format.Count(result.K)
	if result.Alternative == sampling.LessThan {
		return k + " is the maximum number of allowed deviations that an experimenter has enough evidence to determine the internal controls are effective.", nil
	}
	return k + " is the minimum number of allowed deviations, after which an experimenter has enough evidence to determine the internal controls are ineffective.", nil
}

// DetailedMarkdown is the detailed narrative with the hypothesis labels in bold
func DetailedMarkdown(params sampling.Parameters, result *sampling.Result) (string, error) {
	h, err := newHypotheses(params, result)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Null Hypothesis:** %s\n**Alternative Hypothesis:** %s\n\n%s\n", h.null, h.alternative, h.decision), nil
}

// DetailedHTML renders DetailedMarkdown to an HTML fragment
func DetailedHTML(params sampling.Parameters, result *sampling.Result) (string, error) {
	md, err := DetailedMarkdown(params, result)
	if err != nil {
		return "", err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
	r := html.NewRenderer(html.RendererOptions{Flags: html.FlagsNone})
	return string(markdown.ToHTML([]byte(md), p, r)), nil
}

// PrintDetailed writes the detailed narrative followed by a newline
func PrintDetailed(w io.Writer, params sampling.Parameters, result *sampling.Result) error {
	text, err := Detailed(params, result)
	if err != nil {
		return err
	}
	return writeLine(w, text)
}

// PrintSimple writes the simple narrative followed by a newline
func PrintSimple(w io.Writer, params sampling.Parameters, result *sampling.Result) error {
	text, err := Simple(params, result)
	if err != nil {
		return err
	}
	return writeLine(w, text)
}

func writeLine(w io.Writer, text string) error {
	if _, err := fmt.Fprintln(w, text); err != nil {
		return errors.InternalError("failed to write report", err)
	}
	return nil
}

type hypotheses struct {
	null        string
	alternative string
	decision    string
}

func newHypotheses(params sampling.Parameters, result *sampling.Result) (hypotheses, error) {
	if err := result.CheckAgainst(params); err != nil {
		return hypotheses{}, err
	}

	trd := format.Percent(params.TolerableRate(), 0)
	confidence := format.Percent(params.ConfidenceLevel(), 0)
	rate := format.Percent(result.Rate(params), 2)
	k := format.Count(result.K)
	n := format.Count(params.SampleSize())

	if result.Alternative == sampling.LessThan {
		return hypotheses{
			null:        fmt.Sprintf("The true tolerable rate of deviation is %s or more.", trd),
			alternative: fmt.Sprintf("The true tolerable rate of deviation is less than %s.", trd),
			decision: fmt.Sprintf(
				"If the experimenter observes %s deviations or less in a sample size of %s (%s), "+
					"they can reject with %s confidence the null hypothesis that the true tolerable rate of deviation is %s or more "+
					"in favor of the alternative that it's less than %s.  "+
					"If the experimenter observes more than %s deviations, they fail to reject the null hypothesis, "+
					"but cannot say the true tolerable rate of deviation is %s or more.",
				k, n, rate, confidence, trd, trd, k, trd),
		}, nil
	}

	return hypotheses{
		null:        fmt.Sprintf("The true tolerable rate of deviation is at most %s.", trd),
		alternative: fmt.Sprintf("The true tolerable rate of deviation is greater than %s.", trd),
		decision: fmt.Sprintf(
			"If the experimenter observes more than %s deviations in a sample size of %s (%s), "+
				"they can reject with %s confidence the null hypothesis that the true tolerable rate of deviation is at most %s "+
				"in favor of the alternative that it's greater than %s.  "+
				"If the experimenter observes %s or fewer deviations, they fail to reject the null hypothesis, "+
				"but cannot say the true tolerable rate of deviation is at most %s.",
			k, n, rate, confidence, trd, trd, k, trd),
	}, nil
}
