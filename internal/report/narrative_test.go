package report

import (
	"bytes"
	stderrors "errors"
	"testing"

	"fam450/domain/sampling"
	"fam450/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	detailedLess = "Null Hypothesis: The true tolerable rate of deviation is 5% or more.\n" +
		"Alternative Hypothesis: The true tolerable rate of deviation is less than 5%.\n\n" +
		"If the experimenter observes 4 deviations or less in a sample size of 158 (2.53%), they can reject with 90% confidence " +
		"the null hypothesis that the true tolerable rate of deviation is 5% or more in favor of the alternative that it's less than 5%.  " +
		"If the experimenter observes more than 4 deviations, they fail to reject the null hypothesis, " +
		"but cannot say the true tolerable rate of deviation is 5% or more."

	detailedGreater = "Null Hypothesis: The true tolerable rate of deviation is at most 5%.\n" +
		"Alternative Hypothesis: The true tolerable rate of deviation is greater than 5%.\n\n" +
		"If the experimenter observes more than 11 deviations in a sample size of 158 (6.96%), they can reject with 90% confidence " +
		"the null hypothesis that the true tolerable rate of deviation is at most 5% in favor of the alternative that it's greater than 5%.  " +
		"If the experimenter observes 11 or fewer deviations, they fail to reject the null hypothesis, " +
		"but cannot say the true tolerable rate of deviation is at most 5%."

	simpleLess    = "4 is the maximum number of allowed deviations that an experimenter has enough evidence to determine the internal controls are effective."
	simpleGreater = "11 is the minimum number of allowed deviations, after which an experimenter has enough evidence to determine the internal controls are ineffective."
)

func auditParams(t *testing.T) sampling.Parameters {
	t.Helper()
	p, err := sampling.NewParameters(158, 0.05, 0.1)
	require.NoError(t, err)
	return p
}

func TestDetailed(t *testing.T) {
	params := auditParams(t)

	got, err := Detailed(params, &sampling.Result{Alternative: sampling.LessThan, K: 4})
	require.NoError(t, err)
	assert.Equal(t, detailedLess, got)

	got, err = Detailed(params, &sampling.Result{Alternative: sampling.GreaterThan, K: 11})
	require.NoError(t, err)
	assert.Equal(t, detailedGreater, got)
}

func TestSimple(t *testing.T) {
	params := auditParams(t)

	got, err := Simple(params, &sampling.Result{Alternative: sampling.LessThan, K: 4})
	require.NoError(t, err)
	assert.Equal(t, simpleLess, got)

	got, err = Simple(params, &sampling.Result{Alternative: sampling.GreaterThan, K: 11})
	require.NoError(t, err)
	assert.Equal(t, simpleGreater, got)
}

func TestThousandsSeparators(t *testing.T) {
	params, err := sampling.NewParameters(2500, 0.05, 0.05)
	require.NoError(t, err)
	result := &sampling.Result{Alternative: sampling.GreaterThan, K: 1250}

	got, err := Detailed(params, result)
	require.NoError(t, err)
	assert.Contains(t, got, "more than 1,250 deviations in a sample size of 2,500 (50.00%)")
	assert.Contains(t, got, "reject with 95% confidence")

	got, err = Simple(params, result)
	require.NoError(t, err)
	assert.Contains(t, got, "1,250 is the minimum")
}

func TestReportsRequireResult(t *testing.T) {
	params := auditParams(t)

	_, err := Detailed(params, nil)
	assert.True(t, stderrors.Is(err, errors.ErrPrecondition))
	assert.Contains(t, err.Error(), "run the allowed deviations search first")

	_, err = Simple(params, nil)
	assert.True(t, stderrors.Is(err, errors.ErrPrecondition))

	_, err = DetailedHTML(params, nil)
	assert.True(t, stderrors.Is(err, errors.ErrPrecondition))

	var buf bytes.Buffer
	assert.True(t, stderrors.Is(PrintSimple(&buf, params, nil), errors.ErrPrecondition))
	assert.Empty(t, buf.String())
}

func TestReportsRejectInconsistentResult(t *testing.T) {
	params := auditParams(t)

	_, err := Detailed(params, &sampling.Result{Alternative: sampling.LessThan, K: 159})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))

	_, err = Simple(params, &sampling.Result{Alternative: "both", K: 1})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))
}

func TestPrint(t *testing.T) {
	params := auditParams(t)
	result := &sampling.Result{Alternative: sampling.LessThan, K: 4}

	var buf bytes.Buffer
	require.NoError(t, PrintDetailed(&buf, params, result))
	assert.Equal(t, detailedLess+"\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintSimple(&buf, params, result))
	assert.Equal(t, simpleLess+"\n", buf.String())
}

func TestDetailedMarkdownAndHTML(t *testing.T) {
	params := auditParams(t)
	result := &sampling.Result{Alternative: sampling.GreaterThan, K: 11}

	md, err := DetailedMarkdown(params, result)
	require.NoError(t, err)
	assert.Contains(t, md, "**Null Hypothesis:** The true tolerable rate of deviation is at most 5%.\n")
	assert.Contains(t, md, "**Alternative Hypothesis:** The true tolerable rate of deviation is greater than 5%.\n\n")

	out, err := DetailedHTML(params, result)
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Null Hypothesis:</strong>")
	assert.Contains(t, out, "<strong>Alternative Hypothesis:</strong>")
	assert.Contains(t, out, "<br")
	assert.Contains(t, out, "more than 11 deviations in a sample size of 158 (6.96%)")
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("<p>")))
}
