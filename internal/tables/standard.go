// Package tables reproduces the FAM 450 allowed deviations reference tables.
package tables

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"fam450/domain/sampling"
	"fam450/internal/config"
	"fam450/internal/errors"
	"fam450/internal/format"
	"fam450/internal/threshold"

	"github.com/xuri/excelize/v2"
)

// IndexName labels the row index of every table
const IndexName = "Sample Size"

// Table holds allowed deviations keyed by sample size (rows, ascending) and
// tolerable deviation rate (columns)
type Table struct {
	Alternative      sampling.Alternative
	OverrelianceRisk float64
	Index            []int
	Columns          []string
	Values           [][]int // Values[row][column]
}

// ColumnName is the label used for a tolerable deviation rate, e.g. "Tolerable Deviation Rate of 5%"
func ColumnName(rate float64) string {
	return "Tolerable Deviation Rate of " + format.Percent(rate, 0)
}

// Column returns the values of the named column in index order
func (t *Table) Column(name string) ([]int, bool) {
	for j, c := range t.Columns {
		if c == name {
			out := make([]int, len(t.Index))
			for i := range t.Index {
				out[i] = t.Values[i][j]
			}
			return out, true
		}
	}
	return nil, false
}

// Row returns the values for sample size n in column order
func (t *Table) Row(n int) ([]int, bool) {
	i := sort.SearchInts(t.Index, n)
	if i == len(t.Index) || t.Index[i] != n {
		return nil, false
	}
	return append([]int(nil), t.Values[i]...), true
}

// Value returns the cell for sample size n and the named column
func (t *Table) Value(n int, column string) (int, bool) {
	row, ok := t.Row(n)
	if !ok {
		return 0, false
	}
	for j, c := range t.Columns {
		if c == column {
			return row[j], true
		}
	}
	return 0, false
}

// WriteText renders the table as aligned plain text
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, IndexName)
	for _, c := range t.Columns {
		fmt.Fprint(tw, "\t", c)
	}
	fmt.Fprintln(tw)

	for i, n := range t.Index {
		fmt.Fprint(tw, n)
		for _, v := range t.Values[i] {
			fmt.Fprint(tw, "\t", v)
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return errors.InternalError("failed to write table", err)
	}
	return nil
}

// SheetName is the worksheet name used by WriteXLSX
func (t *Table) SheetName() string {
	return "Allowed Deviations (" + t.Alternative.String() + ")"
}

// WriteXLSX writes the table as a single-sheet workbook
func (t *Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.SheetName()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.InternalError("failed to name worksheet", err)
	}

	header := []interface{}{IndexName}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.InternalError("failed to write header row", err)
	}

	for i, n := range t.Index {
		row := []interface{}{n}
		for _, v := range t.Values[i] {
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.InternalError("failed to address row", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row for sample size %d", n)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.InternalError("failed to write workbook", err)
	}
	return nil
}

// Builder evaluates the finder over a grid of sample sizes and tolerable rates
type Builder struct {
	finder *threshold.Finder
	cfg    config.TableConfig
}

// NewBuilder creates a table builder
func NewBuilder(finder *threshold.Finder, cfg config.TableConfig) *Builder {
	return &Builder{finder: finder, cfg: cfg}
}

// Build runs one search per grid cell for the given alternative
func (b *Builder) Build(alt sampling.Alternative) (*Table, error) {
	if err := alt.Validate(); err != nil {
		return nil, err
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	index := uniqueSorted(b.cfg.SampleSizes)
	columns := make([]string, len(b.cfg.TolerableRates))
	seen := make(map[string]bool, len(columns))
	for j, rate := range b.cfg.TolerableRates {
		columns[j] = ColumnName(rate)
		if seen[columns[j]] {
			return nil, errors.InvalidParameter("tolerable deviation rates produce duplicate column %q", columns[j])
		}
		seen[columns[j]] = true
	}

	values := make([][]int, len(index))
	for i, n := range index {
		values[i] = make([]int, len(columns))
		for j, rate := range b.cfg.TolerableRates {
			params, err := sampling.NewParameters(n, rate, b.cfg.OverrelianceRisk)
			if err != nil {
				return nil, err
			}
			res, err := b.finder.Find(params, alt)
			if err != nil {
				return nil, errors.Wrapf(err, "sample size %d, %s", n, columns[j])
			}
			values[i][j] = res.K
		}
	}

	return &Table{
		Alternative:      alt,
		OverrelianceRisk: b.cfg.OverrelianceRisk,
		Index:            index,
		Columns:          columns,
		Values:           values,
	}, nil
}

// LessThan reproduces the published table for the less than alternative
func LessThan() (*Table, error) {
	return standard(sampling.LessThan)
}

// GreaterThan reproduces the published table for the greater than alternative
func GreaterThan() (*Table, error) {
	return standard(sampling.GreaterThan)
}

func standard(alt sampling.Alternative) (*Table, error) {
	return NewBuilder(threshold.NewFinder(nil), config.Default().Tables).Build(alt)
}

func uniqueSorted(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}

func (t *Table) String() string {
	return fmt.Sprintf("%s table: %d sample sizes x %d rates at ovr=%s",
		t.Alternative, len(t.Index), len(t.Columns), strconv.FormatFloat(t.OverrelianceRisk, 'g', -1, 64))
}
