package ui

import "strings"

// Alignment selects how a column pads its cells.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table renders rows with spacing alignment, no borders. Document counts
// and other numbers read better right-aligned; callers opt in per column.
type Table struct {
	rows    [][]string
	widths  []int
	aligns  []Alignment
	padding int
}

// NewTable creates a table with the given number of columns, all
// left-aligned.
func NewTable(cols int) *Table {
	return &Table{
		widths:  make([]int, cols),
		aligns:  make([]Alignment, cols),
		padding: 2,
	}
}

// Align sets one column's alignment and returns the table for chaining.
func (t *Table) Align(col int, a Alignment) *Table {
	if col >= 0 && col < len(t.aligns) {
		t.aligns[col] = a
	}
	return t
}

// SetPadding sets the spacing between columns.
func (t *Table) SetPadding(n int) {
	t.padding = n
}

// AddRow appends one row. Cells beyond the column count are dropped,
// missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.widths))
	for i := 0; i < len(t.widths) && i < len(cells); i++ {
		row[i] = cells[i]
		if len(cells[i]) > t.widths[i] {
			t.widths[i] = len(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table. Lines never carry trailing spaces, so short
// final cells don't pad the output.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder
	for _, row := range t.rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString(gap)
			}
			fill := strings.Repeat(" ", t.widths[i]-len(cell))
			if t.aligns[i] == AlignRight {
				line.WriteString(fill)
				line.WriteString(cell)
			} else {
				line.WriteString(cell)
				line.WriteString(fill)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
