package ui

import "strings"

// Table provides minimal aligned table rendering without borders.
type Table struct {
	header     []string
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a new table with the specified number of columns.
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// SetHeader sets the header row, rendered in the muted style.
func (t *Table) SetHeader(cells ...string) {
	t.header = t.fit(cells)
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if len(cells[i]) > t.colWidths[i] {
			t.colWidths[i] = len(cells[i])
		}
	}
	return row
}

// String renders the table.
func (t *Table) String() string {
	if len(t.rows) == 0 && t.header == nil {
		return ""
	}

	var sb strings.Builder
	if t.header != nil {
		sb.WriteString(Muted.Render(t.renderRow(t.header)))
		sb.WriteString("\n")
	}
	for _, row := range t.rows {
		sb.WriteString(t.renderRow(row))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Table) renderRow(row []string) string {
	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)
	for i, cell := range row {
		if i > 0 {
			sb.WriteString(padding)
		}
		// Left-align, pad to column width (except last).
		if i < len(row)-1 {
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", t.colWidths[i]-len(cell)))
		} else {
			sb.WriteString(cell)
		}
	}
	return sb.String()
}
