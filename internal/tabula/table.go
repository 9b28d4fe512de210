package tabula

import (
	"errors"
	"fmt"
	"strconv"
)

// Column is a positional string column.
type Column struct {
	Name  string
	Index int
}

// PageSpan records which rows of a Table came from one page object of the
// engine output.
type PageSpan struct {
	Index      int    // position in the engine output
	PageNumber int    // engine's page_number, 0 when absent
	Method     string // engine's extraction_method, "" when absent
	FirstRow   int
	RowCount   int
}

// Table is the decoded engine output. Every row has len(Columns) cells.
type Table struct {
	Columns []Column
	Rows    [][]string
	Pages   []PageSpan
}

func (t *Table) initColumns(n int) {
	t.Columns = make([]Column, n)
	for i := range t.Columns {
		t.Columns[i] = Column{Name: "Column" + strconv.Itoa(i+1), Index: i}
	}
}

func (t *Table) NumRows() int { return len(t.Rows) }

func (t *Table) NumCols() int { return len(t.Columns) }

// Cell returns the value at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// SetColumnNames renames columns positionally. It fails when the count differs.
func (t *Table) SetColumnNames(names ...string) error {
	if len(names) != len(t.Columns) {
		return fmt.Errorf("table has %d columns, got %d names", len(t.Columns), len(names))
	}
	for i, n := range names {
		t.Columns[i].Name = n
	}
	return nil
}

// PromoteHeader turns the first row into column names and drops it.
// Page spans are shifted accordingly.
func (t *Table) PromoteHeader() error {
	if len(t.Rows) == 0 {
		return errors.New("table has no rows")
	}
	if err := t.SetColumnNames(t.Rows[0]...); err != nil {
		return err
	}
	t.Rows = t.Rows[1:]
	for i := range t.Pages {
		p := &t.Pages[i]
		if p.FirstRow == 0 && p.RowCount > 0 {
			p.RowCount--
			continue
		}
		if p.FirstRow > 0 {
			p.FirstRow--
		}
	}
	return nil
}
