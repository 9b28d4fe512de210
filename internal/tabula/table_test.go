package tabula

import (
	"reflect"
	"testing"
)

func TestTable_PromoteHeader(t *testing.T) {
	tbl, err := Decode([]byte(multiPage), DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.PromoteHeader(); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !reflect.DeepEqual(tbl.ColumnNames(), []string{"h1", "h2"}) {
		t.Fatalf("names = %q", tbl.ColumnNames())
	}
	if tbl.NumRows() != 4 || tbl.Cell(0, 0) != "a1" {
		t.Fatalf("rows = %q", tbl.Rows)
	}
	want := []PageSpan{
		{Index: 0, PageNumber: 1, Method: "lattice", FirstRow: 0, RowCount: 1},
		{Index: 1, PageNumber: 2, Method: "stream", FirstRow: 1, RowCount: 3},
	}
	if !reflect.DeepEqual(tbl.Pages, want) {
		t.Fatalf("pages = %+v", tbl.Pages)
	}
}

func TestTable_SetColumnNamesCountMismatch(t *testing.T) {
	tbl := &Table{}
	tbl.initColumns(2)
	if err := tbl.SetColumnNames("only-one"); err == nil {
		t.Fatalf("expected error")
	}
	if err := tbl.SetColumnNames("a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTable_CellOutOfRange(t *testing.T) {
	tbl := &Table{Rows: [][]string{{"x"}}}
	if tbl.Cell(0, 1) != "" || tbl.Cell(5, 0) != "" || tbl.Cell(-1, 0) != "" {
		t.Fatalf("expected empty strings out of range")
	}
}
