package tabula

import (
	"errors"
	"reflect"
	"testing"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

func TestDecode_SingleRow(t *testing.T) {
	tbl, err := Decode([]byte(`[{"data":[[{"text":"a"},{"text":"b"}]]}]`), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.NumCols() != 2 || tbl.NumRows() != 1 {
		t.Fatalf("got %d cols x %d rows, want 2 x 1", tbl.NumCols(), tbl.NumRows())
	}
	if !reflect.DeepEqual(tbl.Rows[0], []string{"a", "b"}) {
		t.Fatalf("row = %q", tbl.Rows[0])
	}
	if !reflect.DeepEqual(tbl.ColumnNames(), []string{"Column1", "Column2"}) {
		t.Fatalf("column names = %q", tbl.ColumnNames())
	}
}

const multiPage = `[
  {"extraction_method":"lattice","page_number":1,"data":[
    [{"text":"h1"},{"text":"h2"}],
    [{"text":"a1"},{"text":"a2"}]
  ]},
  {"extraction_method":"stream","page_number":2,"data":[
    [{"text":"b1"},{"text":"b2"}],
    [{"text":"c1"},{"text":"c2"}],
    [{"text":"d1"},{"text":"d2"}]
  ]}
]`

func TestDecode_MultiPageOrder(t *testing.T) {
	tbl, err := Decode([]byte(multiPage), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"h1", "h2"}, {"a1", "a2"}, {"b1", "b2"}, {"c1", "c2"}, {"d1", "d2"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
	wantPages := []PageSpan{
		{Index: 0, PageNumber: 1, Method: "lattice", FirstRow: 0, RowCount: 2},
		{Index: 1, PageNumber: 2, Method: "stream", FirstRow: 2, RowCount: 3},
	}
	if !reflect.DeepEqual(tbl.Pages, wantPages) {
		t.Fatalf("pages = %+v, want %+v", tbl.Pages, wantPages)
	}
}

func TestDecode_ReplicateFirstRow(t *testing.T) {
	tbl, err := Decode([]byte(multiPage), DecodeOptions{ReplicateFirstRow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"h1", "h2"}, {"h1", "h2"}, {"b1", "b2"}, {"b1", "b2"}, {"b1", "b2"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
}

func TestDecode_EmptyArrays(t *testing.T) {
	for _, in := range []string{`[]`, `[{"data":[]}]`} {
		tbl, err := Decode([]byte(in), DecodeOptions{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if tbl.NumRows() != 0 || tbl.NumCols() != 0 {
			t.Fatalf("%s: expected empty table, got %d x %d", in, tbl.NumRows(), tbl.NumCols())
		}
	}
}

func TestDecode_LeadingEmptyRowsArePadded(t *testing.T) {
	in := `[{"data":[[]]},{"data":[[],[{"text":"a"},{"text":"b"}]]}]`
	tbl, err := Decode([]byte(in), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.NumCols() != 2 {
		t.Fatalf("cols = %d", tbl.NumCols())
	}
	want := [][]string{{"", ""}, {"", ""}, {"a", "b"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
}

func TestDecode_CellValues(t *testing.T) {
	tbl, err := Decode([]byte(`[{"data":[[{"text":"x","top":1.5},{"text":null},{"text":42.10},{"text":"ünï"}]]}]`), DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"x", "", "42.10", "ünï"}
	if !reflect.DeepEqual(tbl.Rows[0], want) {
		t.Fatalf("row = %q, want %q", tbl.Rows[0], want)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		kind DecodeErrorKind
		path string
	}{
		{"not json", `{"data":`, InvalidJSON, "$"},
		{"empty output", ``, InvalidJSON, "$"},
		{"top-level object", `{"data":[]}`, ExpectedArray, "$"},
		{"page not object", `[[]]`, ExpectedObject, "$[0]"},
		{"data missing", `[{"rows":[]}]`, ExpectedArray, "$[0].data"},
		{"data is object", `[{"data":{"a":1}}]`, ExpectedArray, "$[0].data"},
		{"data is string", `[{"data":"x"}]`, ExpectedArray, "$[0].data"},
		{"row not array", `[{"data":[[{"text":"a"}],{"text":"b"}]}]`, ExpectedArray, "$[0].data[1]"},
		{"cell not object", `[{"data":[["a"]]}]`, ExpectedObject, "$[0].data[0][0]"},
		{"cell without text", `[{"data":[[{"top":1}]]}]`, ExpectedObject, "$[0].data[0][0]"},
		{"text key capitalised", `[{"data":[[{"Text":"a"}]]}]`, ExpectedObject, "$[0].data[0][0]"},
		{"text key upper case", `[{"data":[[{"text":"a"},{"TEXT":"b"}]]}]`, ExpectedObject, "$[0].data[0][1]"},
		{"data key upper case", `[{"DATA":[[{"text":"a"}]]}]`, ExpectedArray, "$[0].data"},
		{"row wider than first non-empty row", `[{"data":[[],[{"text":"a"}],[{"text":"b"},{"text":"c"}]]}]`, RowWidth, "$[0].data[2]"},
		{"row too wide", `[{"data":[[{"text":"a"}],[{"text":"b"},{"text":"c"}]]}]`, RowWidth, "$[0].data[1]"},
		{"later page narrower", `[{"data":[[{"text":"a"},{"text":"b"}]]},{"data":[[{"text":"c"}]]}]`, RowWidth, "$[1].data[0]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl, err := Decode([]byte(c.in), DecodeOptions{})
			if tbl != nil {
				t.Fatalf("expected no table, got %+v", tbl)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T %v", err, err)
			}
			if de.Kind != c.kind || de.Path != c.path {
				t.Fatalf("got %s at %s, want %s at %s", de.Kind, de.Path, c.kind, c.path)
			}
			if !errors.Is(err, common.ErrDecode) {
				t.Fatalf("expected errors.Is(err, ErrDecode)")
			}
		})
	}
}

func TestDecode_ReplicateReadsFirstRowCells(t *testing.T) {
	// row 1 is well formed but row 0 has a bad cell; legacy mode reads row 0 for both.
	in := `[{"data":[[{"text":"a"},"bad"],[{"text":"c"},{"text":"d"}]]}]`
	_, err := Decode([]byte(in), DecodeOptions{ReplicateFirstRow: true})
	var de *DecodeError
	if !errors.As(err, &de) || de.Kind != ExpectedObject || de.Path != "$[0].data[0][1]" {
		t.Fatalf("unexpected error: %v", err)
	}
}
