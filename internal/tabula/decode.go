package tabula

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

// DecodeErrorKind classifies a shape mismatch in engine output.
type DecodeErrorKind int

const (
	InvalidJSON DecodeErrorKind = iota + 1
	ExpectedArray
	ExpectedObject
	RowWidth
)

func (k DecodeErrorKind) String() string {
	switch k {
	case InvalidJSON:
		return "invalid json"
	case ExpectedArray:
		return "expected array"
	case ExpectedObject:
		return "expected object"
	case RowWidth:
		return "row width mismatch"
	}
	return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
}

// DecodeError reports where the engine output left the expected shape.
// Path is a JSONPath-style location such as $[0].data[2][1].
type DecodeError struct {
	Kind DecodeErrorKind
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("tabula decode: %s at %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("tabula decode: %s at %s: %s", e.Kind, e.Path, e.Msg)
}

// Is makes every DecodeError match common.ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == common.ErrDecode }

// DecodeOptions tunes Decode.
type DecodeOptions struct {
	// ReplicateFirstRow fills every row of a page from that page's first row,
	// reproducing output of older wrappers which indexed row 0 throughout.
	// Row counts are unaffected.
	ReplicateFirstRow bool
}

// Engine JSON: [ { "data": [ [ { "text": "..." }, ... ], ... ] }, ... ]
// Property names are matched exactly; encoding/json struct tags would also
// accept "Data" or "TEXT".
const (
	keyData       = "data"
	keyText       = "text"
	keyPageNumber = "page_number"
	keyMethod     = "extraction_method"
)

type object map[string]json.RawMessage

// Decode parses engine JSON into a Table. The column count is fixed by the
// first non-empty row and every later row must match it; empty rows seen
// before that are padded once the width is known. Any mismatch aborts the
// whole decode; no partial table is returned.
func Decode(raw []byte, opts DecodeOptions) (*Table, error) {
	if !json.Valid(raw) {
		return nil, &DecodeError{Kind: InvalidJSON, Path: "$", Msg: "engine output is not valid JSON"}
	}
	if kindOf(raw) != '[' {
		return nil, &DecodeError{Kind: ExpectedArray, Path: "$"}
	}
	var pages []json.RawMessage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, &DecodeError{Kind: ExpectedArray, Path: "$", Msg: err.Error()}
	}

	t := &Table{}
	width := 0
	for p, pageRaw := range pages {
		pagePath := fmt.Sprintf("$[%d]", p)
		if kindOf(pageRaw) != '{' {
			return nil, &DecodeError{Kind: ExpectedObject, Path: pagePath}
		}
		var page object
		if err := json.Unmarshal(pageRaw, &page); err != nil {
			return nil, &DecodeError{Kind: ExpectedObject, Path: pagePath, Msg: err.Error()}
		}
		dataPath := pagePath + ".data"
		data := page[keyData]
		if kindOf(data) != '[' {
			return nil, &DecodeError{Kind: ExpectedArray, Path: dataPath}
		}
		var rows []json.RawMessage
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, &DecodeError{Kind: ExpectedArray, Path: dataPath, Msg: err.Error()}
		}

		span := PageSpan{
			Index:      p,
			PageNumber: optionalInt(page[keyPageNumber]),
			Method:     optionalString(page[keyMethod]),
			FirstRow:   len(t.Rows),
			RowCount:   len(rows),
		}

		var first []json.RawMessage
		for r, rowRaw := range rows {
			rowPath := fmt.Sprintf("%s[%d]", dataPath, r)
			if kindOf(rowRaw) != '[' {
				return nil, &DecodeError{Kind: ExpectedArray, Path: rowPath}
			}
			var cells []json.RawMessage
			if err := json.Unmarshal(rowRaw, &cells); err != nil {
				return nil, &DecodeError{Kind: ExpectedArray, Path: rowPath, Msg: err.Error()}
			}
			if r == 0 {
				first = cells
			}
			if width == 0 && len(cells) > 0 {
				width = len(cells)
				t.initColumns(width)
				for i, prev := range t.Rows {
					t.Rows[i] = append(prev, make([]string, width-len(prev))...)
				}
			}

			src, srcPath := cells, rowPath
			if opts.ReplicateFirstRow {
				src, srcPath = first, dataPath+"[0]"
			}
			if len(src) != width {
				return nil, &DecodeError{
					Kind: RowWidth,
					Path: srcPath,
					Msg:  fmt.Sprintf("row has %d cells, table has %d columns", len(src), width),
				}
			}

			out := make([]string, width)
			for c, cellRaw := range src {
				text, err := decodeCell(cellRaw, fmt.Sprintf("%s[%d]", srcPath, c))
				if err != nil {
					return nil, err
				}
				out[c] = text
			}
			t.Rows = append(t.Rows, out)
		}
		t.Pages = append(t.Pages, span)
	}
	return t, nil
}

// decodeCell returns the cell's text. Strings are unquoted, null is "",
// any other JSON value is kept as its literal text.
func decodeCell(raw json.RawMessage, path string) (string, error) {
	if kindOf(raw) != '{' {
		return "", &DecodeError{Kind: ExpectedObject, Path: path}
	}
	var cell object
	if err := json.Unmarshal(raw, &cell); err != nil {
		return "", &DecodeError{Kind: ExpectedObject, Path: path, Msg: err.Error()}
	}
	text, ok := cell[keyText]
	if !ok {
		return "", &DecodeError{Kind: ExpectedObject, Path: path, Msg: `missing "text" property`}
	}
	switch kindOf(text) {
	case '"':
		var s string
		if err := json.Unmarshal(text, &s); err != nil {
			return "", &DecodeError{Kind: ExpectedObject, Path: path + ".text", Msg: err.Error()}
		}
		return s, nil
	case 'n':
		return "", nil
	default:
		return string(bytes.TrimSpace(text)), nil
	}
}

// kindOf returns the first significant byte of a JSON value, or 0.
func kindOf(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func optionalInt(raw json.RawMessage) int {
	var n int
	if raw == nil || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	return n
}

func optionalString(raw json.RawMessage) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
