package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/joseph-ayodele/tabula-extract/internal/tabula"
)

// CSV writes t to w, optionally preceded by a header of column names.
func CSV(w io.Writer, t *tabula.Table, header bool) error {
	if t == nil {
		return fmt.Errorf("csv: nil table")
	}
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(t.ColumnNames()); err != nil {
			return fmt.Errorf("csv header: %w", err)
		}
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csv rows: %w", err)
	}
	return nil
}
