package frame

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// naValues are the cell spellings read as null, in addition to the empty cell.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNA reports whether a raw cell spelling denotes a missing value.
func IsNA(s string) bool {
	_, ok := naValues[s]
	return ok
}

// ReadCSV parses comma-separated input whose first record is the header.
// Missing trailing cells are null; a record with more cells than the header
// is an error. Cells matching IsNA are null.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header record")
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := checkUnique(header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}

		row := make(Row, len(header))
		for i := range row {
			if i >= len(rec) || IsNA(rec[i]) {
				row[i] = sql.NullString{}
				continue
			}
			row[i] = Value(rec[i])
		}
		rows = append(rows, row)
	}

	return New(header, rows)
}
