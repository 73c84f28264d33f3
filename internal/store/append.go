// Package store appends decoded records to their tables with the COPY
// protocol. Appends never modify existing rows; each append is a single
// COPY and commits or fails as a whole.
package store

import (
	"context"
	"reflect"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/foodetl/internal/model"
	"github.com/vvka-141/foodetl/internal/schema"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// Append creates table t if needed and copies records into it. It returns the
// number of rows storage accepted.
//
// An identity column that is null in every record is left out of the COPY so
// the database generates it.
func Append[R model.Record](ctx context.Context, conn foodetl.DBConnection, t schema.Table, records []R) (int64, error) {
	if err := schema.EnsureTable(ctx, conn, t); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = r.Values()
	}

	columns := t.ColumnNames()
	for i := len(t.Columns) - 1; i >= 0; i-- {
		if t.Columns[i].Identity && allNull(rows, i) {
			columns = slices.Delete(columns, i, i+1)
			for j := range rows {
				rows[j] = slices.Delete(rows[j], i, i+1)
			}
		}
	}

	n, err := conn.CopyFrom(ctx, pgx.Identifier{t.Name}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, classify(t.Name, err)
	}
	return n, nil
}

func allNull(rows [][]any, col int) bool {
	for _, r := range rows {
		if !isNull(r[col]) {
			return false
		}
	}
	return true
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
