package model

import (
	"fmt"
	"time"

	"github.com/vvka-141/foodetl/internal/frame"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// rowReader converts the cells of one row, keeping the first error.
// Optional columns may be absent from the frame; required ones may not,
// and may not be null.
type rowReader struct {
	row frame.RowView
	err error
}

func (r *rowReader) fail(col string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("row %d column %q: %w: %w", r.row.Index(), col, foodetl.ErrMalformedInput, err)
	}
}

func (r *rowReader) cell(col string, required bool) (string, bool) {
	c, ok := r.row.Lookup(col)
	if !ok {
		if required {
			r.fail(col, frame.ErrColumnNotFound)
		}
		return "", false
	}
	if !c.Valid {
		if required {
			r.fail(col, fmt.Errorf("null value"))
		}
		return "", false
	}
	return c.String, true
}

func (r *rowReader) str(col string) string {
	s, _ := r.cell(col, true)
	return s
}

func (r *rowReader) optStr(col string) *string {
	s, ok := r.cell(col, false)
	if !ok {
		return nil
	}
	return &s
}

func (r *rowReader) integer(col string) int64 {
	s, ok := r.cell(col, true)
	if !ok {
		return 0
	}
	v, err := frame.ParseInt(s)
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *rowReader) optInteger(col string) *int64 {
	s, ok := r.cell(col, false)
	if !ok {
		return nil
	}
	v, err := frame.ParseInt(s)
	if err != nil {
		r.fail(col, err)
		return nil
	}
	return &v
}

func (r *rowReader) date(col string) time.Time {
	s, ok := r.cell(col, true)
	if !ok {
		return time.Time{}
	}
	v, err := frame.ParseDate(s)
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *rowReader) optDate(col string) *time.Time {
	s, ok := r.cell(col, false)
	if !ok {
		return nil
	}
	v, err := frame.ParseDate(s)
	if err != nil {
		r.fail(col, err)
		return nil
	}
	return &v
}

// decode runs fn over every row of f, stopping at the first conversion error.
func decode[T any](dataset string, f *frame.Frame, fn func(*rowReader) T) ([]T, error) {
	out := make([]T, 0, f.Len())
	err := f.Each(func(row frame.RowView) error {
		r := &rowReader{row: row}
		rec := fn(r)
		if r.err != nil {
			return r.err
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", dataset, err)
	}
	return out, nil
}
