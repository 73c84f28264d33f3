package frame

import (
	"cmp"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrColumnNotFound is returned when an operation names a column the frame lacks.
var ErrColumnNotFound = errors.New("column not found")

// Row is one record; cells are positionally aligned with the frame's columns.
type Row []sql.NullString

// Frame is an in-memory table of nullable text cells.
type Frame struct {
	columns []string
	rows    []Row
}

// New builds a frame from columns and rows.
// Every row must have exactly len(columns) cells and column names must be unique.
func New(columns []string, rows []Row) (*Frame, error) {
	if err := checkUnique(columns); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(r), len(columns))
		}
	}
	return &Frame{
		columns: slices.Clone(columns),
		rows:    rows,
	}, nil
}

// Value wraps s as a non-null cell.
func Value(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// Null is the null cell.
var Null = sql.NullString{}

func checkUnique(columns []string) error {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column name %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Has reports whether the frame has a column named col.
func (f *Frame) Has(col string) bool {
	return slices.Contains(f.columns, col)
}

func (f *Frame) index(col string) (int, error) {
	i := slices.Index(f.columns, col)
	if i < 0 {
		return -1, fmt.Errorf("%q: %w", col, ErrColumnNotFound)
	}
	return i, nil
}

// value returns the cell at row i in column col.
func (f *Frame) value(i int, col string) (sql.NullString, error) {
	idx, err := f.index(col)
	if err != nil {
		return sql.NullString{}, err
	}
	if i < 0 || i >= len(f.rows) {
		return sql.NullString{}, fmt.Errorf("row %d out of range [0,%d)", i, len(f.rows))
	}
	return f.rows[i][idx], nil
}

// Column returns a copy of every cell of col, top to bottom.
func (f *Frame) Column(col string) ([]sql.NullString, error) {
	idx, err := f.index(col)
	if err != nil {
		return nil, err
	}
	out := make([]sql.NullString, len(f.rows))
	for i, r := range f.rows {
		out[i] = r[idx]
	}
	return out, nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	rows := make([]Row, len(f.rows))
	for i, r := range f.rows {
		rows[i] = slices.Clone(r)
	}
	return &Frame{columns: slices.Clone(f.columns), rows: rows}
}

// RenameColumns replaces every column name with fn(name).
// It fails, leaving the frame unchanged, if two columns end up with the same name.
func (f *Frame) RenameColumns(fn func(string) string) error {
	renamed := make([]string, len(f.columns))
	for i, c := range f.columns {
		renamed[i] = fn(c)
	}
	if err := checkUnique(renamed); err != nil {
		return err
	}
	f.columns = renamed
	return nil
}

// DropNulls removes every row that has a null cell in any column and returns
// how many rows were removed.
func (f *Frame) DropNulls() int {
	before := len(f.rows)
	f.rows = slices.DeleteFunc(f.rows, func(r Row) bool {
		return slices.ContainsFunc(r, func(c sql.NullString) bool { return !c.Valid })
	})
	return before - len(f.rows)
}

// DropDuplicates removes rows identical in every column to an earlier row,
// keeping the first occurrence, and returns how many rows were removed.
func (f *Frame) DropDuplicates() int {
	before := len(f.rows)
	seen := make(map[string]struct{}, len(f.rows))
	f.rows = slices.DeleteFunc(f.rows, func(r Row) bool {
		k := rowKey(r)
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
	return before - len(f.rows)
}

// rowKey length-prefixes every cell so distinct rows never share a key.
func rowKey(r Row) string {
	var b strings.Builder
	for _, c := range r {
		if !c.Valid {
			b.WriteString("N;")
			continue
		}
		b.WriteString(strconv.Itoa(len(c.String)))
		b.WriteByte(':')
		b.WriteString(c.String)
	}
	return b.String()
}

// SortByInt orders rows ascending by the integer value of col.
// Rows with equal keys keep their relative order. Every cell of col must be
// a non-null integer.
func (f *Frame) SortByInt(col string) error {
	idx, err := f.index(col)
	if err != nil {
		return err
	}

	keys := make([]int64, len(f.rows))
	for i, r := range f.rows {
		c := r[idx]
		if !c.Valid {
			return fmt.Errorf("sort by %q: row %d is null", col, i)
		}
		v, err := ParseInt(c.String)
		if err != nil {
			return fmt.Errorf("sort by %q: row %d: %w", col, i, err)
		}
		keys[i] = v
	}

	order := make([]int, len(f.rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(keys[a], keys[b])
	})

	sorted := make([]Row, len(f.rows))
	for i, src := range order {
		sorted[i] = f.rows[src]
	}
	f.rows = sorted
	return nil
}

// DropColumns removes the named columns. Every name must exist; on error the
// frame is unchanged.
func (f *Frame) DropColumns(cols ...string) error {
	drop := make(map[int]bool, len(cols))
	for _, c := range cols {
		idx, err := f.index(c)
		if err != nil {
			return fmt.Errorf("drop columns: %w", err)
		}
		drop[idx] = true
	}

	keep := func(i int) bool { return !drop[i] }

	columns := make([]string, 0, len(f.columns)-len(drop))
	for i, c := range f.columns {
		if keep(i) {
			columns = append(columns, c)
		}
	}
	for ri, r := range f.rows {
		out := make(Row, 0, len(columns))
		for i, c := range r {
			if keep(i) {
				out = append(out, c)
			}
		}
		f.rows[ri] = out
	}
	f.columns = columns
	return nil
}

// Apply replaces every cell of col with fn(cell).
// On error nothing is modified.
func (f *Frame) Apply(col string, fn func(sql.NullString) (sql.NullString, error)) error {
	idx, err := f.index(col)
	if err != nil {
		return err
	}
	out := make([]sql.NullString, len(f.rows))
	for i, r := range f.rows {
		v, err := fn(r[idx])
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", col, i, err)
		}
		out[i] = v
	}
	for i := range f.rows {
		f.rows[i][idx] = out[i]
	}
	return nil
}

// Derive sets column col to fn(row) for every row, appending the column if it
// does not exist yet. On error nothing is modified.
func (f *Frame) Derive(col string, fn func(RowView) (sql.NullString, error)) error {
	out := make([]sql.NullString, len(f.rows))
	for i := range f.rows {
		v, err := fn(RowView{f: f, i: i})
		if err != nil {
			return fmt.Errorf("derive %q row %d: %w", col, i, err)
		}
		out[i] = v
	}

	idx := slices.Index(f.columns, col)
	if idx < 0 {
		f.columns = append(f.columns, col)
		for i := range f.rows {
			f.rows[i] = append(f.rows[i], out[i])
		}
		return nil
	}
	for i := range f.rows {
		f.rows[i][idx] = out[i]
	}
	return nil
}

// Fill sets column col to value in every row, appending the column if needed.
func (f *Frame) Fill(col string, value sql.NullString) {
	// fn never fails
	_ = f.Derive(col, func(RowView) (sql.NullString, error) { return value, nil })
}

// Each calls fn for every row in order, stopping at the first error.
func (f *Frame) Each(fn func(RowView) error) error {
	for i := range f.rows {
		if err := fn(RowView{f: f, i: i}); err != nil {
			return err
		}
	}
	return nil
}

// RowView is a read-only handle on one row of a frame.
type RowView struct {
	f *Frame
	i int
}

// Index returns the row's position in the frame.
func (v RowView) Index() int {
	return v.i
}

// Lookup returns the cell in col and whether the column exists.
func (v RowView) Lookup(col string) (sql.NullString, bool) {
	idx := slices.Index(v.f.columns, col)
	if idx < 0 {
		return sql.NullString{}, false
	}
	return v.f.rows[v.i][idx], true
}

// Get returns the cell in col, or ErrColumnNotFound.
func (v RowView) Get(col string) (sql.NullString, error) {
	c, ok := v.Lookup(col)
	if !ok {
		return sql.NullString{}, fmt.Errorf("%q: %w", col, ErrColumnNotFound)
	}
	return c, nil
}
