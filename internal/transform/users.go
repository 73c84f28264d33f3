package transform

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/foodetl/internal/frame"
)

// Columns the users transform removes before loading.
var userDropColumns = []string{"phone", "encoded_id"}

// DateLayout is how derived date cells are written.
const DateLayout = "2006-01-02"

// Users cleans and enriches the raw users dataset.
//
// Column names have spaces replaced by underscores. Rows with any null cell
// and exact duplicates are dropped, the rest are sorted by user_id. email is
// lowercased, age is recomputed from date_of_birth against now's year and
// last_modified is set to now on every row. phone and encoded_id are removed;
// their absence is an error.
func Users(raw *frame.Frame, now time.Time) (*Result, error) {
	renamed := raw.Clone()
	if err := renamed.RenameColumns(func(s string) string {
		return strings.ReplaceAll(s, " ", "_")
	}); err != nil {
		return nil, failed("users", "normalize column names", err)
	}

	res := clean(renamed)
	f := res.Frame

	if err := f.SortByInt("user_id"); err != nil {
		return nil, failed("users", "sort", err)
	}

	if err := f.Apply("email", func(c sql.NullString) (sql.NullString, error) {
		return frame.Value(strings.ToLower(c.String)), nil
	}); err != nil {
		return nil, failed("users", "lowercase email", err)
	}

	year := now.Year()
	if err := f.Derive("age", func(row frame.RowView) (sql.NullString, error) {
		dob, err := row.Get("date_of_birth")
		if err != nil {
			return frame.Null, err
		}
		born, err := frame.ParseDate(dob.String)
		if err != nil {
			return frame.Null, err
		}
		return frame.Value(strconv.Itoa(year - born.Year())), nil
	}); err != nil {
		return nil, failed("users", "compute age", err)
	}

	f.Fill("last_modified", frame.Value(now.Format(DateLayout)))

	if err := f.DropColumns(userDropColumns...); err != nil {
		return nil, failed("users", "drop columns", err)
	}

	return res, nil
}
