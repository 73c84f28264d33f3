package frame

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, csvText string) *Frame {
	t.Helper()
	f, err := ReadCSV(strings.NewReader(csvText))
	require.NoError(t, err)
	return f
}

func column(t *testing.T, f *Frame, col string) []string {
	t.Helper()
	cells, err := f.Column(col)
	require.NoError(t, err)
	out := make([]string, len(cells))
	for i, c := range cells {
		if !c.Valid {
			out[i] = "<null>"
			continue
		}
		out[i] = c.String
	}
	return out
}

func TestNew_RejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, []Row{{Value("1")}})
	assert.Error(t, err)
}

func TestNew_RejectsDuplicateColumns(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil)
	assert.Error(t, err)
}

func TestRenameColumns(t *testing.T) {
	f := mustFrame(t, "first name,last name\nA,B\n")

	require.NoError(t, f.RenameColumns(func(s string) string { return strings.ReplaceAll(s, " ", "_") }))
	assert.Equal(t, []string{"first_name", "last_name"}, f.Columns())
}

func TestRenameColumns_CollisionLeavesFrameUnchanged(t *testing.T) {
	f := mustFrame(t, "a b,a_b\n1,2\n")

	err := f.RenameColumns(func(s string) string { return strings.ReplaceAll(s, " ", "_") })
	require.Error(t, err)
	assert.Equal(t, []string{"a b", "a_b"}, f.Columns())
}

func TestDropNulls(t *testing.T) {
	f := mustFrame(t, "id,name\n1,a\n2,\n3,NaN\n4,d\n")

	dropped := f.DropNulls()

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []string{"1", "4"}, column(t, f, "id"))
}

func TestDropDuplicates_KeepsFirst(t *testing.T) {
	f, err := New([]string{"id", "name"}, []Row{
		{Value("1"), Value("a")},
		{Value("2"), Value("b")},
		{Value("1"), Value("a")},
		{Value("1"), Value("A")},
		{Value("2"), Null},
		{Value("2"), Null},
	})
	require.NoError(t, err)

	dropped := f.DropDuplicates()

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []string{"1", "2", "1", "2"}, column(t, f, "id"))
	assert.Equal(t, []string{"a", "b", "A", "<null>"}, column(t, f, "name"))
}

func TestDropDuplicates_NoKeyCollisionAcrossCells(t *testing.T) {
	f, err := New([]string{"a", "b"}, []Row{
		{Value("ab"), Value("c")},
		{Value("a"), Value("bc")},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.DropDuplicates())
}

func TestSortByInt_NumericAndStable(t *testing.T) {
	f := mustFrame(t, "user_id,tag\n10,a\n9,b\n10,c\n2.0,d\n-1,e\n")

	require.NoError(t, f.SortByInt("user_id"))

	assert.Equal(t, []string{"-1", "2.0", "9", "10", "10"}, column(t, f, "user_id"))
	assert.Equal(t, []string{"e", "d", "b", "a", "c"}, column(t, f, "tag"))
}

func TestSortByInt_Errors(t *testing.T) {
	f := mustFrame(t, "id\n1\nx\n")
	assert.Error(t, f.SortByInt("id"))

	f = mustFrame(t, "id\n1\n\n")
	f.rows = append(f.rows, Row{Null})
	assert.Error(t, f.SortByInt("id"))

	err := f.SortByInt("missing")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestDropColumns(t *testing.T) {
	f := mustFrame(t, "a,b,c\n1,2,3\n")

	require.NoError(t, f.DropColumns("a", "c"))
	assert.Equal(t, []string{"b"}, f.Columns())
	assert.Equal(t, []string{"2"}, column(t, f, "b"))
}

func TestDropColumns_MissingIsErrorAndNoChange(t *testing.T) {
	f := mustFrame(t, "a,b\n1,2\n")

	err := f.DropColumns("a", "zzz")
	require.ErrorIs(t, err, ErrColumnNotFound)
	assert.Equal(t, []string{"a", "b"}, f.Columns())
}

func TestApply(t *testing.T) {
	f := mustFrame(t, "email\nA@B.COM\nx@Y.org\n")

	err := f.Apply("email", func(c sql.NullString) (sql.NullString, error) {
		return Value(strings.ToLower(c.String)), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.com", "x@y.org"}, column(t, f, "email"))
}

func TestApply_ErrorLeavesColumnUnchanged(t *testing.T) {
	f := mustFrame(t, "n\n1\n2\n")

	err := f.Apply("n", func(c sql.NullString) (sql.NullString, error) {
		if c.String == "2" {
			return Null, errors.New("boom")
		}
		return Value("changed"), nil
	})
	require.Error(t, err)
	assert.Equal(t, []string{"1", "2"}, column(t, f, "n"))
}

func TestDerive_AddsAndReplaces(t *testing.T) {
	f := mustFrame(t, "a,b\n1,2\n3,4\n")

	sum := func(v RowView) (sql.NullString, error) {
		a, _ := v.Lookup("a")
		b, _ := v.Lookup("b")
		return Value(a.String + "+" + b.String), nil
	}
	require.NoError(t, f.Derive("sum", sum))
	assert.Equal(t, []string{"a", "b", "sum"}, f.Columns())
	assert.Equal(t, []string{"1+2", "3+4"}, column(t, f, "sum"))

	require.NoError(t, f.Derive("a", func(RowView) (sql.NullString, error) { return Value("x"), nil }))
	assert.Equal(t, []string{"a", "b", "sum"}, f.Columns())
	assert.Equal(t, []string{"x", "x"}, column(t, f, "a"))
}

func TestFill(t *testing.T) {
	f := mustFrame(t, "a\n1\n2\n")

	f.Fill("stamp", Value("2024-05-01"))

	assert.Equal(t, []string{"2024-05-01", "2024-05-01"}, column(t, f, "stamp"))
}

func TestClone_IsDeep(t *testing.T) {
	f := mustFrame(t, "a\n1\n")
	c := f.Clone()

	f.Fill("a", Value("changed"))

	assert.Equal(t, []string{"1"}, column(t, c, "a"))
}

func TestRowView_Get(t *testing.T) {
	f := mustFrame(t, "a\n1\n")

	err := f.Each(func(v RowView) error {
		c, err := v.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "1", c.String)
		assert.Equal(t, 0, v.Index())

		_, err = v.Get("nope")
		assert.ErrorIs(t, err, ErrColumnNotFound)
		return nil
	})
	require.NoError(t, err)
}
