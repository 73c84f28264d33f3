package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffuser_id,first name,email\n1,Ann,A@B.com\n2,\"Smith, Jr\",\n"

	f, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"user_id", "first name", "email"}, f.Columns())
	assert.Equal(t, 2, f.Len())

	name, err := f.value(1, "first name")
	require.NoError(t, err)
	assert.Equal(t, "Smith, Jr", name.String)

	email, err := f.value(1, "email")
	require.NoError(t, err)
	assert.False(t, email.Valid)
}

func TestReadCSV_NATokensAreNull(t *testing.T) {
	for _, tok := range []string{"NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A", "<NA>"} {
		f, err := ReadCSV(strings.NewReader("a,b\n" + tok + ",x\n"))
		require.NoError(t, err, tok)

		v, err := f.value(0, "a")
		require.NoError(t, err)
		assert.False(t, v.Valid, tok)
	}

	f, err := ReadCSV(strings.NewReader("a\nnone\n"))
	require.NoError(t, err)
	v, _ := f.value(0, "a")
	assert.True(t, v.Valid, "lowercase none is a value")
}

func TestReadCSV_ShortRecordsPadWithNull(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a,b,c\n1\n"))
	require.NoError(t, err)

	c, err := f.value(0, "c")
	require.NoError(t, err)
	assert.False(t, c.Valid)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"empty input":        "",
		"long record":        "a,b\n1,2,3\n",
		"duplicate header":   "a,a\n1,2\n",
		"unterminated quote": "a\n\"open\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, []string{"a", "b"}, f.Columns())
}
