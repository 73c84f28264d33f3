package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRaw(t *testing.T) {
	c := New()

	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", c.CalculateRaw(nil))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", c.CalculateRaw([]byte("abc")))
	assert.NotEqual(t, c.CalculateRaw([]byte("a,b\n")), c.CalculateRaw([]byte("a,b\r\n")))
}

func TestCalculateNormalized(t *testing.T) {
	c := New()
	want := c.CalculateNormalized([]byte("user_id,email\n1,a@b.com"))

	for name, content := range map[string]string{
		"trailing newline": "user_id,email\n1,a@b.com\n",
		"crlf":             "user_id,email\r\n1,a@b.com\r\n",
		"old mac":          "user_id,email\r1,a@b.com\r",
		"bom":              "\ufeffuser_id,email\n1,a@b.com\n\n",
	} {
		assert.Equal(t, want, c.CalculateNormalized([]byte(content)), name)
	}

	assert.NotEqual(t, want, c.CalculateNormalized([]byte("user_id,email\n1,A@B.com")))
	assert.NotEqual(t, want, c.CalculateNormalized([]byte("user_id,email\n\n1,a@b.com")),
		"blank lines inside the file are content")
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	in := []byte("a\r\nb\r\n")
	_ = normalize(in)
	assert.Equal(t, []byte("a\r\nb\r\n"), in)
}
