package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Calculator interface {
	CalculateRaw(content []byte) string
	CalculateNormalized(content []byte) string
}

type SHA256 struct{}

func New() SHA256 {
	return SHA256{}
}

func (SHA256) CalculateRaw(content []byte) string {
	return sum(content)
}

func (SHA256) CalculateNormalized(content []byte) string {
	return sum(normalize(content))
}

func sum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// normalize never modifies content.
func normalize(content []byte) []byte {
	content = bytes.TrimPrefix(content, utf8BOM)
	out := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	return bytes.TrimRight(out, "\n")
}
