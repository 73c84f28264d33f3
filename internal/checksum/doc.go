// Package checksum fingerprints input files so a run can be traced back to
// the exact data it loaded.
//
// Two digests are produced for every file:
//
//   - Raw: SHA-256 of the bytes as read.
//   - Normalized: SHA-256 after dropping a UTF-8 byte order mark, converting
//     CRLF and CR line endings to LF and trimming trailing line breaks. A
//     file saved by a spreadsheet on Windows and the same file exported on
//     Linux share a normalized checksum.
//
// SHA256 is a zero-size value and safe for concurrent use.
package checksum
