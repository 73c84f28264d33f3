package filesystem

import (
	"io/fs"
)

// FileInfo is fs.FileInfo, re-exported so callers need not import io/fs.
type FileInfo = fs.FileInfo

// FileSystemProvider reads files from a data directory.
type FileSystemProvider interface {
	// ReadFile returns the whole content of the file at path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the entries directly under path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	Stat(path string) (FileInfo, error)
}
