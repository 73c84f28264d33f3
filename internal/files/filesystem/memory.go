package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem is a FileSystemProvider for tests. Relative paths are
// resolved against the root given to NewMemoryFileSystem. It is not safe
// for concurrent writes.
type MemoryFileSystem struct {
	files map[string]*memoryFile
	root  string
}

func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  path.Clean(filepath.ToSlash(root)),
	}
	mfs.addDir(mfs.root)
	return mfs
}

// AddFile stores content at filePath and creates its parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	abs := mfs.resolve(filePath)
	mfs.files[abs] = &memoryFile{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	for dir := path.Dir(abs); ; dir = path.Dir(dir) {
		if _, ok := mfs.files[dir]; !ok {
			mfs.addDir(dir)
		}
		if dir == "/" || dir == "." || dir == mfs.root {
			break
		}
	}
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	mfs.files[dir] = &memoryFile{
		info: &memoryFileInfo{name: path.Base(dir), mode: 0755 | fs.ModeDir, modTime: time.Now()},
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func notFound(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	file, ok := mfs.files[mfs.resolve(filePath)]
	if !ok {
		return nil, notFound("open", filePath)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return append([]byte(nil), file.content...), nil
}

func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	dir := mfs.resolve(dirPath)
	if file, ok := mfs.files[dir]; !ok || !file.info.IsDir() {
		return nil, fmt.Errorf("failed to read directory: %w", notFound("readdir", dirPath))
	}

	prefix := strings.TrimSuffix(dir, "/") + "/"
	var result []FileInfo
	for p, file := range mfs.files {
		if rest, ok := strings.CutPrefix(p, prefix); ok && rest != "" && !strings.Contains(rest, "/") {
			result = append(result, file.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, ok := mfs.files[mfs.resolve(statPath)]
	if !ok {
		return nil, notFound("stat", statPath)
	}
	return file.info, nil
}
