// Package filesystem abstracts the reads the pipeline performs on its data
// directory so tests can supply CSV fixtures from memory.
//
//   - OSFileSystem reads from disk.
//   - MemoryFileSystem holds files in a map rooted at a virtual directory.
//
// Both report missing paths with errors that match fs.ErrNotExist.
package filesystem
