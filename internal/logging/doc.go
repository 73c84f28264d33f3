// Package logging provides implementations of the foodetl.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes formatted lines to stderr (or any io.Writer)
//   - MemoryLogger: keeps every line in memory, for assertions in tests
//   - NullLogger: discards all messages
//
// All implementations are safe for concurrent use by multiple goroutines.
package logging
