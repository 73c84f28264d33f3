// Package frame holds a raw dataset in memory as named columns of nullable
// text cells, together with the cleaning operations the transforms need:
// column renaming and dropping, null and duplicate row removal, stable numeric
// sorting and per-row derivation of new columns.
//
// Cells stay text until the model package decodes them; ParseInt, ParseFloat
// and ParseDate are the shared coercion rules.
//
// A Frame is owned by one goroutine at a time and is NOT safe for concurrent use.
package frame
