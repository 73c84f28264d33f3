// Package transform implements the per-dataset cleaning and derivation steps
// applied between reading a raw CSV and appending it to storage.
//
// Each transform works on a copy of its input; the raw frame is never modified.
package transform

import (
	"fmt"
	"time"

	"github.com/vvka-141/foodetl/internal/frame"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// Result is a transformed dataset plus what the cleaning steps removed.
type Result struct {
	Frame *frame.Frame

	// NullRows is the number of rows dropped for containing a null cell.
	NullRows int

	// DuplicateRows is the number of exact duplicates dropped.
	DuplicateRows int
}

// Func is the shape shared by the dataset transforms. now is captured once
// per run so every derived timestamp agrees.
type Func func(raw *frame.Frame, now time.Time) (*Result, error)

// clean drops null rows and then duplicate rows from a copy of raw.
func clean(raw *frame.Frame) *Result {
	f := raw.Clone()
	nulls := f.DropNulls()
	dups := f.DropDuplicates()
	return &Result{Frame: f, NullRows: nulls, DuplicateRows: dups}
}

func failed(dataset, step string, err error) error {
	return fmt.Errorf("%s: %s: %w: %w", dataset, step, foodetl.ErrTransformFailed, err)
}
