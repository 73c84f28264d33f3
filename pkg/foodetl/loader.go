package foodetl

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Loader is the main interface for running the ETL pipeline.
// Implementations read the three raw datasets, transform them, append them to
// their tables and ensure the schema exists, in that fixed order.
type Loader interface {
	// Load runs the full pipeline. On error, appends that completed before the
	// failure remain committed; the returned report covers what was done.
	Load(ctx context.Context, config LoadConfig) (*LoadReport, error)
}

// SchemaEnsurer creates the relational schema without loading any data.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context, config LoadConfig) error
}

// DatasetReport summarizes one dataset's trip through the pipeline.
type DatasetReport struct {
	// Name is the dataset (and table) name: users, recipes or interactions.
	Name string

	// Source is the file the raw rows were read from.
	Source string

	// Checksum is the SHA-256 of the raw file content.
	Checksum string

	// RawRows is the number of data rows read from Source.
	RawRows int

	// CleanRows is the number of rows left after the transform.
	CleanRows int

	// AppendedRows is the number of rows storage accepted.
	AppendedRows int64
}

// Dropped returns how many raw rows the transform removed.
func (d DatasetReport) Dropped() int {
	return d.RawRows - d.CleanRows
}

// LoadReport is the outcome of one pipeline run.
type LoadReport struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Elapsed   time.Duration
	Datasets  []DatasetReport
}

// NewLoadReport starts a report for a new run.
func NewLoadReport(startedAt time.Time) *LoadReport {
	return &LoadReport{
		RunID:     uuid.New(),
		StartedAt: startedAt,
	}
}

// Dataset returns the report for name, if present.
func (r *LoadReport) Dataset(name string) (DatasetReport, bool) {
	for _, d := range r.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetReport{}, false
}
