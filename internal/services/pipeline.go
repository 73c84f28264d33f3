package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/foodetl/internal/checksum"
	"github.com/vvka-141/foodetl/internal/files/filesystem"
	"github.com/vvka-141/foodetl/internal/frame"
	"github.com/vvka-141/foodetl/internal/schema"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// PipelineService implements foodetl.Loader and foodetl.SchemaEnsurer.
//
// Thread-Safety: a PipelineService holds no per-run state; concurrent runs
// against the same tables are not coordinated.
type PipelineService struct {
	sessions foodetl.SessionPreparer
	files    filesystem.FileSystemProvider
	checksum checksum.Calculator
	logger   foodetl.Logger
	now      func() time.Time
}

// NewPipelineService panics if any dependency is nil.
func NewPipelineService(
	sessions foodetl.SessionPreparer,
	files filesystem.FileSystemProvider,
	calculator checksum.Calculator,
	logger foodetl.Logger,
) *PipelineService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if files == nil {
		panic("files cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PipelineService{
		sessions: sessions,
		files:    files,
		checksum: calculator,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock returns a copy that reads the current time from now. The time
// of a run decides every derived age and last_modified value.
func (s *PipelineService) WithClock(now func() time.Time) *PipelineService {
	clone := *s
	clone.now = now
	return &clone
}

// Load runs the whole pipeline. The returned report is non-nil whenever the
// configuration was valid, and on failure records what completed. Elapsed is
// set on every return path.
func (s *PipelineService) Load(ctx context.Context, config foodetl.LoadConfig) (*foodetl.LoadReport, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	started := s.now()
	report := foodetl.NewLoadReport(started)
	defer func() { report.Elapsed = s.now().Sub(started) }()
	s.logger.Info("Run %s: loading %s into database '%s'", report.RunID, config.DataDir, config.Connection.Database)

	inputs := config.Inputs.Resolve(config.DataDir)
	if err := s.checkInputs(inputs); err != nil {
		return report, err
	}

	session, err := s.sessions.PrepareSession(ctx, config.Connection)
	if err != nil {
		return report, err
	}
	defer session.Close()

	if err := s.load(ctx, session.Conn(), inputs, started, report); err != nil {
		return report, err
	}

	s.logger.Info("✓ Run %s completed in %v", report.RunID, s.now().Sub(started).Round(time.Millisecond))
	return report, nil
}

// Inspect reads, transforms and decodes the inputs without touching a
// database. AppendedRows stays zero.
func (s *PipelineService) Inspect(ctx context.Context, config foodetl.LoadConfig) (*foodetl.LoadReport, error) {
	if config.DataDir == "" {
		return nil, fmt.Errorf("DataDir is required: %w", foodetl.ErrInvalidConfig)
	}

	started := s.now()
	report := foodetl.NewLoadReport(started)
	defer func() { report.Elapsed = s.now().Sub(started) }()
	s.logger.Info("Run %s: inspecting %s", report.RunID, config.DataDir)

	inputs := config.Inputs.Resolve(config.DataDir)
	if err := s.checkInputs(inputs); err != nil {
		return report, err
	}

	_, err := s.stage(ctx, inputs, started, report)
	return report, err
}

// EnsureSchema creates the missing tables without loading data.
func (s *PipelineService) EnsureSchema(ctx context.Context, config foodetl.LoadConfig) error {
	if config.Connection == nil {
		return fmt.Errorf("Connection is required: %w", foodetl.ErrInvalidConfig)
	}

	session, err := s.sessions.PrepareSession(ctx, config.Connection)
	if err != nil {
		return err
	}
	defer session.Close()

	return s.ensure(ctx, session.Conn())
}

func (s *PipelineService) load(ctx context.Context, conn foodetl.DBConnection, inputs foodetl.Inputs, now time.Time, report *foodetl.LoadReport) error {
	sets, err := s.stage(ctx, inputs, now, report)
	if err != nil {
		return err
	}

	for i, st := range sets {
		name := st.table.Name
		s.logger.Verbose("Appending %d rows to %s", st.report.CleanRows, name)

		n, err := st.batch.append(ctx, conn)
		if err != nil {
			return err
		}
		report.Datasets[i].AppendedRows = n
		s.logger.Info("✓ Appended %d rows to %s", n, name)
	}

	return s.ensure(ctx, conn)
}

func (s *PipelineService) ensure(ctx context.Context, conn foodetl.DBConnection) error {
	s.logger.Verbose("Ensuring schema")
	if err := schema.Ensure(ctx, conn); err != nil {
		return err
	}

	names := make([]string, 0, len(schema.All()))
	for _, t := range schema.All() {
		names = append(names, t.Name)
	}
	s.logger.Info("✓ Schema ensured (%s)", strings.Join(names, ", "))
	return nil
}

// stage reads every input, then transforms and decodes every dataset, so a
// bad file fails the run before anything is appended. Reports are added to
// report as datasets are read.
func (s *PipelineService) stage(ctx context.Context, inputs foodetl.Inputs, now time.Time, report *foodetl.LoadReport) ([]staged, error) {
	raws := make([]*frame.Frame, len(datasets))
	for i, ds := range datasets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, dr, err := s.read(ds, ds.path(inputs))
		if err != nil {
			return nil, err
		}
		raws[i] = raw
		report.Datasets = append(report.Datasets, dr)
	}

	sets := make([]staged, len(datasets))
	for i, ds := range datasets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := s.transform(ds, raws[i], now, report.Datasets[i])
		if err != nil {
			return nil, err
		}
		report.Datasets[i] = st.report
		sets[i] = st
	}
	return sets, nil
}

func (s *PipelineService) read(ds dataset, path string) (*frame.Frame, foodetl.DatasetReport, error) {
	name := ds.table.Name
	s.logger.Verbose("Reading %s from %s", name, path)

	content, err := s.files.ReadFile(path)
	if err != nil {
		return nil, foodetl.DatasetReport{}, fmt.Errorf("%w: read %s: %w", foodetl.ErrInputNotFound, path, err)
	}

	dr := foodetl.DatasetReport{
		Name:     name,
		Source:   path,
		Checksum: s.checksum.CalculateRaw(content),
	}
	s.logger.Verbose("%s: sha256 %s (normalized %s)", name, dr.Checksum, s.checksum.CalculateNormalized(content))

	raw, err := frame.ReadCSV(bytes.NewReader(content))
	if err != nil {
		return nil, foodetl.DatasetReport{}, fmt.Errorf("%w: %s: %w", foodetl.ErrMalformedInput, path, err)
	}
	dr.RawRows = raw.Len()
	s.logger.Info("Read %d %s rows", dr.RawRows, name)
	return raw, dr, nil
}

func (s *PipelineService) transform(ds dataset, raw *frame.Frame, now time.Time, dr foodetl.DatasetReport) (staged, error) {
	name := ds.table.Name

	res, err := ds.transform(raw, now)
	if err != nil {
		return staged{}, err
	}
	dr.CleanRows = res.Frame.Len()
	s.logger.Verbose("%s: dropped %d rows with nulls and %d duplicates", name, res.NullRows, res.DuplicateRows)

	if ignored := ds.table.Unmapped(res.Frame.Columns()); len(ignored) > 0 {
		s.logger.Verbose("%s: not stored: %s", name, strings.Join(ignored, ", "))
	}

	b, err := ds.decode(ds.table, res.Frame)
	if err != nil {
		return staged{}, err
	}

	s.logger.Info("Transformed %s: %d of %d rows kept", name, dr.CleanRows, dr.RawRows)
	return staged{dataset: ds, report: dr, batch: b}, nil
}

// checkInputs fails fast when an input file is missing, before any
// connection is opened.
func (s *PipelineService) checkInputs(inputs foodetl.Inputs) error {
	var missing []error
	for _, ds := range datasets {
		path := ds.path(inputs)
		info, err := s.files.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, fmt.Errorf("%w: %s", foodetl.ErrInputNotFound, path))
		case err != nil:
			missing = append(missing, fmt.Errorf("%w: %s: %w", foodetl.ErrInputNotFound, path, err))
		case info.IsDir():
			missing = append(missing, fmt.Errorf("%w: %s is a directory", foodetl.ErrInputNotFound, path))
		}
	}
	if len(missing) > 0 {
		s.logCSVFiles(filepath.Dir(datasets[0].path(inputs)))
	}
	return errors.Join(missing...)
}

// logCSVFiles lists the CSV files present in dir, which is usually enough to
// spot a misnamed input.
func (s *PipelineService) logCSVFiles(dir string) {
	entries, err := s.files.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		s.logger.Info("No CSV files found in %s", dir)
		return
	}
	s.logger.Info("CSV files in %s: %s", dir, strings.Join(names, ", "))
}
