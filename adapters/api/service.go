package api

import (
	"context"
	"fmt"

	"meterrecon/adapters/excel"
	"meterrecon/domain/recon"
	"meterrecon/internal"
	"meterrecon/internal/config"
	"meterrecon/internal/errors"
	"meterrecon/internal/reconcile"
	"meterrecon/internal/schema"
	"meterrecon/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates the two reconciliation operations. All working state
// is request-scoped; a Service instance is safe for concurrent requests.
type Service struct {
	cfg      *config.Config
	logger   *internal.Logger
	detector *schema.Detector
	runs     ports.RunRepository
}

// NewService wires the service with its detector and optional run history.
// A nil runs repository disables history.
func NewService(cfg *config.Config, logger *internal.Logger, runs ports.RunRepository) *Service {
	detector := schema.NewDetector()
	detector.ScanLimit = cfg.Detect.HeaderScanLimit
	detector.Trace = logger.TraceFunc()
	return &Service{cfg: cfg, logger: logger, detector: detector, runs: runs}
}

// FilePayload is one uploaded input file.
type FilePayload struct {
	Name string
	Data []byte
}

// DiffResult carries the rendered diff workbook plus summary metadata.
type DiffResult struct {
	Workbook     []byte
	SummaryRange string
	Rows         int
}

// MergeResult carries the rendered merge workbook plus the columns the join
// actually used, so callers can verify what the heuristics picked.
type MergeResult struct {
	Workbook    []byte
	Rows        int
	JoinColumn  string
	UsageColumn string
}

// Diff aggregates per-meter totals from two files and reports deltas. A file
// whose schema cannot be detected contributes an empty aggregate rather than
// failing the request; the output may legitimately be empty.
func (s *Service) Diff(ctx context.Context, file1, file2 FilePayload) (*DiffResult, error) {
	wb1, wb2, err := s.decodeBoth(ctx, file1, file2)
	if err != nil {
		return nil, err
	}

	table1 := s.detectOrEmpty(wb1, file1.Name)
	table2 := s.detectOrEmpty(wb2, file2.Name)

	agg1 := reconcile.Fold(table1)
	agg2 := reconcile.Fold(table2)
	rows := reconcile.Diff(agg1, agg2)

	range1 := reconcile.DateRange(agg1.Dates)
	range2 := reconcile.DateRange(agg2.Dates)
	grid := reconcile.DiffReportGrid(rows, reconcile.CombinedRange(range1, range2))

	workbook, err := excel.Encode(grid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render diff report")
	}

	summary := diffSummary(rows)
	s.logger.Info("[Diff] %s vs %s: %s", file1.Name, file2.Name, summary)
	s.recordRun(ctx, recon.ModeDiff, file1.Name, file2.Name, len(rows), len(rows), summary)

	return &DiffResult{
		Workbook:     workbook,
		SummaryRange: reconcile.TransportRange(range1, range2),
		Rows:         len(rows),
	}, nil
}

// Merge joins a readings file with a usage-point mapping file by meter
// identifier. Overrides, when non-empty, name the usage-point and join
// columns explicitly and bypass detection for this invocation only.
func (s *Service) Merge(ctx context.Context, readings, mapping FilePayload, usageOverride, joinOverride string) (*MergeResult, error) {
	readingsWb, mappingWb, err := s.decodeBoth(ctx, readings, mapping)
	if err != nil {
		return nil, err
	}

	usageColumn := usageOverride
	if usageColumn == "" {
		detected, found := schema.FindUsagePointColumn(mappingWb.Headers)
		if !found {
			return nil, recon.NewSchemaError(
				"could not detect the usage point column in the mapping file",
				mappingWb.Headers, mappingWb.SampleRow(),
			)
		}
		usageColumn = detected
	}

	joinReadings := joinOverride
	if joinReadings == "" {
		joinReadings = schema.FindJoinColumn(readingsWb.Headers)
	}
	joinMapping := joinOverride
	if joinMapping == "" {
		joinMapping = schema.FindJoinColumn(mappingWb.Headers)
	}
	if joinReadings == "" || joinMapping == "" {
		return nil, recon.NewSchemaError(
			"could not resolve a join column",
			readingsWb.Headers, readingsWb.SampleRow(),
		)
	}

	lookup := reconcile.BuildLookup(mappingWb.Rows, joinMapping, usageColumn)
	joined := reconcile.Join(readingsWb.Rows, joinReadings, lookup)
	grid := reconcile.MergeReportGrid(readingsWb.Headers, joined)

	workbook, err := excel.Encode(grid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render merge report")
	}

	summary := fmt.Sprintf("rows=%d join=%q usage=%q mapped=%d", len(joined), joinReadings, usageColumn, len(lookup))
	s.logger.Info("[Merge] %s with %s: %s", readings.Name, mapping.Name, summary)
	s.recordRun(ctx, recon.ModeMerge, readings.Name, mapping.Name, len(joined), len(lookup), summary)

	return &MergeResult{
		Workbook:    workbook,
		Rows:        len(joined),
		JoinColumn:  joinReadings,
		UsageColumn: usageColumn,
	}, nil
}

// RecentRuns returns the latest run history entries, newest first. Without a
// configured repository the list is empty.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]*recon.RunRecord, error) {
	if s.runs == nil {
		return []*recon.RunRecord{}, nil
	}
	return s.runs.ListRecent(ctx, limit)
}

// decodeBoth validates and decodes the two input payloads concurrently. This
// is the only parallel section of a request; everything downstream is
// sequential and request-local.
func (s *Service) decodeBoth(ctx context.Context, file1, file2 FilePayload) (*excel.Workbook, *excel.Workbook, error) {
	if len(file1.Data) == 0 || len(file2.Data) == 0 {
		return nil, nil, errors.InvalidInput("both input files are required")
	}
	var wb1, wb2 *excel.Workbook
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		wb, err := excel.Decode(file1.Data)
		if err != nil {
			return errors.WorkbookInvalid(err)
		}
		wb1 = wb
		return nil
	})
	g.Go(func() error {
		wb, err := excel.Decode(file2.Data)
		if err != nil {
			return errors.WorkbookInvalid(err)
		}
		wb2 = wb
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return wb1, wb2, nil
}

// detectOrEmpty runs schema detection and degrades to an empty table on
// failure, which diff mode tolerates.
func (s *Service) detectOrEmpty(wb *excel.Workbook, name string) *recon.Table {
	table, ok := s.detector.Detect(wb.Source())
	if !ok {
		s.logger.Warn("[Diff] no schema detected in %q, treating file as empty", name)
		return nil
	}
	return table
}

// diffSummary condenses a diff result for logs and the run record.
func diffSummary(rows []recon.DiffRow) string {
	values1 := make([]float64, len(rows))
	values2 := make([]float64, len(rows))
	for i, r := range rows {
		values1[i] = r.Value1
		values2[i] = r.Value2
	}
	total1, _ := stats.Sum(values1)
	total2, _ := stats.Sum(values2)
	return fmt.Sprintf("meters=%d total_file1=%.3f total_file2=%.3f delta=%.3f",
		len(rows), total1, total2, total2-total1)
}

// recordRun persists a run record when history is enabled. Failures are
// logged, never surfaced: history must not break a successful reconciliation.
func (s *Service) recordRun(ctx context.Context, mode recon.Mode, file1, file2 string, rowCount, meterCount int, summary string) {
	if s.runs == nil {
		return
	}
	rec := recon.NewRunRecord(mode, file1, file2)
	rec.RowCount = rowCount
	rec.MeterCount = meterCount
	rec.Summary = summary
	if err := s.runs.Create(ctx, rec); err != nil {
		s.logger.Warn("[RunHistory] failed to persist run %s: %v", rec.ID, err)
	}
}
