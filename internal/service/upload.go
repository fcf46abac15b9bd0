package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"agencydash/internal/model"
	"agencydash/internal/repository"
	"agencydash/internal/sheet"
	"agencydash/internal/storage"
)

var (
	// ErrEmptyBatch is returned when an upload carries no records.
	ErrEmptyBatch = errors.New("upload batch is empty")
	// ErrWorkbookParse is returned when an uploaded workbook cannot be read at all.
	ErrWorkbookParse = errors.New("workbook could not be parsed")
)

// OutcomeKind tags what happened to a single record during an upload.
type OutcomeKind int

const (
	// OutcomeInserted means the record was new and stored directly.
	OutcomeInserted OutcomeKind = iota
	// OutcomeReplaced means one or more exact duplicates were removed before
	// the record was reinserted.
	OutcomeReplaced
	// OutcomeFailed means the record could not be processed; the batch continues.
	OutcomeFailed
)

// RecordOutcome is the per-record result of the settled-apps dedup loop.
type RecordOutcome struct {
	Kind    OutcomeKind
	Removed int
	Err     error
}

// UploadStats aggregates a batch. recordsProcessed always equals
// recordsInserted plus the number of failed records.
type UploadStats struct {
	RecordsProcessed  int `json:"recordsProcessed"`
	RecordsInserted   int `json:"recordsInserted"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	Errors            int `json:"errors"`
}

// UploadResult is the service-level DTO for a completed upload batch.
type UploadResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Stats      UploadStats `json:"stats"`
	Errors     []string    `json:"errors,omitempty"`
	ArchiveKey string      `json:"archive_key,omitempty"`
}

// UploadService handles the two bulk-upload datasets. Settled apps are
// deduplicated record by record in this process; fy commissions are handed to
// the database's upload_with_deduplication function as one batch.
type UploadService interface {
	UploadSettledApps(ctx context.Context, records []model.SettledApp) (*UploadResult, error)
	UploadFYCommissions(ctx context.Context, records []model.FYCommission) (*UploadResult, error)

	// UploadSettledAppsWorkbook archives the raw workbook to object storage,
	// parses its rows, and runs the same dedup pipeline.
	UploadSettledAppsWorkbook(ctx context.Context, r io.Reader, originalFilename string) (*UploadResult, error)
	UploadFYCommissionsWorkbook(ctx context.Context, r io.Reader, originalFilename string) (*UploadResult, error)
}

type uploadService struct {
	settledApps   repository.SettledAppRepository
	fyCommissions repository.FYCommissionRepository
	store         storage.Storage
}

// NewUploadService constructs a new UploadService.
func NewUploadService(settledApps repository.SettledAppRepository, fyCommissions repository.FYCommissionRepository, store storage.Storage) UploadService {
	return &uploadService{settledApps: settledApps, fyCommissions: fyCommissions, store: store}
}

// UploadSettledApps runs the manual dedup loop. A failing record is collected
// and never aborts the batch.
func (s *uploadService) UploadSettledApps(ctx context.Context, records []model.SettledApp) (*UploadResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}

	stats := UploadStats{RecordsProcessed: len(records)}
	errs := make([]string, 0)

	for i := range records {
		out := s.processSettledApp(ctx, &records[i])
		switch out.Kind {
		case OutcomeInserted:
			stats.RecordsInserted++
		case OutcomeReplaced:
			stats.RecordsInserted++
			stats.DuplicatesRemoved += out.Removed
		case OutcomeFailed:
			errs = append(errs, fmt.Sprintf("record %d (%s): %v", i+1, records[i].AdvisorCode, out.Err))
		}
	}

	stats.Errors = len(errs)
	return &UploadResult{
		Success: stats.Errors == 0,
		Message: batchMessage(stats),
		Stats:   stats,
		Errors:  errs,
	}, nil
}

// processSettledApp deduplicates one record: delete every row matching all
// business fields, then reinsert fresh. Zero matches means a plain insert.
func (s *uploadService) processSettledApp(ctx context.Context, rec *model.SettledApp) RecordOutcome {
	if rec.AdvisorCode == "" {
		return RecordOutcome{Kind: OutcomeFailed, Err: errors.New("advisor_code is required")}
	}

	ids, err := s.settledApps.FindDuplicateIDs(ctx, rec)
	if err != nil {
		return RecordOutcome{Kind: OutcomeFailed, Err: fmt.Errorf("find duplicates: %w", err)}
	}

	if len(ids) > 0 {
		if err := s.settledApps.DeleteByIDs(ctx, ids); err != nil {
			return RecordOutcome{Kind: OutcomeFailed, Err: fmt.Errorf("remove duplicates: %w", err)}
		}
	}

	if _, err := s.settledApps.Insert(ctx, rec); err != nil {
		return RecordOutcome{Kind: OutcomeFailed, Err: fmt.Errorf("insert: %w", err)}
	}

	if len(ids) > 0 {
		return RecordOutcome{Kind: OutcomeReplaced, Removed: len(ids)}
	}
	return RecordOutcome{Kind: OutcomeInserted}
}

// UploadFYCommissions sends the whole batch to the database function and
// trusts its structured response.
func (s *uploadService) UploadFYCommissions(ctx context.Context, records []model.FYCommission) (*UploadResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}

	res, err := s.fyCommissions.UploadWithDeduplication(ctx, records, model.FYCommissionDuplicateFields)
	if err != nil {
		return nil, fmt.Errorf("upload_with_deduplication: %w", err)
	}

	stats := UploadStats{
		RecordsProcessed:  len(records),
		RecordsInserted:   res.Inserted,
		DuplicatesRemoved: res.DuplicatesRemoved,
		Errors:            len(res.Errors),
	}
	return &UploadResult{
		Success: res.Success,
		Message: batchMessage(stats),
		Stats:   stats,
		Errors:  res.Errors,
	}, nil
}

// UploadSettledAppsWorkbook archives the workbook, parses it, and processes
// the parsed rows. A workbook that cannot be parsed at all rolls the archived
// object back.
func (s *uploadService) UploadSettledAppsWorkbook(ctx context.Context, r io.Reader, originalFilename string) (*UploadResult, error) {
	raw, key, err := s.archiveWorkbook(ctx, "settled-apps", r, originalFilename)
	if err != nil {
		return nil, err
	}

	records, rowErrs, err := sheet.ParseSettledApps(bytes.NewReader(raw))
	if err != nil {
		s.discardArchive(ctx, key)
		return nil, fmt.Errorf("%w: %v", ErrWorkbookParse, err)
	}
	if len(records) == 0 && len(rowErrs) == 0 {
		s.discardArchive(ctx, key)
		return nil, ErrEmptyBatch
	}

	result := emptyResultIfNoRecords(len(records) == 0)
	if result == nil {
		result, err = s.UploadSettledApps(ctx, records)
		if err != nil {
			return nil, err
		}
	}
	mergeRowErrors(result, rowErrs)
	result.ArchiveKey = key
	return result, nil
}

// UploadFYCommissionsWorkbook is the workbook variant of the fy-commission path.
func (s *uploadService) UploadFYCommissionsWorkbook(ctx context.Context, r io.Reader, originalFilename string) (*UploadResult, error) {
	raw, key, err := s.archiveWorkbook(ctx, "fy-commission", r, originalFilename)
	if err != nil {
		return nil, err
	}

	records, rowErrs, err := sheet.ParseFYCommissions(bytes.NewReader(raw))
	if err != nil {
		s.discardArchive(ctx, key)
		return nil, fmt.Errorf("%w: %v", ErrWorkbookParse, err)
	}
	if len(records) == 0 && len(rowErrs) == 0 {
		s.discardArchive(ctx, key)
		return nil, ErrEmptyBatch
	}

	result := emptyResultIfNoRecords(len(records) == 0)
	if result == nil {
		result, err = s.UploadFYCommissions(ctx, records)
		if err != nil {
			return nil, err
		}
	}
	mergeRowErrors(result, rowErrs)
	result.ArchiveKey = key
	return result, nil
}

// archiveWorkbook buffers the upload and stores the raw bytes under
// uploads/<dataset>/<uuid><ext> before any parsing happens.
func (s *uploadService) archiveWorkbook(ctx context.Context, dataset string, r io.Reader, originalFilename string) ([]byte, string, error) {
	if r == nil {
		return nil, "", errors.New("reader is nil")
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if len(raw) == 0 {
		return nil, "", ErrEmptyBatch
	}

	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".xlsx"
	}
	key := filepath.ToSlash(filepath.Join("uploads", dataset, uuid.New().String()+ext))

	_, err = s.store.Put(ctx, key, bytes.NewReader(raw), storage.PutObjectOptions{
		Size:        int64(len(raw)),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("archive workbook: %w", err)
	}
	return raw, key, nil
}

func (s *uploadService) discardArchive(ctx context.Context, key string) {
	// Rollback is best effort; the parse error is what the caller needs.
	_ = s.store.Delete(ctx, key)
}

// emptyResultIfNoRecords covers a workbook where every row failed parsing:
// there is no batch to process, but the row errors still must be reported.
func emptyResultIfNoRecords(empty bool) *UploadResult {
	if !empty {
		return nil
	}
	return &UploadResult{Success: false, Errors: make([]string, 0)}
}

func mergeRowErrors(result *UploadResult, rowErrs []string) {
	if len(rowErrs) == 0 {
		return
	}
	result.Errors = append(rowErrs, result.Errors...)
	result.Stats.Errors = len(result.Errors)
	result.Success = false
	result.Message = batchMessage(result.Stats)
}

func batchMessage(stats UploadStats) string {
	if stats.Errors > 0 {
		return fmt.Sprintf("Processed %d records: %d inserted, %d duplicates removed, %d errors",
			stats.RecordsProcessed, stats.RecordsInserted, stats.DuplicatesRemoved, stats.Errors)
	}
	return fmt.Sprintf("Processed %d records: %d inserted, %d duplicates removed",
		stats.RecordsProcessed, stats.RecordsInserted, stats.DuplicatesRemoved)
}
