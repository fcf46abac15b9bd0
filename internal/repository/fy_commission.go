package repository

import (
	"context"

	"agencydash/internal/model"
)

// DedupResult is the structured response of the upload_with_deduplication
// database function.
type DedupResult struct {
	Success           bool     `json:"success"`
	Inserted          int      `json:"inserted"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	Errors            []string `json:"errors"`
}

// FYCommissionRepository defines data access for first-year-commission rows.
// Deduplication is delegated to the database in a single call carrying the
// whole batch.
type FYCommissionRepository interface {
	// UploadWithDeduplication sends the batch to the upload_with_deduplication
	// function along with the column set that defines duplication, and returns
	// its structured result.
	UploadWithDeduplication(ctx context.Context, records []model.FYCommission, duplicateFields []string) (*DedupResult, error)
}
