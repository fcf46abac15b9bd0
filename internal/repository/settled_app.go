package repository

import (
	"context"

	"agencydash/internal/model"
)

// SettledAppRepository defines data access for settled-application detail rows.
// Duplicate matching compares every business field NULL-safely; the surrogate
// id and created_at columns never participate.
type SettledAppRepository interface {
	// FindDuplicateIDs returns the ids of all rows whose business fields match
	// the given record exactly. Normally zero or one row, but the store is not
	// limited to one.
	FindDuplicateIDs(ctx context.Context, rec *model.SettledApp) ([]string, error)

	// DeleteByIDs removes the rows with the given ids. A missing id is not an error.
	DeleteByIDs(ctx context.Context, ids []string) error

	// Insert stores a fresh row and returns it with its generated id.
	Insert(ctx context.Context, rec *model.SettledApp) (*model.SettledApp, error)
}
