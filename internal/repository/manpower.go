package repository

import (
	"context"

	"agencydash/internal/model"
)

// ManpowerRepository defines read-only access to the advisor/manager roster.
type ManpowerRepository interface {
	// ListAll returns every visible roster row ordered by advisor name.
	// Row-level visibility is the database's concern, not this layer's.
	ListAll(ctx context.Context) ([]model.ManpowerRecord, error)
}
