package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"agencydash/internal/model"
	"agencydash/internal/repository"
)

const fyCommissionTable = "fy_commission_details"

// FYCommissionPostgres is a PostgreSQL implementation of repository.FYCommissionRepository.
// The whole batch travels to the database in one call; deduplication runs
// inside the upload_with_deduplication function.
type FYCommissionPostgres struct {
	db *sql.DB
}

// NewFYCommissionPostgres creates a new FYCommissionPostgres repository.
func NewFYCommissionPostgres(db *sql.DB) *FYCommissionPostgres {
	return &FYCommissionPostgres{db: db}
}

var _ repository.FYCommissionRepository = (*FYCommissionPostgres)(nil)

// UploadWithDeduplication calls the database function and decodes its jsonb result.
func (r *FYCommissionPostgres) UploadWithDeduplication(ctx context.Context, records []model.FYCommission, duplicateFields []string) (*repository.DedupResult, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}

	const q = `SELECT upload_with_deduplication($1, $2::jsonb, $3::text[])`
	var raw []byte
	if err := r.db.QueryRowContext(ctx, q,
		fyCommissionTable,
		string(payload),
		textArrayLiteral(duplicateFields),
	).Scan(&raw); err != nil {
		return nil, err
	}

	var res repository.DedupResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode dedup result: %w", err)
	}
	return &res, nil
}
