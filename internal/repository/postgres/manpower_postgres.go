package postgres

import (
	"context"
	"database/sql"

	"agencydash/internal/model"
	"agencydash/internal/repository"
)

// ManpowerPostgres is a PostgreSQL implementation of repository.ManpowerRepository.
type ManpowerPostgres struct {
	db *sql.DB
}

// NewManpowerPostgres creates a new ManpowerPostgres repository.
func NewManpowerPostgres(db *sql.DB) *ManpowerPostgres {
	return &ManpowerPostgres{db: db}
}

var _ repository.ManpowerRepository = (*ManpowerPostgres)(nil)

// ListAll returns every roster row ordered by advisor name.
func (r *ManpowerPostgres) ListAll(ctx context.Context) ([]model.ManpowerRecord, error) {
	const q = `
		SELECT id, advisor_code, advisor_name, team_name, class, unit_code, status, contract_date, created_at
		FROM manpower
		ORDER BY advisor_name ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ManpowerRecord, 0)
	for rows.Next() {
		var m model.ManpowerRecord
		if err := rows.Scan(
			&m.ID,
			&m.AdvisorCode,
			&m.AdvisorName,
			&m.TeamName,
			&m.Class,
			&m.UnitCode,
			&m.Status,
			&m.ContractDate,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
