package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"agencydash/internal/model"
	"agencydash/internal/repository"
)

// SettledAppPostgres is a PostgreSQL implementation of repository.SettledAppRepository.
type SettledAppPostgres struct {
	db *sql.DB
}

// NewSettledAppPostgres creates a new SettledAppPostgres repository.
func NewSettledAppPostgres(db *sql.DB) *SettledAppPostgres {
	return &SettledAppPostgres{db: db}
}

var _ repository.SettledAppRepository = (*SettledAppPostgres)(nil)

// FindDuplicateIDs returns ids of rows matching every business field of rec.
// IS NOT DISTINCT FROM makes NULL fields compare equal to NULL input.
func (r *SettledAppPostgres) FindDuplicateIDs(ctx context.Context, rec *model.SettledApp) ([]string, error) {
	const q = `
		SELECT id
		FROM settled_apps_details
		WHERE advisor_code IS NOT DISTINCT FROM $1
		  AND advisor_name IS NOT DISTINCT FROM $2
		  AND process_date IS NOT DISTINCT FROM $3
		  AND insured_name IS NOT DISTINCT FROM $4
		  AND policy_number IS NOT DISTINCT FROM $5
		  AND settled_apps IS NOT DISTINCT FROM $6
		  AND agency_credits IS NOT DISTINCT FROM $7
		  AND net_sales_credits IS NOT DISTINCT FROM $8
	`
	rows, err := r.db.QueryContext(ctx, q,
		rec.AdvisorCode,
		rec.AdvisorName,
		rec.ProcessDate,
		rec.InsuredName,
		rec.PolicyNumber,
		rec.SettledApps,
		rec.AgencyCredits,
		rec.NetSalesCredits,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByIDs removes all rows with the given ids. A missing id is not an error.
func (r *SettledAppPostgres) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	q := fmt.Sprintf(`DELETE FROM settled_apps_details WHERE id IN (%s)`, strings.Join(placeholders, ", "))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// Insert stores a fresh row; id and created_at come from column defaults.
func (r *SettledAppPostgres) Insert(ctx context.Context, rec *model.SettledApp) (*model.SettledApp, error) {
	const q = `
		INSERT INTO settled_apps_details
			(advisor_code, advisor_name, process_date, insured_name, policy_number,
			 settled_apps, agency_credits, net_sales_credits)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, advisor_code, advisor_name, process_date, insured_name, policy_number,
		          settled_apps, agency_credits, net_sales_credits, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.AdvisorCode,
		rec.AdvisorName,
		rec.ProcessDate,
		rec.InsuredName,
		rec.PolicyNumber,
		rec.SettledApps,
		rec.AgencyCredits,
		rec.NetSalesCredits,
	)
	var out model.SettledApp
	if err := row.Scan(
		&out.ID,
		&out.AdvisorCode,
		&out.AdvisorName,
		&out.ProcessDate,
		&out.InsuredName,
		&out.PolicyNumber,
		&out.SettledApps,
		&out.AgencyCredits,
		&out.NetSalesCredits,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
