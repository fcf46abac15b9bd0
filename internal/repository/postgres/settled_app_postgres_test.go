package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"agencydash/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func nullDec(s string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(s)
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func TestSettledAppPostgres_FindDuplicateIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSettledAppPostgres(db)
	ctx := context.Background()

	rec := &model.SettledApp{
		AdvisorCode:  "A1",
		AdvisorName:  strPtr("Juan Dela Cruz"),
		PolicyNumber: strPtr("P-1001"),
		SettledApps:  nullDec("2"),
	}

	t.Run("matches found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id"}).
			AddRow("id-1").
			AddRow("id-2")

		mock.ExpectQuery("SELECT id FROM settled_apps_details").
			WillReturnRows(rows)

		ids, err := repo.FindDuplicateIDs(ctx, rec)

		assert.NoError(t, err)
		assert.Equal(t, []string{"id-1", "id-2"}, ids)
	})

	t.Run("no matches", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM settled_apps_details").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ids, err := repo.FindDuplicateIDs(ctx, rec)

		assert.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM settled_apps_details").
			WillReturnError(errors.New("boom"))

		ids, err := repo.FindDuplicateIDs(ctx, rec)

		assert.Error(t, err)
		assert.Nil(t, ids)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettledAppPostgres_DeleteByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSettledAppPostgres(db)
	ctx := context.Background()

	t.Run("deletes all ids", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM settled_apps_details WHERE id IN \(\$1, \$2\)`).
			WithArgs("id-1", "id-2").
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.DeleteByIDs(ctx, []string{"id-1", "id-2"})
		assert.NoError(t, err)
	})

	t.Run("empty slice is a no-op", func(t *testing.T) {
		err := repo.DeleteByIDs(ctx, nil)
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettledAppPostgres_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSettledAppPostgres(db)
	ctx := context.Background()

	rec := &model.SettledApp{
		AdvisorCode:   "A1",
		AdvisorName:   strPtr("Juan Dela Cruz"),
		ProcessDate:   strPtr("2025-06-15"),
		SettledApps:   nullDec("2"),
		AgencyCredits: nullDec("1500.50"),
	}

	t.Run("returns stored row with generated id", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "advisor_code", "advisor_name", "process_date", "insured_name",
			"policy_number", "settled_apps", "agency_credits", "net_sales_credits", "created_at",
		}).AddRow("gen-id", "A1", "Juan Dela Cruz", "2025-06-15", nil, nil, "2", "1500.5", nil, time.Now().UTC())

		mock.ExpectQuery("INSERT INTO settled_apps_details").
			WillReturnRows(rows)

		out, err := repo.Insert(ctx, rec)

		require.NoError(t, err)
		assert.Equal(t, "gen-id", out.ID)
		assert.Equal(t, "A1", out.AdvisorCode)
		// optional fields absent from input stay NULL, not empty string
		assert.Nil(t, out.InsuredName)
		assert.False(t, out.NetSalesCredits.Valid)
		assert.True(t, out.SettledApps.Valid)
		assert.Equal(t, "2", out.SettledApps.Decimal.String())
	})

	t.Run("insert error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO settled_apps_details").
			WillReturnError(errors.New("constraint violation"))

		out, err := repo.Insert(ctx, rec)

		assert.Error(t, err)
		assert.Nil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
