package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseSettledApps(t *testing.T) {
	t.Run("maps columns by header name", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			{"Advisor Code", "Advisor Name", "Process Date", "Settled Apps", "Agency Credits"},
			{"A1", "Juan Dela Cruz", "2025-06-15", "2", "1,500.50"},
			{"A2", "", "2025-06-16", "", ""},
		})

		records, rowErrs, err := ParseSettledApps(buf)

		require.NoError(t, err)
		assert.Empty(t, rowErrs)
		require.Len(t, records, 2)

		assert.Equal(t, "A1", records[0].AdvisorCode)
		assert.Equal(t, "Juan Dela Cruz", *records[0].AdvisorName)
		assert.True(t, records[0].SettledApps.Valid)
		assert.Equal(t, "1500.5", records[0].AgencyCredits.Decimal.String())

		// empty cells become nil/invalid, never empty strings
		assert.Nil(t, records[1].AdvisorName)
		assert.False(t, records[1].SettledApps.Valid)
	})

	t.Run("collects bad rows without aborting", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			{"advisor_code", "settled_apps"},
			{"A1", "not-a-number"},
			{"", "3"},
			{"A3", "3"},
		})

		records, rowErrs, err := ParseSettledApps(buf)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "A3", records[0].AdvisorCode)
		require.Len(t, rowErrs, 2)
		assert.Contains(t, rowErrs[0], "row 2")
		assert.Contains(t, rowErrs[1], "row 3: advisor_code is required")
	})

	t.Run("skips blank rows", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			{"advisor_code"},
			{""},
			{"A1"},
		})

		records, rowErrs, err := ParseSettledApps(buf)

		require.NoError(t, err)
		assert.Empty(t, rowErrs)
		assert.Len(t, records, 1)
	})

	t.Run("missing required column", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			{"advisor_name"},
			{"Juan"},
		})

		_, _, err := ParseSettledApps(buf)
		assert.ErrorContains(t, err, "advisor_code")
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, _, err := ParseSettledApps(strings.NewReader("definitely not xlsx"))
		assert.Error(t, err)
	})
}

func TestParseFYCommissions(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Code", "Policy Number", "Transaction Type", "FY Premium PHP", "Rate", "FY Commission PHP"},
		{"C1", "P-2001", "NB", "12,000", "0.45", "5400"},
		{"", "P-2002", "NB", "100", "0.45", "45"},
	})

	records, rowErrs, err := ParseFYCommissions(buf)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "C1", records[0].Code)
	assert.Equal(t, "12000", records[0].FYPremiumPHP.Decimal.String())
	assert.Equal(t, "0.45", records[0].Rate.Decimal.String())
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0], "code is required")
}
