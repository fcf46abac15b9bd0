package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"agencydash/internal/model"
)

// Package sheet maps uploaded XLSX workbooks to upload records. Column order
// is not assumed; the first row is read as headers and matched by normalized
// name. A bad row is reported with its row number and skipped, never aborting
// the sheet.

// ParseSettledApps reads the first worksheet into settled-app records.
// Returns the parsed records plus per-row error strings.
func ParseSettledApps(r io.Reader) ([]model.SettledApp, []string, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("workbook has no rows")
	}

	idx := headerIndex(rows[0])
	if _, ok := idx["advisor_code"]; !ok {
		return nil, nil, fmt.Errorf("missing required column %q", "advisor_code")
	}

	records := make([]model.SettledApp, 0, len(rows)-1)
	rowErrs := make([]string, 0)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header row
		if blankRow(row) {
			continue
		}

		rec := model.SettledApp{
			AdvisorCode:  cell(row, idx, "advisor_code"),
			AdvisorName:  optCell(row, idx, "advisor_name"),
			ProcessDate:  optCell(row, idx, "process_date"),
			InsuredName:  optCell(row, idx, "insured_name"),
			PolicyNumber: optCell(row, idx, "policy_number"),
		}
		if rec.AdvisorCode == "" {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: advisor_code is required", rowNum))
			continue
		}

		var decErr error
		rec.SettledApps, decErr = optDecimal(row, idx, "settled_apps")
		if decErr == nil {
			rec.AgencyCredits, decErr = optDecimal(row, idx, "agency_credits")
		}
		if decErr == nil {
			rec.NetSalesCredits, decErr = optDecimal(row, idx, "net_sales_credits")
		}
		if decErr != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", rowNum, decErr))
			continue
		}

		records = append(records, rec)
	}

	return records, rowErrs, nil
}

// ParseFYCommissions reads the first worksheet into fy-commission records.
func ParseFYCommissions(r io.Reader) ([]model.FYCommission, []string, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("workbook has no rows")
	}

	idx := headerIndex(rows[0])
	if _, ok := idx["code"]; !ok {
		return nil, nil, fmt.Errorf("missing required column %q", "code")
	}

	records := make([]model.FYCommission, 0, len(rows)-1)
	rowErrs := make([]string, 0)

	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}

		rec := model.FYCommission{
			Code:            cell(row, idx, "code"),
			ProcessDate:     optCell(row, idx, "process_date"),
			InsuredName:     optCell(row, idx, "insured_name"),
			PolicyNumber:    optCell(row, idx, "policy_number"),
			TransactionType: optCell(row, idx, "transaction_type"),
			DueDate:         optCell(row, idx, "due_date"),
		}
		if rec.Code == "" {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: code is required", rowNum))
			continue
		}

		var decErr error
		rec.FYPremiumPHP, decErr = optDecimal(row, idx, "fy_premium_php")
		if decErr == nil {
			rec.Rate, decErr = optDecimal(row, idx, "rate")
		}
		if decErr == nil {
			rec.FYCommissionPHP, decErr = optDecimal(row, idx, "fy_commission_php")
		}
		if decErr != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", rowNum, decErr))
			continue
		}

		records = append(records, rec)
	}

	return records, rowErrs, nil
}

func firstSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// headerIndex maps normalized header names to column positions.
// "Advisor Code" and "advisor_code" resolve to the same key.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if key != "" {
			idx[key] = i
		}
	}
	return idx
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// optCell returns nil for absent or empty cells so they persist as SQL NULL.
func optCell(row []string, idx map[string]int, name string) *string {
	v := cell(row, idx, name)
	if v == "" {
		return nil
	}
	return &v
}

func optDecimal(row []string, idx map[string]int, name string) (decimal.NullDecimal, error) {
	v := cell(row, idx, name)
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	// Spreadsheets often format money with separators.
	v = strings.ReplaceAll(v, ",", "")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("column %s: invalid number %q", name, v)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
