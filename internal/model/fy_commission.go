package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FYCommission is one first-year-commission detail row. Deduplication for
// this dataset happens server-side in upload_with_deduplication, keyed on
// FYCommissionDuplicateFields.
type FYCommission struct {
	ID              string              `json:"id,omitempty"`
	Code            string              `json:"code"`
	ProcessDate     *string             `json:"process_date"`
	InsuredName     *string             `json:"insured_name"`
	PolicyNumber    *string             `json:"policy_number"`
	TransactionType *string             `json:"transaction_type"`
	FYPremiumPHP    decimal.NullDecimal `json:"fy_premium_php"`
	DueDate         *string             `json:"due_date"`
	Rate            decimal.NullDecimal `json:"rate"`
	FYCommissionPHP decimal.NullDecimal `json:"fy_commission_php"`
	CreatedAt       time.Time           `json:"created_at,omitempty"`
}

// FYCommissionDuplicateFields is the column set whose equality defines "same
// record" for the fy_commission_details dataset. Surrogate id/created_at are
// deliberately excluded.
var FYCommissionDuplicateFields = []string{
	"code",
	"process_date",
	"insured_name",
	"policy_number",
	"transaction_type",
	"fy_premium_php",
	"due_date",
	"rate",
	"fy_commission_php",
}
