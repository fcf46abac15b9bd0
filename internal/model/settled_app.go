package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettledApp is one settled-application detail row. Optional fields are
// pointers or NullDecimal so that absent input is stored as SQL NULL,
// never as an empty string or zero.
//
// ID and CreatedAt are surrogate columns; every other field is a business
// field and participates in duplicate matching.
type SettledApp struct {
	ID              string              `json:"id,omitempty"`
	AdvisorCode     string              `json:"advisor_code"`
	AdvisorName     *string             `json:"advisor_name"`
	ProcessDate     *string             `json:"process_date"`
	InsuredName     *string             `json:"insured_name"`
	PolicyNumber    *string             `json:"policy_number"`
	SettledApps     decimal.NullDecimal `json:"settled_apps"`
	AgencyCredits   decimal.NullDecimal `json:"agency_credits"`
	NetSalesCredits decimal.NullDecimal `json:"net_sales_credits"`
	CreatedAt       time.Time           `json:"created_at,omitempty"`
}
