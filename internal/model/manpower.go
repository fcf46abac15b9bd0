package model

import "time"

// ManpowerRecord is one advisor/manager roster row. The roster is read-only
// in this service; row-level visibility is enforced by the database.
type ManpowerRecord struct {
	ID           string    `json:"id"`
	AdvisorCode  string    `json:"advisor_code"`
	AdvisorName  string    `json:"advisor_name"`
	TeamName     *string   `json:"team_name"`
	Class        *string   `json:"class"`
	UnitCode     *string   `json:"unit_code"`
	Status       *string   `json:"status"`
	ContractDate *string   `json:"contract_date"`
	CreatedAt    time.Time `json:"created_at"`
}
