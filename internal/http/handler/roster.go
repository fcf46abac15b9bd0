package handler

import (
	"github.com/gofiber/fiber/v2"

	"agencydash/internal/roster"
	"agencydash/internal/service"
)

// rosterResponse is the JSON payload of GET /api/manpower. Teams carries the
// unique team names of the unfiltered roster so dropdowns stay stable while
// filters are applied.
type rosterResponse struct {
	Data  []rosterItem `json:"data"`
	Total int          `json:"total"`
	Teams []string     `json:"teams"`
}

type rosterItem struct {
	ID           string  `json:"id"`
	AdvisorCode  string  `json:"advisor_code"`
	AdvisorName  string  `json:"advisor_name"`
	TeamName     *string `json:"team_name"`
	Class        *string `json:"class"`
	UnitCode     *string `json:"unit_code"`
	Status       *string `json:"status"`
	ContractDate *string `json:"contract_date"`
	Segment      string  `json:"segment"`
}

// ListManpower handles GET /api/manpower with optional segment, month, and
// team query filters. Requires an authenticated session (any role).
func ListManpower(rosterSvc service.RosterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := rosterSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		teams := roster.TeamNames(records)
		filtered := roster.Filter(records,
			c.Query("segment"),
			c.Query("month"),
			c.Query("team"),
		)

		items := make([]rosterItem, 0, len(filtered))
		for _, r := range filtered {
			class := ""
			if r.Class != nil {
				class = *r.Class
			}
			items = append(items, rosterItem{
				ID:           r.ID,
				AdvisorCode:  r.AdvisorCode,
				AdvisorName:  r.AdvisorName,
				TeamName:     r.TeamName,
				Class:        r.Class,
				UnitCode:     r.UnitCode,
				Status:       r.Status,
				ContractDate: r.ContractDate,
				Segment:      roster.Segment(class),
			})
		}

		return c.JSON(rosterResponse{Data: items, Total: len(items), Teams: teams})
	}
}
