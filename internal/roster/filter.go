// Package roster holds pure in-memory filtering helpers for the manpower
// dataset. No I/O, no state; the HTTP layer applies these to repository
// results based on query parameters.
package roster

import (
	"sort"
	"strings"

	"agencydash/internal/model"
)

// Roster segments derived from an advisor's class code.
const (
	SegmentAll      = "all"
	SegmentAdvisors = "advisors"
	SegmentManagers = "managers"
)

// managerClasses are the class codes that denote management roles.
var managerClasses = map[string]struct{}{
	"UM":  {},
	"SUM": {},
	"AUM": {},
	"BM":  {},
	"SBM": {},
}

// Segment classifies a class code. Unknown or empty codes fall into "all"
// so they stay visible regardless of the active filter.
func Segment(class string) string {
	c := strings.ToUpper(strings.TrimSpace(class))
	if c == "" {
		return SegmentAll
	}
	if _, ok := managerClasses[c]; ok {
		return SegmentManagers
	}
	return SegmentAdvisors
}

// MatchesMonth reports whether the date string (YYYY-MM-DD or YYYY-MM)
// falls in the given month filter (YYYY-MM). An empty or "all" filter
// matches everything; a record with no date only matches the empty filter.
func MatchesMonth(dateStr, month string) bool {
	if month == "" || month == SegmentAll {
		return true
	}
	if len(dateStr) < len(month) {
		return false
	}
	return strings.HasPrefix(dateStr, month)
}

// TeamNames derives the unique, sorted set of team names for filter dropdowns.
func TeamNames(records []model.ManpowerRecord) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range records {
		if r.TeamName == nil || *r.TeamName == "" {
			continue
		}
		if _, ok := seen[*r.TeamName]; ok {
			continue
		}
		seen[*r.TeamName] = struct{}{}
		names = append(names, *r.TeamName)
	}
	sort.Strings(names)
	return names
}

// Filter narrows records by segment, contract month, and team name.
// Empty filter values match everything.
func Filter(records []model.ManpowerRecord, segment, month, team string) []model.ManpowerRecord {
	out := make([]model.ManpowerRecord, 0, len(records))
	for _, r := range records {
		if segment != "" && segment != SegmentAll {
			class := ""
			if r.Class != nil {
				class = *r.Class
			}
			if s := Segment(class); s != SegmentAll && s != segment {
				continue
			}
		}
		if month != "" && month != SegmentAll {
			date := ""
			if r.ContractDate != nil {
				date = *r.ContractDate
			}
			if !MatchesMonth(date, month) {
				continue
			}
		}
		if team != "" && (r.TeamName == nil || *r.TeamName != team) {
			continue
		}
		out = append(out, r)
	}
	return out
}
