package service

import (
	"context"

	"agencydash/internal/model"
	"agencydash/internal/repository"
)

// RosterService exposes the read-only manpower roster. Row-level visibility
// is enforced by the database, not re-filtered here.
type RosterService interface {
	List(ctx context.Context) ([]model.ManpowerRecord, error)
}

type rosterService struct {
	manpower repository.ManpowerRepository
}

// NewRosterService constructs a new RosterService.
func NewRosterService(manpower repository.ManpowerRepository) RosterService {
	return &rosterService{manpower: manpower}
}

func (s *rosterService) List(ctx context.Context) ([]model.ManpowerRecord, error) {
	return s.manpower.ListAll(ctx)
}
