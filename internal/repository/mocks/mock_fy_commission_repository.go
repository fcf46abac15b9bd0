package mocks

import (
	"context"

	"agencydash/internal/model"
	"agencydash/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFYCommissionRepository struct {
	mock.Mock
}

func (m *MockFYCommissionRepository) UploadWithDeduplication(ctx context.Context, records []model.FYCommission, duplicateFields []string) (*repository.DedupResult, error) {
	args := m.Called(ctx, records, duplicateFields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DedupResult), args.Error(1)
}
