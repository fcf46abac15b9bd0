package mocks

import (
	"context"

	"agencydash/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSettledAppRepository struct {
	mock.Mock
}

func (m *MockSettledAppRepository) FindDuplicateIDs(ctx context.Context, rec *model.SettledApp) ([]string, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSettledAppRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockSettledAppRepository) Insert(ctx context.Context, rec *model.SettledApp) (*model.SettledApp, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SettledApp), args.Error(1)
}
