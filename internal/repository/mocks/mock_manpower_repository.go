package mocks

import (
	"context"

	"agencydash/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockManpowerRepository struct {
	mock.Mock
}

func (m *MockManpowerRepository) ListAll(ctx context.Context) ([]model.ManpowerRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ManpowerRecord), args.Error(1)
}
