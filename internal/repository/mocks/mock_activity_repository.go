package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Record(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListByMatter(ctx context.Context, matterID string) ([]model.Activity, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}
