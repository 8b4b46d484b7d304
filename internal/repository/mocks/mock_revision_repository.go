package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

type MockRevisionRepository struct {
	mock.Mock
}

func (m *MockRevisionRepository) Create(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	args := m.Called(ctx, rev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionRepository) FindByNumber(ctx context.Context, documentID string, number int) (*model.Revision, error) {
	args := m.Called(ctx, documentID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionRepository) Update(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	args := m.Called(ctx, rev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Revision) *model.Revision); ok {
		return f(ctx, rev), args.Error(1)
	}
	return args.Get(0).(*model.Revision), args.Error(1)
}

func (m *MockRevisionRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Revision, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Revision), args.Error(1)
}
