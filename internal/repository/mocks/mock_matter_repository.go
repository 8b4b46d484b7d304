package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

type MockMatterRepository struct {
	mock.Mock
}

func (m *MockMatterRepository) Create(ctx context.Context, mt *model.Matter) (*model.Matter, error) {
	args := m.Called(ctx, mt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Matter), args.Error(1)
}

func (m *MockMatterRepository) FindByID(ctx context.Context, id string) (*model.Matter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Matter), args.Error(1)
}

func (m *MockMatterRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Matter], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Matter]), args.Error(1)
}

func (m *MockMatterRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *MockMatterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
