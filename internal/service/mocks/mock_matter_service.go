package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
)

type MockMatterService struct {
	mock.Mock
}

func (m *MockMatterService) Create(ctx context.Context, req *dto.CreateMatterRequest) (*dto.MatterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MatterResponse), args.Error(1)
}

func (m *MockMatterService) Get(ctx context.Context, id string) (*dto.MatterResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MatterResponse), args.Error(1)
}

func (m *MockMatterService) GetWithDocuments(ctx context.Context, id string) (*dto.MatterWithDocumentsResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MatterWithDocumentsResponse), args.Error(1)
}

func (m *MockMatterService) List(ctx context.Context, limit, offset int) (*service.MatterListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MatterListResult), args.Error(1)
}

func (m *MockMatterService) Archive(ctx context.Context, id string) (*dto.MatterResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MatterResponse), args.Error(1)
}

func (m *MockMatterService) Restore(ctx context.Context, id string) (*dto.MatterResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MatterResponse), args.Error(1)
}

func (m *MockMatterService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
