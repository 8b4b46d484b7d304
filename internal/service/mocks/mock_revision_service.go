package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
)

type MockRevisionService struct {
	mock.Mock
}

func (m *MockRevisionService) Update(ctx context.Context, documentID string, revisionNumber int, req *dto.UpdateRevisionRequest) (*dto.RevisionResponse, error) {
	args := m.Called(ctx, documentID, revisionNumber, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RevisionResponse), args.Error(1)
}

func (m *MockRevisionService) List(ctx context.Context, documentID string) ([]dto.RevisionResponse, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RevisionResponse), args.Error(1)
}
