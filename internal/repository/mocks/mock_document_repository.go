package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByMatter(ctx context.Context, matterID string) ([]model.Document, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountByMatter(ctx context.Context, matterID string) (int, error) {
	args := m.Called(ctx, matterID)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) SetCheckedOut(ctx context.Context, id string, checkedOut bool) error {
	args := m.Called(ctx, id, checkedOut)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
