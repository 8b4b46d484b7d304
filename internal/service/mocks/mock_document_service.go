package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, matterID string, req *dto.CreateDocumentRequest, r io.Reader) (*dto.DocumentResponse, error) {
	args := m.Called(ctx, matterID, req, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, id string) (io.ReadCloser, *dto.DocumentResponse, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	resp, _ := args.Get(1).(*dto.DocumentResponse)
	return rc, resp, args.Error(2)
}

func (m *MockDocumentService) DownloadLink(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Checkout(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Checkin(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentResponse), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
