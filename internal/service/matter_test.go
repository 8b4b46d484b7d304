package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
	repoMocks "github.com/LawUtilities/ADMS.API-sub003/internal/repository/mocks"
	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

type matterMocks struct {
	matters    *repoMocks.MockMatterRepository
	documents  *repoMocks.MockDocumentRepository
	activities *repoMocks.MockActivityRepository
}

func newMatterMocks() *matterMocks {
	return &matterMocks{
		matters:    new(repoMocks.MockMatterRepository),
		documents:  new(repoMocks.MockDocumentRepository),
		activities: new(repoMocks.MockActivityRepository),
	}
}

func (m *matterMocks) service() MatterService {
	return NewMatterService(m.matters, m.documents, m.activities)
}

func (m *matterMocks) assertExpectations(t *testing.T) {
	m.matters.AssertExpectations(t)
	m.documents.AssertExpectations(t)
	m.activities.AssertExpectations(t)
}

func createMatterRequest() *dto.CreateMatterRequest {
	return &dto.CreateMatterRequest{
		Description:  "Harmon estate",
		CreationDate: time.Now().UTC().Add(-48 * time.Hour),
	}
}

func matterActivity() model.Activity {
	return model.Activity{
		ID:         "c9a1f0e2-7d3b-4c5a-9e8f-1a2b3c4d5e6f",
		MatterID:   testMatterID,
		Kind:       model.ActivityMatterCreated,
		OccurredAt: time.Now().UTC().Add(-47 * time.Hour),
	}
}

func TestMatterService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		req          *dto.CreateMatterRequest
		setupMocks   func(m *matterMocks)
		wantErrMsg   string
		wantFailures bool
	}{
		{
			name: "happy path",
			req:  createMatterRequest(),
			setupMocks: func(m *matterMocks) {
				m.matters.On("Create", ctx, mock.MatchedBy(func(mt *model.Matter) bool {
					return mt.ID != "" && mt.Description == "Harmon estate"
				})).Return(activeMatter(), nil)
				m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
					return a.Kind == model.ActivityMatterCreated && a.MatterID == testMatterID
				})).Return(&model.Activity{}, nil)
			},
		},
		{
			name:         "invalid request reports failures",
			req:          &dto.CreateMatterRequest{},
			setupMocks:   func(m *matterMocks) {},
			wantFailures: true,
		},
		{
			name: "repository error",
			req:  createMatterRequest(),
			setupMocks: func(m *matterMocks) {
				m.matters.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "create matter: db fail",
		},
		{
			name: "activity record error",
			req:  createMatterRequest(),
			setupMocks: func(m *matterMocks) {
				m.matters.On("Create", ctx, mock.Anything).Return(activeMatter(), nil)
				m.activities.On("Record", ctx, mock.Anything).Return(nil, errors.New("audit fail"))
			},
			wantErrMsg: "record matter_created activity: audit fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatterMocks()
			svc := m.service()

			tt.setupMocks(m)

			resp, err := svc.Create(ctx, tt.req)

			switch {
			case tt.wantErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Nil(t, resp)
			case tt.wantFailures:
				f, ok := validation.AsFailures(err)
				assert.True(t, ok)
				assert.NotEmpty(t, f)
				assert.Nil(t, resp)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, resp)
				assert.Equal(t, testMatterID, resp.ID)
				assert.Equal(t, "active", resp.Status())
			}
			m.assertExpectations(t)
		})
	}
}

func TestMatterService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *matterMocks)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   testMatterID,
			setupMocks: func(m *matterMocks) {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
			},
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(m *matterMocks) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(m *matterMocks) {
				m.matters.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrMatterNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatterMocks()
			svc := m.service()

			tt.setupMocks(m)

			resp, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, resp.ID)
			}
			m.assertExpectations(t)
		})
	}
}

func TestMatterService_GetWithDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles documents and activities", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		doc := storedDocument(uploadRequest("hello world"))
		m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
		m.documents.On("ListByMatter", ctx, testMatterID).Return([]model.Document{*doc}, nil)
		m.activities.On("ListByMatter", ctx, testMatterID).Return([]model.Activity{matterActivity()}, nil)

		resp, err := svc.GetWithDocuments(ctx, testMatterID)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.DocumentCount())
		assert.Len(t, resp.Activities, 1)
		assert.Equal(t, doc.FileSize, resp.TotalFileSize())
		m.assertExpectations(t)
	})

	t.Run("empty collections stay non-nil", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
		m.documents.On("ListByMatter", ctx, testMatterID).Return([]model.Document{}, nil)
		m.activities.On("ListByMatter", ctx, testMatterID).Return([]model.Activity{}, nil)

		resp, err := svc.GetWithDocuments(ctx, testMatterID)

		assert.NoError(t, err)
		assert.NotNil(t, resp.Documents)
		assert.NotNil(t, resp.Activities)
		assert.Equal(t, 0, resp.DocumentCount())
		m.assertExpectations(t)
	})

	t.Run("document listing error", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
		m.documents.On("ListByMatter", ctx, testMatterID).Return(nil, errors.New("db fail"))

		resp, err := svc.GetWithDocuments(ctx, testMatterID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "list documents: db fail")
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})

	t.Run("matter missing", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		m.matters.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)

		resp, err := svc.GetWithDocuments(ctx, "missing-id")

		assert.ErrorIs(t, err, ErrMatterNotFound)
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})
}

func TestMatterService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(m *matterMocks)
		wantErr    error
		checkRes   func(t *testing.T, res *MatterListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(m *matterMocks) {
				m.matters.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Matter]{
						Items: []model.Matter{*activeMatter()},
						Total: 1,
					}, nil)
			},
			checkRes: func(t *testing.T, res *MatterListResult) {
				assert.Len(t, res.Items, 1)
				assert.Equal(t, 1, res.Total)
				assert.Equal(t, testMatterID, res.Items[0].ID)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(m *matterMocks) {
				m.matters.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Matter]{Items: []model.Matter{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(m *matterMocks) {
				m.matters.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatterMocks()
			svc := m.service()

			tt.setupMocks(m)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			m.assertExpectations(t)
		})
	}
}

func TestMatterService_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("archives an active matter", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
		m.matters.On("SetArchived", ctx, testMatterID, true).Return(nil)
		m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
			return a.Kind == model.ActivityMatterArchived
		})).Return(&model.Activity{}, nil)

		resp, err := svc.Archive(ctx, testMatterID)

		assert.NoError(t, err)
		assert.True(t, resp.IsArchived)
		assert.Equal(t, "archived", resp.Status())
		m.assertExpectations(t)
	})

	t.Run("already archived", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		archived := activeMatter()
		archived.IsArchived = true
		m.matters.On("FindByID", ctx, testMatterID).Return(archived, nil)

		resp, err := svc.Archive(ctx, testMatterID)

		assert.ErrorIs(t, err, ErrMatterArchived)
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})
}

func TestMatterService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("restores an archived matter", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		archived := activeMatter()
		archived.IsArchived = true
		m.matters.On("FindByID", ctx, testMatterID).Return(archived, nil)
		m.matters.On("SetArchived", ctx, testMatterID, false).Return(nil)
		m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
			return a.Kind == model.ActivityMatterRestored
		})).Return(&model.Activity{}, nil)

		resp, err := svc.Restore(ctx, testMatterID)

		assert.NoError(t, err)
		assert.False(t, resp.IsArchived)
		assert.Equal(t, "active", resp.Status())
		m.assertExpectations(t)
	})

	t.Run("matter is not archived", func(t *testing.T) {
		m := newMatterMocks()
		svc := m.service()

		m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)

		resp, err := svc.Restore(ctx, testMatterID)

		assert.ErrorIs(t, err, ErrMatterNotArchived)
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})
}

func TestMatterService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *matterMocks)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   testMatterID,
			setupMocks: func(m *matterMocks) {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				m.documents.On("CountByMatter", ctx, testMatterID).Return(0, nil)
				m.matters.On("Delete", ctx, testMatterID).Return(nil)
			},
		},
		{
			name: "matter still owns documents",
			id:   testMatterID,
			setupMocks: func(m *matterMocks) {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				m.documents.On("CountByMatter", ctx, testMatterID).Return(2, nil)
			},
			wantErr: ErrMatterNotEmpty,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(m *matterMocks) {
				m.matters.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrMatterNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatterMocks()
			svc := m.service()

			tt.setupMocks(m)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}
