package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	repoMocks "github.com/LawUtilities/ADMS.API-sub003/internal/repository/mocks"
	"github.com/LawUtilities/ADMS.API-sub003/internal/storage"
	storeMocks "github.com/LawUtilities/ADMS.API-sub003/internal/storage/mocks"
	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

const (
	testMatterID   = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	testDocumentID = "9b2a7f16-5c1d-47e8-9e6a-8f1b2c3d4e5f"
)

type documentMocks struct {
	store      *storeMocks.MockStorage
	documents  *repoMocks.MockDocumentRepository
	matters    *repoMocks.MockMatterRepository
	revisions  *repoMocks.MockRevisionRepository
	activities *repoMocks.MockActivityRepository
}

func newDocumentMocks() *documentMocks {
	return &documentMocks{
		store:      new(storeMocks.MockStorage),
		documents:  new(repoMocks.MockDocumentRepository),
		matters:    new(repoMocks.MockMatterRepository),
		revisions:  new(repoMocks.MockRevisionRepository),
		activities: new(repoMocks.MockActivityRepository),
	}
}

func (m *documentMocks) service() DocumentService {
	return NewDocumentService(m.store, m.documents, m.matters, m.revisions, m.activities)
}

func (m *documentMocks) assertExpectations(t *testing.T) {
	m.store.AssertExpectations(t)
	m.documents.AssertExpectations(t)
	m.matters.AssertExpectations(t)
	m.revisions.AssertExpectations(t)
	m.activities.AssertExpectations(t)
}

func uploadRequest(content string) *dto.CreateDocumentRequest {
	sum := sha256.Sum256([]byte(content))
	return &dto.CreateDocumentRequest{
		FileName:    "closing brief",
		Extension:   "pdf",
		FileSize:    int64(len(content)),
		MimeType:    "application/pdf",
		Checksum:    hex.EncodeToString(sum[:]),
		Description: "Signed closing brief",
	}
}

func activeMatter() *model.Matter {
	return &model.Matter{
		ID:           testMatterID,
		Description:  "Harmon estate",
		CreationDate: time.Now().UTC().Add(-48 * time.Hour),
	}
}

func storedDocument(req *dto.CreateDocumentRequest) *model.Document {
	d := req.ToModel(testMatterID)
	d.ID = testDocumentID
	d.StoragePath = "matters/" + testMatterID + "/obj.pdf"
	d.CreatedAt = time.Now().UTC()
	return d
}

// consumingPut registers a Put expectation that drains the reader, so the
// service sees the same bytes the storage backend would.
func consumingPut(m *storeMocks.MockStorage, ctx context.Context) *mock.Call {
	return m.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			n, _ := io.Copy(io.Discard, r)
			return storage.ObjectInfo{Key: key, Size: n, ContentType: opt.ContentType}
		}, nil)
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		matterID     string
		req          *dto.CreateDocumentRequest
		setupMocks   func(m *documentMocks) io.Reader
		wantErr      error
		wantErrMsg   string
		wantFailures bool
	}{
		{
			name:     "happy path",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "matters/"+testMatterID+"/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.Size == 11 && opt.ContentType == "application/pdf" &&
						opt.Metadata["file-name"] == "closing brief.pdf"
				})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					n, _ := io.Copy(io.Discard, r)
					return storage.ObjectInfo{Key: key, Size: n, ContentType: opt.ContentType}
				}, nil)
				m.documents.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.MatterID == testMatterID && doc.StoragePath != "" && doc.ID != ""
				})).Return(storedDocument(uploadRequest("hello world")), nil)
				m.revisions.On("Create", ctx, mock.MatchedBy(func(rev *model.Revision) bool {
					return rev.DocumentID == testDocumentID && rev.RevisionNumber == 1 &&
						rev.CreationDate.Equal(rev.ModificationDate)
				})).Return(&model.Revision{}, nil)
				m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
					return a.Kind == model.ActivityDocumentAdded && a.DocumentID == testDocumentID
				})).Return(&model.Activity{}, nil)
				return strings.NewReader("hello world")
			},
		},
		{
			name:     "nil reader",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:     "empty matter id",
			matterID: "",
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				return strings.NewReader("hello world")
			},
			wantErr: ErrIDRequired,
		},
		{
			name:     "invalid request reports failures",
			matterID: testMatterID,
			req:      &dto.CreateDocumentRequest{},
			setupMocks: func(m *documentMocks) io.Reader {
				return strings.NewReader("hello world")
			},
			wantFailures: true,
		},
		{
			name:     "matter missing",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(nil, sql.ErrNoRows)
				return strings.NewReader("hello world")
			},
			wantErr: ErrMatterNotFound,
		},
		{
			name:     "archived matter rejects uploads",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				archived := activeMatter()
				archived.IsArchived = true
				m.matters.On("FindByID", ctx, testMatterID).Return(archived, nil)
				return strings.NewReader("hello world")
			},
			wantErr: ErrMatterArchived,
		},
		{
			name:     "storage error",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				m.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return strings.NewReader("hello world")
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "checksum mismatch rolls back the object",
			matterID: testMatterID,
			req: func() *dto.CreateDocumentRequest {
				req := uploadRequest("hello world")
				req.Checksum = strings.Repeat("a", 64)
				return req
			}(),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				consumingPut(m.store, ctx)
				m.store.On("Delete", ctx, mock.Anything).Return(nil)
				return strings.NewReader("hello world")
			},
			wantErr: ErrChecksumMismatch,
		},
		{
			name:     "repository error with successful rollback",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				consumingPut(m.store, ctx)
				m.documents.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				m.store.On("Delete", ctx, mock.Anything).Return(nil)
				return strings.NewReader("hello world")
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:     "repository error with failed rollback",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				consumingPut(m.store, ctx)
				m.documents.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				m.store.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return strings.NewReader("hello world")
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
		{
			name:     "initial revision error",
			matterID: testMatterID,
			req:      uploadRequest("hello world"),
			setupMocks: func(m *documentMocks) io.Reader {
				m.matters.On("FindByID", ctx, testMatterID).Return(activeMatter(), nil)
				consumingPut(m.store, ctx)
				m.documents.On("Create", ctx, mock.Anything).
					Return(storedDocument(uploadRequest("hello world")), nil)
				m.revisions.On("Create", ctx, mock.Anything).Return(nil, errors.New("rev fail"))
				return strings.NewReader("hello world")
			},
			wantErrMsg: "create initial revision: rev fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDocumentMocks()
			svc := m.service()

			r := tt.setupMocks(m)

			resp, err := svc.Upload(ctx, tt.matterID, tt.req, r)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
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
				assert.Equal(t, testDocumentID, resp.ID)
				assert.Equal(t, "closing brief.pdf", resp.FullFileName())
			}

			m.assertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *documentMocks)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   testDocumentID,
			setupMocks: func(m *documentMocks) {
				m.documents.On("FindByID", ctx, testDocumentID).
					Return(storedDocument(uploadRequest("hello world")), nil)
			},
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(m *documentMocks) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(m *documentMocks) {
				m.documents.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrDocumentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDocumentMocks()
			svc := m.service()

			tt.setupMocks(m)

			resp, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, resp)
				assert.Equal(t, tt.id, resp.ID)
			}
			m.assertExpectations(t)
		})
	}
}

func TestDocumentService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the document checked out", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		m.documents.On("FindByID", ctx, testDocumentID).
			Return(storedDocument(uploadRequest("hello world")), nil)
		m.documents.On("SetCheckedOut", ctx, testDocumentID, true).Return(nil)
		m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
			return a.Kind == model.ActivityCheckedOut && a.DocumentID == testDocumentID
		})).Return(&model.Activity{}, nil)

		resp, err := svc.Checkout(ctx, testDocumentID)

		assert.NoError(t, err)
		assert.True(t, resp.IsCheckedOut)
		assert.Equal(t, "checked out", resp.Status())
		m.assertExpectations(t)
	})

	t.Run("already checked out", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		doc := storedDocument(uploadRequest("hello world"))
		doc.IsCheckedOut = true
		m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)

		resp, err := svc.Checkout(ctx, testDocumentID)

		assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})
}

func TestDocumentService_Checkin(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the document", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		doc := storedDocument(uploadRequest("hello world"))
		doc.IsCheckedOut = true
		m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
		m.documents.On("SetCheckedOut", ctx, testDocumentID, false).Return(nil)
		m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
			return a.Kind == model.ActivityCheckedIn
		})).Return(&model.Activity{}, nil)

		resp, err := svc.Checkin(ctx, testDocumentID)

		assert.NoError(t, err)
		assert.False(t, resp.IsCheckedOut)
		assert.Equal(t, "available", resp.Status())
		m.assertExpectations(t)
	})

	t.Run("not checked out", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		m.documents.On("FindByID", ctx, testDocumentID).
			Return(storedDocument(uploadRequest("hello world")), nil)

		resp, err := svc.Checkin(ctx, testDocumentID)

		assert.ErrorIs(t, err, ErrNotCheckedOut)
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("streams the stored content", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		doc := storedDocument(uploadRequest("hello world"))
		m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
		m.store.On("Get", ctx, doc.StoragePath).
			Return(io.NopCloser(strings.NewReader("hello world")), storage.ObjectInfo{Key: doc.StoragePath}, nil)

		rc, resp, err := svc.Download(ctx, testDocumentID)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		content, readErr := io.ReadAll(rc)
		assert.NoError(t, readErr)
		assert.Equal(t, "hello world", string(content))
		assert.NoError(t, rc.Close())
		m.assertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		doc := storedDocument(uploadRequest("hello world"))
		m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
		m.store.On("Get", ctx, doc.StoragePath).
			Return(nil, storage.ObjectInfo{}, errors.New("storage fail"))

		rc, resp, err := svc.Download(ctx, testDocumentID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "read from storage: storage fail")
		assert.Nil(t, rc)
		assert.Nil(t, resp)
		m.assertExpectations(t)
	})
}

func TestDocumentService_DownloadLink(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns with the default expiry", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		doc := storedDocument(uploadRequest("hello world"))
		m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
		m.store.On("PresignGet", ctx, doc.StoragePath, defaultLinkExpiry).
			Return("https://storage.example/presigned", nil)

		u, err := svc.DownloadLink(ctx, testDocumentID, 0)

		assert.NoError(t, err)
		assert.Equal(t, "https://storage.example/presigned", u)
		m.assertExpectations(t)
	})

	t.Run("document missing", func(t *testing.T) {
		m := newDocumentMocks()
		svc := m.service()

		m.documents.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)

		u, err := svc.DownloadLink(ctx, "missing-id", time.Minute)

		assert.ErrorIs(t, err, ErrDocumentNotFound)
		assert.Empty(t, u)
		m.assertExpectations(t)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *documentMocks)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			id:   testDocumentID,
			setupMocks: func(m *documentMocks) {
				doc := storedDocument(uploadRequest("hello world"))
				m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
				m.store.On("Delete", ctx, doc.StoragePath).Return(nil)
				m.documents.On("Delete", ctx, testDocumentID).Return(nil)
				m.activities.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
					return a.Kind == model.ActivityDocumentDeleted && a.DocumentID == testDocumentID
				})).Return(&model.Activity{}, nil)
			},
		},
		{
			name: "checked-out documents are kept",
			id:   testDocumentID,
			setupMocks: func(m *documentMocks) {
				doc := storedDocument(uploadRequest("hello world"))
				doc.IsCheckedOut = true
				m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
			},
			wantErr: ErrDocumentCheckedOut,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(m *documentMocks) {
				m.documents.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrDocumentNotFound,
		},
		{
			name: "storage delete error keeps the record",
			id:   testDocumentID,
			setupMocks: func(m *documentMocks) {
				doc := storedDocument(uploadRequest("hello world"))
				m.documents.On("FindByID", ctx, testDocumentID).Return(doc, nil)
				m.store.On("Delete", ctx, doc.StoragePath).Return(errors.New("storage fail"))
			},
			wantErrMsg: "delete storage: storage fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDocumentMocks()
			svc := m.service()

			tt.setupMocks(m)

			err := svc.Delete(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}
