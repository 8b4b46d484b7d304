package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
	"github.com/LawUtilities/ADMS.API-sub003/internal/storage"
)

var (
	ErrReaderNil          = errors.New("reader is nil")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrChecksumMismatch   = errors.New("stored content does not match the declared checksum")
	ErrAlreadyCheckedOut  = errors.New("document is already checked out")
	ErrNotCheckedOut      = errors.New("document is not checked out")
	ErrDocumentCheckedOut = errors.New("document is checked out")
)

// defaultLinkExpiry bounds presigned download URLs when the caller does not
// supply an expiry.
const defaultLinkExpiry = 15 * time.Minute

// DocumentService defines the use cases for handling documents inside a matter.
type DocumentService interface {
	// Upload validates the request, streams the content to object storage while
	// computing its SHA-256, verifies it against the declared checksum, saves the
	// metadata, opens revision 1, and records the activity. Storage is rolled
	// back when a later step fails.
	Upload(ctx context.Context, matterID string, req *dto.CreateDocumentRequest, r io.Reader) (*dto.DocumentResponse, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*dto.DocumentResponse, error)

	// Download returns the document content as a streaming reader.
	Download(ctx context.Context, id string) (io.ReadCloser, *dto.DocumentResponse, error)

	// DownloadLink returns a presigned URL for fetching the content directly
	// from object storage. A non-positive expiry falls back to the default.
	DownloadLink(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Checkout marks a document as checked out and records the activity.
	Checkout(ctx context.Context, id string) (*dto.DocumentResponse, error)

	// Checkin releases a checked-out document and records the activity.
	Checkin(ctx context.Context, id string) (*dto.DocumentResponse, error)

	// Delete removes a document by ID from both storage and repository.
	// Checked-out documents are kept.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store      storage.Storage
	documents  repository.DocumentRepository
	matters    repository.MatterRepository
	revisions  repository.RevisionRepository
	activities repository.ActivityRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	documents repository.DocumentRepository,
	matters repository.MatterRepository,
	revisions repository.RevisionRepository,
	activities repository.ActivityRepository,
) DocumentService {
	return &documentService{
		store:      store,
		documents:  documents,
		matters:    matters,
		revisions:  revisions,
		activities: activities,
	}
}

func (s *documentService) Upload(ctx context.Context, matterID string, req *dto.CreateDocumentRequest, r io.Reader) (*dto.DocumentResponse, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if matterID == "" {
		return nil, ErrIDRequired
	}
	if f := req.Validate(); f != nil {
		return nil, f
	}

	matter, err := s.matters.FindByID(ctx, matterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatterNotFound
		}
		return nil, err
	}
	if matter.IsArchived {
		return nil, ErrMatterArchived
	}

	doc := req.ToModel(matterID)
	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()

	// Object names are UUIDs so colliding file names within a matter stay apart.
	objName := uuid.New().String() + "." + doc.Extension
	key := filepath.ToSlash(filepath.Join("matters", matterID, objName))
	doc.StoragePath = key

	// Hash the content while it streams to storage.
	hasher := sha256.New()
	tee := io.TeeReader(r, hasher)

	if _, err := s.store.Put(ctx, key, tee, storage.PutObjectOptions{
		Size:        req.FileSize,
		ContentType: doc.MimeType,
		Metadata: map[string]string{
			"file-name": req.FullFileName(),
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	sum := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(sum, req.Checksum) {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("%w; rollback delete failed: %v", ErrChecksumMismatch, delErr)
		}
		return nil, ErrChecksumMismatch
	}

	stored, err := s.documents.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if _, err := s.revisions.Create(ctx, &model.Revision{
		ID:               uuid.New().String(),
		DocumentID:       stored.ID,
		RevisionNumber:   1,
		CreationDate:     stored.CreatedAt,
		ModificationDate: stored.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("create initial revision: %w", err)
	}

	if err := recordActivity(ctx, s.activities, matterID, stored.ID, model.ActivityDocumentAdded); err != nil {
		return nil, err
	}

	return dto.DocumentResponseFromModel(stored)
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.DocumentResponseFromModel(doc)
}

// Download streams the stored content alongside the document metadata.
func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *dto.DocumentResponse, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	resp, err := dto.DocumentResponseFromModel(doc)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read from storage: %w", err)
	}
	return rc, resp, nil
}

// DownloadLink returns a presigned GET URL for the stored content.
func (s *documentService) DownloadLink(ctx context.Context, id string, expiry time.Duration) (string, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	if expiry <= 0 {
		expiry = defaultLinkExpiry
	}

	u, err := s.store.PresignGet(ctx, doc.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *documentService) Checkout(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	return s.setCheckedOut(ctx, id, true)
}

func (s *documentService) Checkin(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	return s.setCheckedOut(ctx, id, false)
}

func (s *documentService) setCheckedOut(ctx context.Context, id string, checkedOut bool) (*dto.DocumentResponse, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsCheckedOut == checkedOut {
		if checkedOut {
			return nil, ErrAlreadyCheckedOut
		}
		return nil, ErrNotCheckedOut
	}

	if err := s.documents.SetCheckedOut(ctx, id, checkedOut); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("set checked out: %w", err)
	}

	kind := model.ActivityCheckedOut
	if !checkedOut {
		kind = model.ActivityCheckedIn
	}
	if err := recordActivity(ctx, s.activities, doc.MatterID, id, kind); err != nil {
		return nil, err
	}

	doc.IsCheckedOut = checkedOut
	return dto.DocumentResponseFromModel(doc)
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if doc.IsCheckedOut {
		return ErrDocumentCheckedOut
	}

	// Delete from storage first; if this fails, keep the DB row so the stored
	// object is not orphaned without a reference.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}

	return recordActivity(ctx, s.activities, doc.MatterID, id, model.ActivityDocumentDeleted)
}

func (s *documentService) find(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}
