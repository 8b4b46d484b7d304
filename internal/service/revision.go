package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

var (
	ErrRevisionNotFound       = errors.New("revision not found")
	ErrRevisionNumberMismatch = errors.New("revision number does not match the request path")
)

// RevisionService defines the use cases for handling document revisions.
type RevisionService interface {
	// Update rewrites one revision of a document. The request must carry the
	// same revision number the path addresses; renumbering is not supported.
	Update(ctx context.Context, documentID string, revisionNumber int, req *dto.UpdateRevisionRequest) (*dto.RevisionResponse, error)

	// List returns a document's revisions ordered by revision number.
	List(ctx context.Context, documentID string) ([]dto.RevisionResponse, error)
}

// revisionService is a concrete implementation of RevisionService.
type revisionService struct {
	revisions repository.RevisionRepository
	documents repository.DocumentRepository
}

// NewRevisionService constructs a new RevisionService.
func NewRevisionService(revisions repository.RevisionRepository, documents repository.DocumentRepository) RevisionService {
	return &revisionService{revisions: revisions, documents: documents}
}

func (s *revisionService) Update(ctx context.Context, documentID string, revisionNumber int, req *dto.UpdateRevisionRequest) (*dto.RevisionResponse, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if f := req.Validate(); f != nil {
		return nil, f
	}
	if req.RevisionNumber != revisionNumber {
		return nil, ErrRevisionNumberMismatch
	}

	if _, err := s.documents.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	rev, err := s.revisions.FindByNumber(ctx, documentID, revisionNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRevisionNotFound
		}
		return nil, err
	}

	prevModified := rev.ModificationDate
	req.ApplyTo(rev)
	// An update that does not advance the modification date still counts as a
	// modification; stamp it with the current time. The clamp keeps the dates
	// ordered when the creation date sits inside the clock-skew window.
	if !rev.ModificationDate.After(prevModified) {
		now := time.Now().UTC()
		if now.Before(rev.CreationDate) {
			now = rev.CreationDate
		}
		rev.ModificationDate = now
	}

	updated, err := s.revisions.Update(ctx, rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRevisionNotFound
		}
		return nil, fmt.Errorf("update revision: %w", err)
	}

	return dto.RevisionResponseFromModel(updated)
}

// List returns a document's revisions, verifying the document exists first.
func (s *revisionService) List(ctx context.Context, documentID string) ([]dto.RevisionResponse, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.documents.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	revs, err := s.revisions.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RevisionResponse, 0, len(revs))
	for i := range revs {
		resp, err := dto.RevisionResponseFromModel(&revs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}
