package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrMatterNotFound    = errors.New("matter not found")
	ErrMatterArchived    = errors.New("matter is archived")
	ErrMatterNotArchived = errors.New("matter is not archived")
	ErrMatterNotEmpty    = errors.New("matter still owns documents")
)

// MatterListResult is the service-level DTO for paginated matters.
type MatterListResult struct {
	Items []dto.MatterResponse `json:"data"`
	Total int                  `json:"total"`
}

// MatterService defines the use cases for handling matters.
type MatterService interface {
	// Create validates the request, stores the matter, and records a creation activity.
	Create(ctx context.Context, req *dto.CreateMatterRequest) (*dto.MatterResponse, error)

	// Get returns a single matter by its ID.
	Get(ctx context.Context, id string) (*dto.MatterResponse, error)

	// GetWithDocuments returns a matter together with its documents and audit trail.
	GetWithDocuments(ctx context.Context, id string) (*dto.MatterWithDocumentsResponse, error)

	// List returns matters using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*MatterListResult, error)

	// Archive marks an active matter as archived and records the activity.
	Archive(ctx context.Context, id string) (*dto.MatterResponse, error)

	// Restore marks an archived matter as active again and records the activity.
	Restore(ctx context.Context, id string) (*dto.MatterResponse, error)

	// Delete removes a matter that owns no documents.
	Delete(ctx context.Context, id string) error
}

// matterService is a concrete implementation of MatterService.
type matterService struct {
	matters    repository.MatterRepository
	documents  repository.DocumentRepository
	activities repository.ActivityRepository
}

// NewMatterService constructs a new MatterService.
func NewMatterService(matters repository.MatterRepository, documents repository.DocumentRepository, activities repository.ActivityRepository) MatterService {
	return &matterService{matters: matters, documents: documents, activities: activities}
}

func (s *matterService) Create(ctx context.Context, req *dto.CreateMatterRequest) (*dto.MatterResponse, error) {
	if f := req.Validate(); f != nil {
		return nil, f
	}

	m := req.ToModel()
	m.ID = uuid.New().String()

	stored, err := s.matters.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create matter: %w", err)
	}

	if err := recordActivity(ctx, s.activities, stored.ID, "", model.ActivityMatterCreated); err != nil {
		return nil, err
	}

	return dto.MatterResponseFromModel(stored)
}

func (s *matterService) Get(ctx context.Context, id string) (*dto.MatterResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.MatterResponseFromModel(m)
}

func (s *matterService) GetWithDocuments(ctx context.Context, id string) (*dto.MatterWithDocumentsResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByMatter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	acts, err := s.activities.ListByMatter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return dto.NewMatterWithDocuments(m, docs, acts)
}

// List returns paginated matters without exposing repository types.
func (s *matterService) List(ctx context.Context, limit, offset int) (*MatterListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.matters.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	items := make([]dto.MatterResponse, 0, len(res.Items))
	for i := range res.Items {
		resp, err := dto.MatterResponseFromModel(&res.Items[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &MatterListResult{Items: items, Total: res.Total}, nil
}

func (s *matterService) Archive(ctx context.Context, id string) (*dto.MatterResponse, error) {
	return s.setArchived(ctx, id, true)
}

func (s *matterService) Restore(ctx context.Context, id string) (*dto.MatterResponse, error) {
	return s.setArchived(ctx, id, false)
}

func (s *matterService) setArchived(ctx context.Context, id string, archived bool) (*dto.MatterResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsArchived == archived {
		if archived {
			return nil, ErrMatterArchived
		}
		return nil, ErrMatterNotArchived
	}

	if err := s.matters.SetArchived(ctx, id, archived); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatterNotFound
		}
		return nil, fmt.Errorf("set archived: %w", err)
	}

	kind := model.ActivityMatterArchived
	if !archived {
		kind = model.ActivityMatterRestored
	}
	if err := recordActivity(ctx, s.activities, id, "", kind); err != nil {
		return nil, err
	}

	m.IsArchived = archived
	return dto.MatterResponseFromModel(m)
}

// Delete removes a matter. Matters that still own documents are kept.
func (s *matterService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	total, err := s.documents.CountByMatter(ctx, id)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if total > 0 {
		return ErrMatterNotEmpty
	}

	return s.matters.Delete(ctx, id)
}

func (s *matterService) find(ctx context.Context, id string) (*model.Matter, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	m, err := s.matters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatterNotFound
		}
		return nil, err
	}
	return m, nil
}

// recordActivity appends one audit record for a matter or one of its documents.
func recordActivity(ctx context.Context, activities repository.ActivityRepository, matterID, documentID string, kind model.ActivityKind) error {
	_, err := activities.Record(ctx, &model.Activity{
		ID:         uuid.New().String(),
		MatterID:   matterID,
		DocumentID: documentID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record %s activity: %w", kind, err)
	}
	return nil
}
