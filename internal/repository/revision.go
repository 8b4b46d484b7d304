package repository

import (
	"context"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

// RevisionRepository defines data access for document revisions.
type RevisionRepository interface {
	// Create inserts a new revision record and returns the stored row.
	Create(ctx context.Context, rev *model.Revision) (*model.Revision, error)

	// FindByNumber returns a document's revision by its number.
	FindByNumber(ctx context.Context, documentID string, number int) (*model.Revision, error)

	// Update rewrites a revision row and returns the stored result.
	// Returns sql.ErrNoRows when no revision has the ID.
	Update(ctx context.Context, rev *model.Revision) (*model.Revision, error)

	// ListByDocument returns a document's revisions ordered by revision number.
	ListByDocument(ctx context.Context, documentID string) ([]model.Revision, error)
}
