package repository

import (
	"context"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides the row values (ID, StoragePath, CreatedAt included).
	// Returns the stored document as read back from the database.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByMatter returns every document owned by a matter, newest first.
	ListByMatter(ctx context.Context, matterID string) ([]model.Document, error)

	// CountByMatter returns how many documents a matter owns.
	CountByMatter(ctx context.Context, matterID string) (int, error)

	// SetCheckedOut flips the checked-out flag. Returns sql.ErrNoRows when no document has the ID.
	SetCheckedOut(ctx context.Context, id string, checkedOut bool) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
