package repository

import (
	"context"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

// MatterRepository defines data access for matters using SQL queries only.
type MatterRepository interface {
	// Create inserts a new matter record and returns the stored row.
	Create(ctx context.Context, m *model.Matter) (*model.Matter, error)

	// FindByID returns a matter by its ID.
	FindByID(ctx context.Context, id string) (*model.Matter, error)

	// List returns a paginated list of matters and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Matter], error)

	// SetArchived flips the archived flag. Returns sql.ErrNoRows when no matter has the ID.
	SetArchived(ctx context.Context, id string, archived bool) error

	// Delete removes a matter by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
