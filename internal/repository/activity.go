package repository

import (
	"context"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
)

// ActivityRepository defines data access for the matter audit trail.
type ActivityRepository interface {
	// Record inserts one audit record and returns the stored row.
	Record(ctx context.Context, a *model.Activity) (*model.Activity, error)

	// ListByMatter returns a matter's audit records, oldest first.
	ListByMatter(ctx context.Context, matterID string) ([]model.Activity, error)
}
