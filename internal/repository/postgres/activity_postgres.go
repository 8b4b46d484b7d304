package postgres

import (
	"context"
	"database/sql"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

func scanActivity(row interface{ Scan(dest ...any) error }) (*model.Activity, error) {
	var (
		a     model.Activity
		docID sql.NullString
	)
	if err := row.Scan(
		&a.ID,
		&a.MatterID,
		&docID,
		&a.Kind,
		&a.OccurredAt,
	); err != nil {
		return nil, err
	}
	a.DocumentID = docID.String
	return &a, nil
}

// Record inserts one audit row and returns the stored record.
// DocumentID is stored as NULL for matter-level activities.
func (r *ActivityPostgres) Record(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	const q = `
		INSERT INTO matter_activities (id, matter_id, document_id, kind, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, matter_id, document_id, kind, occurred_at
	`
	docID := sql.NullString{String: a.DocumentID, Valid: a.DocumentID != ""}
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.MatterID,
		docID,
		a.Kind,
		a.OccurredAt,
	)
	return scanActivity(row)
}

// ListByMatter returns a matter's audit rows, oldest first.
func (r *ActivityPostgres) ListByMatter(ctx context.Context, matterID string) ([]model.Activity, error) {
	const q = `
		SELECT id, matter_id, document_id, kind, occurred_at
		FROM matter_activities
		WHERE matter_id = $1
		ORDER BY occurred_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, matterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
