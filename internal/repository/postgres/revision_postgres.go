package postgres

import (
	"context"
	"database/sql"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

const revisionColumns = `id, document_id, revision_number, creation_date, modification_date, is_deleted`

// RevisionPostgres is a PostgreSQL implementation of repository.RevisionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RevisionPostgres struct {
	db *sql.DB
}

// NewRevisionPostgres creates a new RevisionPostgres repository.
func NewRevisionPostgres(db *sql.DB) *RevisionPostgres {
	return &RevisionPostgres{db: db}
}

var _ repository.RevisionRepository = (*RevisionPostgres)(nil)

func scanRevision(row interface{ Scan(dest ...any) error }) (*model.Revision, error) {
	var rev model.Revision
	if err := row.Scan(
		&rev.ID,
		&rev.DocumentID,
		&rev.RevisionNumber,
		&rev.CreationDate,
		&rev.ModificationDate,
		&rev.IsDeleted,
	); err != nil {
		return nil, err
	}
	return &rev, nil
}

// Create inserts a new revision row and returns the stored record.
func (r *RevisionPostgres) Create(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	const q = `
		INSERT INTO revisions (` + revisionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + revisionColumns
	row := r.db.QueryRowContext(ctx, q,
		rev.ID,
		rev.DocumentID,
		rev.RevisionNumber,
		rev.CreationDate,
		rev.ModificationDate,
		rev.IsDeleted,
	)
	return scanRevision(row)
}

// FindByNumber fetches a document's revision by its number.
func (r *RevisionPostgres) FindByNumber(ctx context.Context, documentID string, number int) (*model.Revision, error) {
	const q = `
		SELECT ` + revisionColumns + `
		FROM revisions
		WHERE document_id = $1 AND revision_number = $2
	`
	return scanRevision(r.db.QueryRowContext(ctx, q, documentID, number))
}

// Update rewrites a revision row and returns the stored result.
func (r *RevisionPostgres) Update(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	const q = `
		UPDATE revisions
		SET revision_number = $2, creation_date = $3, modification_date = $4, is_deleted = $5
		WHERE id = $1
		RETURNING ` + revisionColumns
	row := r.db.QueryRowContext(ctx, q,
		rev.ID,
		rev.RevisionNumber,
		rev.CreationDate,
		rev.ModificationDate,
		rev.IsDeleted,
	)
	return scanRevision(row)
}

// ListByDocument returns a document's revisions ordered by revision number.
func (r *RevisionPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Revision, error) {
	const q = `
		SELECT ` + revisionColumns + `
		FROM revisions
		WHERE document_id = $1
		ORDER BY revision_number ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Revision, 0)
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
