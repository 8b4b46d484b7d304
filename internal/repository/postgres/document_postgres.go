package postgres

import (
	"context"
	"database/sql"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

const documentColumns = `id, matter_id, file_name, extension, file_size, mime_type, checksum, description, is_checked_out, storage_path, created_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(row interface{ Scan(dest ...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.MatterID,
		&d.FileName,
		&d.Extension,
		&d.FileSize,
		&d.MimeType,
		&d.Checksum,
		&d.Description,
		&d.IsCheckedOut,
		&d.StoragePath,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.MatterID,
		doc.FileName,
		doc.Extension,
		doc.FileSize,
		doc.MimeType,
		doc.Checksum,
		doc.Description,
		doc.IsCheckedOut,
		doc.StoragePath,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByMatter returns a matter's documents, newest first.
func (r *DocumentPostgres) ListByMatter(ctx context.Context, matterID string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE matter_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, matterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountByMatter returns how many documents a matter owns.
func (r *DocumentPostgres) CountByMatter(ctx context.Context, matterID string) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE matter_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, q, matterID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// SetCheckedOut flips the checked-out flag on a document row.
func (r *DocumentPostgres) SetCheckedOut(ctx context.Context, id string, checkedOut bool) error {
	const q = `UPDATE documents SET is_checked_out = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, checkedOut)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
