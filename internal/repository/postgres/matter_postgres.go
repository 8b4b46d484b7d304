package postgres

import (
	"context"
	"database/sql"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/repository"
)

// MatterPostgres is a PostgreSQL implementation of repository.MatterRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type MatterPostgres struct {
	db *sql.DB
}

// NewMatterPostgres creates a new MatterPostgres repository.
func NewMatterPostgres(db *sql.DB) *MatterPostgres {
	return &MatterPostgres{db: db}
}

var _ repository.MatterRepository = (*MatterPostgres)(nil)

// Create inserts a new matter row and returns the stored record.
func (r *MatterPostgres) Create(ctx context.Context, m *model.Matter) (*model.Matter, error) {
	const q = `
		INSERT INTO matters (id, description, is_archived, creation_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, description, is_archived, creation_date
	`
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.Description,
		m.IsArchived,
		m.CreationDate,
	)
	var out model.Matter
	if err := row.Scan(
		&out.ID,
		&out.Description,
		&out.IsArchived,
		&out.CreationDate,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single matter by its ID.
func (r *MatterPostgres) FindByID(ctx context.Context, id string) (*model.Matter, error) {
	const q = `
		SELECT id, description, is_archived, creation_date
		FROM matters
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var m model.Matter
	if err := row.Scan(
		&m.ID,
		&m.Description,
		&m.IsArchived,
		&m.CreationDate,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns matters using LIMIT/OFFSET pagination and a total count.
func (r *MatterPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Matter], error) {
	const qCount = `SELECT COUNT(*) FROM matters`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, description, is_archived, creation_date
		FROM matters
		ORDER BY creation_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Matter, 0)
	for rows.Next() {
		var m model.Matter
		if err := rows.Scan(
			&m.ID,
			&m.Description,
			&m.IsArchived,
			&m.CreationDate,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Matter]{
		Items: items,
		Total: total,
	}, nil
}

// SetArchived flips the archived flag on a matter row.
func (r *MatterPostgres) SetArchived(ctx context.Context, id string, archived bool) error {
	const q = `UPDATE matters SET is_archived = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, archived)
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

// Delete removes a matter by ID. It does not return an error if the row does not exist.
func (r *MatterPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM matters WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
