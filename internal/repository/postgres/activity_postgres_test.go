package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/stretchr/testify/assert"
)

var activityCols = []string{"id", "matter_id", "document_id", "kind", "occurred_at"}

func TestActivityPostgres_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	ctx := context.Background()

	occurred := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	t.Run("matter-level activity stores NULL document id", func(t *testing.T) {
		a := &model.Activity{
			ID:         "c9a1f0e2-7d3b-4c5a-9e8f-1a2b3c4d5e6f",
			MatterID:   "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
			Kind:       model.ActivityMatterCreated,
			OccurredAt: occurred,
		}

		rows := sqlmock.NewRows(activityCols).
			AddRow(a.ID, a.MatterID, nil, string(a.Kind), a.OccurredAt)

		mock.ExpectQuery("INSERT INTO matter_activities").
			WithArgs(a.ID, a.MatterID, nil, string(a.Kind), a.OccurredAt).
			WillReturnRows(rows)

		result, err := repo.Record(ctx, a)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result.DocumentID)
		assert.Equal(t, model.ActivityMatterCreated, result.Kind)
	})

	t.Run("document-level activity keeps the document id", func(t *testing.T) {
		a := &model.Activity{
			ID:         "d0b2e1f3-8e4c-4d6b-a0f1-2b3c4d5e6f7a",
			MatterID:   "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
			DocumentID: "9b2a7f16-5c1d-47e8-9e6a-8f1b2c3d4e5f",
			Kind:       model.ActivityDocumentAdded,
			OccurredAt: occurred,
		}

		rows := sqlmock.NewRows(activityCols).
			AddRow(a.ID, a.MatterID, a.DocumentID, string(a.Kind), a.OccurredAt)

		mock.ExpectQuery("INSERT INTO matter_activities").
			WithArgs(a.ID, a.MatterID, a.DocumentID, string(a.Kind), a.OccurredAt).
			WillReturnRows(rows)

		result, err := repo.Record(ctx, a)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, a.DocumentID, result.DocumentID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_ListByMatter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	ctx := context.Background()

	occurred := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(activityCols).
		AddRow("act-1", "matter-id", nil, "matter_created", occurred).
		AddRow("act-2", "matter-id", "doc-id", "document_added", occurred.Add(time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM matter_activities WHERE matter_id = ?").
		WithArgs("matter-id").
		WillReturnRows(rows)

	items, err := repo.ListByMatter(ctx, "matter-id")

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Empty(t, items[0].DocumentID)
	assert.Equal(t, model.ActivityDocumentAdded, items[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
