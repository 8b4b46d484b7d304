package model

import "time"

// Revision is one numbered version of a document. Numbers start at 1 and are
// unique per document; revisions are soft-deleted via IsDeleted rather than
// removed.
type Revision struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"document_id"`
	RevisionNumber   int       `json:"revision_number"`
	CreationDate     time.Time `json:"creation_date"`
	ModificationDate time.Time `json:"modification_date"`
	IsDeleted        bool      `json:"is_deleted"`
}
