package model

import "time"

// ActivityKind names an auditable action on a matter or one of its documents.
type ActivityKind string

const (
	ActivityMatterCreated   ActivityKind = "matter_created"
	ActivityMatterArchived  ActivityKind = "matter_archived"
	ActivityMatterRestored  ActivityKind = "matter_restored"
	ActivityDocumentAdded   ActivityKind = "document_added"
	ActivityDocumentDeleted ActivityKind = "document_deleted"
	ActivityCheckedOut      ActivityKind = "document_checked_out"
	ActivityCheckedIn       ActivityKind = "document_checked_in"
)

// Activity is one audit record. DocumentID is empty for matter-level actions.
type Activity struct {
	ID         string       `json:"id"`
	MatterID   string       `json:"matter_id"`
	DocumentID string       `json:"document_id,omitempty"`
	Kind       ActivityKind `json:"kind"`
	OccurredAt time.Time    `json:"occurred_at"`
}
