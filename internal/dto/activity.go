package dto

import (
	"time"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

// ActivityResponse is one entry in a matter's activity log. DocumentID is
// empty for matter-level entries.
type ActivityResponse struct {
	ID         string    `json:"id" validate:"required,uuid"`
	DocumentID string    `json:"document_id,omitempty" validate:"omitempty,uuid"`
	Kind       string    `json:"kind" validate:"required,oneof=matter_created matter_archived matter_restored document_added document_deleted document_checked_out document_checked_in"`
	OccurredAt time.Time `json:"occurred_at" validate:"required"`
}

// Validate implements validation.Validatable.
func (r *ActivityResponse) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			var f validation.Failures
			checkDateWindow(&f, r.OccurredAt, "occurred_at")
			return f
		},
	)
}

func newActivityResponse(a *model.Activity) *ActivityResponse {
	return &ActivityResponse{
		ID:         a.ID,
		DocumentID: a.DocumentID,
		Kind:       string(a.Kind),
		OccurredAt: a.OccurredAt,
	}
}
