package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/LawUtilities/ADMS.API-sub003/internal/model"
	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

// UpdateRevisionRequest carries the mutable fields of a document revision.
type UpdateRevisionRequest struct {
	RevisionNumber   int       `json:"revision_number" validate:"gte=1,lte=999999"`
	CreationDate     time.Time `json:"creation_date" validate:"required"`
	ModificationDate time.Time `json:"modification_date" validate:"required"`
	IsDeleted        bool      `json:"is_deleted"`
}

// Validate implements validation.Validatable.
func (r *UpdateRevisionRequest) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			var f validation.Failures
			checkDateWindow(&f, r.CreationDate, "creation_date")
			checkDateWindow(&f, r.ModificationDate, "modification_date")
			return f
		},
		func() validation.Failures { return revisionDateOrder(r.CreationDate, r.ModificationDate) },
	)
}

// Label renders the revision for display, e.g. "revision 4 (deleted)".
func (r *UpdateRevisionRequest) Label() string {
	return revisionLabel(r.RevisionNumber, r.IsDeleted)
}

// identityKey normalizes the fields that make up a revision's identity:
// number, both dates at second precision and the deletion flag.
func (r *UpdateRevisionRequest) identityKey() string {
	return strings.Join([]string{
		strconv.Itoa(r.RevisionNumber),
		r.CreationDate.UTC().Truncate(time.Second).Format(time.RFC3339),
		r.ModificationDate.UTC().Truncate(time.Second).Format(time.RFC3339),
		strconv.FormatBool(r.IsDeleted),
	}, "\x00")
}

// Equal reports whether both requests describe the same revision state.
func (r *UpdateRevisionRequest) Equal(o *UpdateRevisionRequest) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.identityKey() == o.identityKey()
}

// Hash returns a stable hash of the revision identity.
func (r *UpdateRevisionRequest) Hash() uint64 {
	return xxhash.Sum64String(r.identityKey())
}

// ApplyTo copies the mutable fields onto an existing revision record.
func (r *UpdateRevisionRequest) ApplyTo(rev *model.Revision) {
	rev.RevisionNumber = r.RevisionNumber
	rev.CreationDate = r.CreationDate.UTC()
	rev.ModificationDate = r.ModificationDate.UTC()
	rev.IsDeleted = r.IsDeleted
}

// RevisionResponse is the API representation of a document revision.
type RevisionResponse struct {
	ID               string    `json:"id" validate:"required,uuid"`
	DocumentID       string    `json:"document_id" validate:"required,uuid"`
	RevisionNumber   int       `json:"revision_number" validate:"gte=1,lte=999999"`
	CreationDate     time.Time `json:"creation_date" validate:"required"`
	ModificationDate time.Time `json:"modification_date" validate:"required"`
	IsDeleted        bool      `json:"is_deleted"`
}

// Validate implements validation.Validatable.
func (r *RevisionResponse) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			var f validation.Failures
			checkDateWindow(&f, r.CreationDate, "creation_date")
			checkDateWindow(&f, r.ModificationDate, "modification_date")
			return f
		},
		func() validation.Failures { return revisionDateOrder(r.CreationDate, r.ModificationDate) },
	)
}

// Label renders the revision for display.
func (r *RevisionResponse) Label() string {
	return revisionLabel(r.RevisionNumber, r.IsDeleted)
}

func (r *RevisionResponse) identityKey() string {
	return strings.Join([]string{
		strconv.Itoa(r.RevisionNumber),
		r.CreationDate.UTC().Truncate(time.Second).Format(time.RFC3339),
		r.ModificationDate.UTC().Truncate(time.Second).Format(time.RFC3339),
		strconv.FormatBool(r.IsDeleted),
	}, "\x00")
}

// Equal reports whether both responses carry the same revision state,
// regardless of the record IDs.
func (r *RevisionResponse) Equal(o *RevisionResponse) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.identityKey() == o.identityKey()
}

// Hash returns a stable hash of the revision state.
func (r *RevisionResponse) Hash() uint64 {
	return xxhash.Sum64String(r.identityKey())
}

func newRevisionResponse(rev *model.Revision) *RevisionResponse {
	return &RevisionResponse{
		ID:               rev.ID,
		DocumentID:       rev.DocumentID,
		RevisionNumber:   rev.RevisionNumber,
		CreationDate:     rev.CreationDate,
		ModificationDate: rev.ModificationDate,
		IsDeleted:        rev.IsDeleted,
	}
}

// RevisionResponseFromModel builds the API representation of rev, refusing
// records that break the revision rules.
func RevisionResponseFromModel(rev *model.Revision) (*RevisionResponse, error) {
	if rev == nil {
		return nil, errors.New("revision is nil")
	}
	resp := newRevisionResponse(rev)
	if f := resp.Validate(); len(f) > 0 {
		return nil, fmt.Errorf("revision %s: %w", rev.ID, f)
	}
	return resp, nil
}
