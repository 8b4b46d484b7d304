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

// CreateMatterRequest is the payload for opening a new matter.
type CreateMatterRequest struct {
	Description  string    `json:"description" validate:"required,min=3,max=128"`
	IsArchived   bool      `json:"is_archived"`
	CreationDate time.Time `json:"creation_date" validate:"required"`
}

// Validate implements validation.Validatable.
func (r *CreateMatterRequest) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			var f validation.Failures
			checkDateWindow(&f, r.CreationDate, "creation_date")
			return f
		},
		func() validation.Failures { return matterCustomRules(r.Description) },
	)
}

// Status describes the archive state for display.
func (r *CreateMatterRequest) Status() string {
	return matterStatus(r.IsArchived)
}

// LocalCreationDate renders the creation date in the server's locale.
func (r *CreateMatterRequest) LocalCreationDate() string {
	return r.CreationDate.Local().Format("02 Jan 2006 15:04")
}

// identityKey normalizes the fields that identify a matter before it has an
// ID: description, archive flag and creation date at second precision.
func (r *CreateMatterRequest) identityKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.Description)),
		strconv.FormatBool(r.IsArchived),
		r.CreationDate.UTC().Truncate(time.Second).Format(time.RFC3339),
	}, "\x00")
}

// Equal reports whether both requests describe the same matter.
func (r *CreateMatterRequest) Equal(o *CreateMatterRequest) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.identityKey() == o.identityKey()
}

// Hash returns a stable hash of the matter identity.
func (r *CreateMatterRequest) Hash() uint64 {
	return xxhash.Sum64String(r.identityKey())
}

// ToModel converts the request into a Matter. The ID is assigned by the
// service.
func (r *CreateMatterRequest) ToModel() *model.Matter {
	return &model.Matter{
		Description:  strings.TrimSpace(r.Description),
		IsArchived:   r.IsArchived,
		CreationDate: r.CreationDate.UTC(),
	}
}

// MatterResponse is the API representation of a matter without its
// collections.
type MatterResponse struct {
	ID           string    `json:"id" validate:"required,uuid"`
	Description  string    `json:"description" validate:"required,min=3,max=128"`
	IsArchived   bool      `json:"is_archived"`
	CreationDate time.Time `json:"creation_date" validate:"required"`
}

// Validate implements validation.Validatable.
func (r *MatterResponse) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			var f validation.Failures
			checkDateWindow(&f, r.CreationDate, "creation_date")
			return f
		},
		func() validation.Failures { return matterCustomRules(r.Description) },
	)
}

// Status describes the archive state for display.
func (r *MatterResponse) Status() string {
	return matterStatus(r.IsArchived)
}

// LocalCreationDate renders the creation date in the server's locale.
func (r *MatterResponse) LocalCreationDate() string {
	return r.CreationDate.Local().Format("02 Jan 2006 15:04")
}

// Equal reports whether both responses refer to the same matter record.
func (r *MatterResponse) Equal(o *MatterResponse) bool {
	if r == nil || o == nil {
		return r == o
	}
	return strings.EqualFold(r.ID, o.ID)
}

// Hash returns a stable hash of the record identity.
func (r *MatterResponse) Hash() uint64 {
	return xxhash.Sum64String(strings.ToLower(r.ID))
}

func newMatterResponse(m *model.Matter) *MatterResponse {
	return &MatterResponse{
		ID:           m.ID,
		Description:  m.Description,
		IsArchived:   m.IsArchived,
		CreationDate: m.CreationDate,
	}
}

// MatterResponseFromModel builds the API representation of m, refusing
// records that break the matter rules.
func MatterResponseFromModel(m *model.Matter) (*MatterResponse, error) {
	if m == nil {
		return nil, errors.New("matter is nil")
	}
	resp := newMatterResponse(m)
	if f := resp.Validate(); len(f) > 0 {
		return nil, fmt.Errorf("matter %s: %w", m.ID, f)
	}
	return resp, nil
}

// MatterWithDocumentsResponse is the aggregate view of a matter: the matter
// fields plus its documents and activity log.
type MatterWithDocumentsResponse struct {
	ID           string             `json:"id" validate:"required,uuid"`
	Description  string             `json:"description" validate:"required,min=3,max=128"`
	IsArchived   bool               `json:"is_archived"`
	CreationDate time.Time          `json:"creation_date" validate:"required"`
	Documents    []DocumentResponse `json:"documents"`
	Activities   []ActivityResponse `json:"activities"`
}

// Validate implements validation.Validatable.
func (r *MatterWithDocumentsResponse) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			var f validation.Failures
			checkDateWindow(&f, r.CreationDate, "creation_date")
			return f
		},
		r.collectionChecks,
		func() validation.Failures { return matterCustomRules(r.Description) },
	)
}

// collectionChecks validates the owned collections element by element plus
// the rules that span them: document ownership, duplicate document IDs and
// activity timestamps relative to the matter.
func (r *MatterWithDocumentsResponse) collectionChecks() validation.Failures {
	var f validation.Failures

	if r.Documents == nil {
		f.Add("must be present, empty is allowed", "documents")
	}
	if r.Activities == nil {
		f.Add("must be present, empty is allowed", "activities")
	}

	seen := make(map[string]int, len(r.Documents))
	for i := range r.Documents {
		d := &r.Documents[i]
		prefix := fmt.Sprintf("documents[%d].", i)
		f = append(f, d.Validate().Prefixed(prefix)...)

		if d.MatterID != "" && r.ID != "" && !strings.EqualFold(d.MatterID, r.ID) {
			f.Add("must reference the enclosing matter", prefix+"matter_id", "id")
		}

		id := strings.ToLower(d.ID)
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			f.Add(fmt.Sprintf("duplicates the ID of documents[%d]", first), prefix+"id")
			continue
		}
		seen[id] = i
	}

	for i := range r.Activities {
		a := &r.Activities[i]
		prefix := fmt.Sprintf("activities[%d].", i)
		f = append(f, a.Validate().Prefixed(prefix)...)

		if !a.OccurredAt.IsZero() && !r.CreationDate.IsZero() && a.OccurredAt.Before(r.CreationDate) {
			f.Add("precedes the matter creation date", prefix+"occurred_at", "creation_date")
		}
	}

	return f
}

// Status describes the archive state for display.
func (r *MatterWithDocumentsResponse) Status() string {
	return matterStatus(r.IsArchived)
}

// DocumentCount returns the number of documents on the matter.
func (r *MatterWithDocumentsResponse) DocumentCount() int {
	return len(r.Documents)
}

// TotalFileSize sums the document sizes in bytes.
func (r *MatterWithDocumentsResponse) TotalFileSize() int64 {
	var total int64
	for i := range r.Documents {
		total += r.Documents[i].FileSize
	}
	return total
}

// FormattedTotalFileSize renders TotalFileSize in binary units.
func (r *MatterWithDocumentsResponse) FormattedTotalFileSize() string {
	return formattedFileSize(r.TotalFileSize())
}

// Equal reports whether both aggregates refer to the same matter record.
func (r *MatterWithDocumentsResponse) Equal(o *MatterWithDocumentsResponse) bool {
	if r == nil || o == nil {
		return r == o
	}
	return strings.EqualFold(r.ID, o.ID)
}

// Hash returns a stable hash of the record identity.
func (r *MatterWithDocumentsResponse) Hash() uint64 {
	return xxhash.Sum64String(strings.ToLower(r.ID))
}

// NewMatterWithDocuments assembles the aggregate response for a matter, its
// documents and its activity log, refusing aggregates that break the rules.
func NewMatterWithDocuments(m *model.Matter, docs []model.Document, activities []model.Activity) (*MatterWithDocumentsResponse, error) {
	if m == nil {
		return nil, errors.New("matter is nil")
	}

	resp := &MatterWithDocumentsResponse{
		ID:           m.ID,
		Description:  m.Description,
		IsArchived:   m.IsArchived,
		CreationDate: m.CreationDate,
		Documents:    make([]DocumentResponse, 0, len(docs)),
		Activities:   make([]ActivityResponse, 0, len(activities)),
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, *newDocumentResponse(&docs[i]))
	}
	for i := range activities {
		resp.Activities = append(resp.Activities, *newActivityResponse(&activities[i]))
	}

	if f := resp.Validate(); len(f) > 0 {
		return nil, fmt.Errorf("assemble matter %s: %w", m.ID, f)
	}
	return resp, nil
}
