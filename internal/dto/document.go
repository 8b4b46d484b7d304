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

// CreateDocumentRequest is the metadata payload for adding a document to a
// matter. The file bytes travel alongside it in the multipart body; Checksum
// is the client-computed SHA-256 digest of those bytes.
type CreateDocumentRequest struct {
	FileName     string `json:"file_name" validate:"required,max=128"`
	Extension    string `json:"extension" validate:"required,alphanum,fileext"`
	FileSize     int64  `json:"file_size" validate:"gt=0"`
	MimeType     string `json:"mime_type" validate:"required"`
	Checksum     string `json:"checksum" validate:"required,checksum"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=512"`
	IsCheckedOut bool   `json:"is_checked_out"`
}

// Validate implements validation.Validatable.
func (r *CreateDocumentRequest) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures { return documentBusinessRules(r.FileName, r.FileSize, r.MimeType) },
		func() validation.Failures { return documentCrossChecks(r.FileName, r.Extension, r.MimeType) },
		func() validation.Failures { return documentCustomRules(r.FileName, r.Description) },
	)
}

// FullFileName returns the display name including the extension.
func (r *CreateDocumentRequest) FullFileName() string {
	return fullFileName(r.FileName, r.Extension)
}

// FormattedFileSize renders the declared size in binary units.
func (r *CreateDocumentRequest) FormattedFileSize() string {
	return formattedFileSize(r.FileSize)
}

// Status describes the checkout state for display.
func (r *CreateDocumentRequest) Status() string {
	return documentStatus(r.IsCheckedOut)
}

// identityKey normalizes the fields that make up a document's content
// identity: name, extension, digest and size.
func (r *CreateDocumentRequest) identityKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.FileName)),
		strings.ToLower(strings.TrimSpace(r.Extension)),
		strings.ToLower(r.Checksum),
		strconv.FormatInt(r.FileSize, 10),
	}, "\x00")
}

// Equal reports whether both requests describe the same document content.
func (r *CreateDocumentRequest) Equal(o *CreateDocumentRequest) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.identityKey() == o.identityKey()
}

// Hash returns a stable hash of the content identity. Requests that are Equal
// hash to the same value.
func (r *CreateDocumentRequest) Hash() uint64 {
	return xxhash.Sum64String(r.identityKey())
}

// ToModel converts the request into a Document owned by matterID, normalizing
// case and whitespace. ID, storage path and creation time are assigned by the
// service.
func (r *CreateDocumentRequest) ToModel(matterID string) *model.Document {
	return &model.Document{
		MatterID:     matterID,
		FileName:     strings.TrimSpace(r.FileName),
		Extension:    strings.ToLower(strings.TrimSpace(r.Extension)),
		FileSize:     r.FileSize,
		MimeType:     strings.ToLower(strings.TrimSpace(r.MimeType)),
		Checksum:     strings.ToLower(r.Checksum),
		Description:  strings.TrimSpace(r.Description),
		IsCheckedOut: r.IsCheckedOut,
	}
}

// DocumentResponse is the API representation of a stored document.
type DocumentResponse struct {
	ID           string    `json:"id" validate:"required,uuid"`
	MatterID     string    `json:"matter_id" validate:"required,uuid"`
	FileName     string    `json:"file_name" validate:"required,max=128"`
	Extension    string    `json:"extension" validate:"required,alphanum,fileext"`
	FileSize     int64     `json:"file_size" validate:"gt=0"`
	MimeType     string    `json:"mime_type" validate:"required"`
	Checksum     string    `json:"checksum" validate:"required,checksum"`
	Description  string    `json:"description,omitempty" validate:"omitempty,max=512"`
	IsCheckedOut bool      `json:"is_checked_out"`
	CreatedAt    time.Time `json:"created_at" validate:"required"`
}

// Validate implements validation.Validatable.
func (r *DocumentResponse) Validate() validation.Failures {
	return validation.Pipeline(
		func() validation.Failures { return validation.Struct(r) },
		func() validation.Failures {
			f := documentBusinessRules(r.FileName, r.FileSize, r.MimeType)
			checkDateWindow(&f, r.CreatedAt, "created_at")
			return f
		},
		func() validation.Failures { return documentCrossChecks(r.FileName, r.Extension, r.MimeType) },
		func() validation.Failures { return documentCustomRules(r.FileName, r.Description) },
	)
}

// FullFileName returns the display name including the extension.
func (r *DocumentResponse) FullFileName() string {
	return fullFileName(r.FileName, r.Extension)
}

// FormattedFileSize renders the stored size in binary units.
func (r *DocumentResponse) FormattedFileSize() string {
	return formattedFileSize(r.FileSize)
}

// Status describes the checkout state for display.
func (r *DocumentResponse) Status() string {
	return documentStatus(r.IsCheckedOut)
}

func (r *DocumentResponse) identityKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.FileName)),
		strings.ToLower(strings.TrimSpace(r.Extension)),
		strings.ToLower(r.Checksum),
		strconv.FormatInt(r.FileSize, 10),
	}, "\x00")
}

// Equal reports whether both responses carry the same document content,
// regardless of the record IDs.
func (r *DocumentResponse) Equal(o *DocumentResponse) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.identityKey() == o.identityKey()
}

// Hash returns a stable hash of the content identity.
func (r *DocumentResponse) Hash() uint64 {
	return xxhash.Sum64String(r.identityKey())
}

// newDocumentResponse maps a model without validating it. Factories validate
// the assembled value.
func newDocumentResponse(d *model.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID,
		MatterID:     d.MatterID,
		FileName:     d.FileName,
		Extension:    d.Extension,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		Checksum:     d.Checksum,
		Description:  d.Description,
		IsCheckedOut: d.IsCheckedOut,
		CreatedAt:    d.CreatedAt,
	}
}

// DocumentResponseFromModel builds the API representation of d, refusing
// records that break the document rules.
func DocumentResponseFromModel(d *model.Document) (*DocumentResponse, error) {
	if d == nil {
		return nil, errors.New("document is nil")
	}
	resp := newDocumentResponse(d)
	if f := resp.Validate(); len(f) > 0 {
		return nil, fmt.Errorf("document %s: %w", d.ID, f)
	}
	return resp, nil
}
