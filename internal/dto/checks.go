package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/LawUtilities/ADMS.API-sub003/internal/validation"
)

// checkDateWindow records a failure when t falls outside the accepted window.
// Zero dates are already reported by the tag stage and are skipped here.
func checkDateWindow(f *validation.Failures, t time.Time, field string) {
	if !t.IsZero() && !validation.ValidDate(t) {
		f.Add("must fall between 1980-01-01 and one minute from now", field)
	}
}

// documentBusinessRules applies the registry and bound checks shared by the
// document DTOs: storable file name, size cap, accepted MIME type.
func documentBusinessRules(fileName string, fileSize int64, mimeType string) validation.Failures {
	var f validation.Failures

	if fileName != "" {
		if !validation.ValidFileName(fileName) {
			f.Add(`must not contain path separators, control characters or any of \ / : * ? " < > |`, "file_name")
		} else if validation.IsReservedFileName(fileName) {
			f.Add("is a reserved device name", "file_name")
		}
	}

	if fileSize > validation.MaxFileSize {
		f.Add(fmt.Sprintf("must not exceed %s", humanize.IBytes(validation.MaxFileSize)), "file_size")
	}

	if mimeType != "" {
		if !validation.ValidMIMEShape(mimeType) {
			f.Add(`must look like "type/subtype"`, "mime_type")
		} else if !validation.MIMEKnown(mimeType) {
			f.Add("is not a MIME type the registry accepts", "mime_type")
		}
	}

	return f
}

// documentCrossChecks verifies that the declared extension agrees with the
// declared MIME type and with any extension embedded in the file name. Rules
// run only when both operands passed their own stages.
func documentCrossChecks(fileName, extension, mimeType string) validation.Failures {
	var f validation.Failures
	ext := strings.ToLower(strings.TrimSpace(extension))

	if validation.ExtensionAllowed(ext) && validation.MIMEKnown(mimeType) &&
		!validation.MIMEAllowedForExtension(ext, mimeType) {
		if canonical, ok := validation.CanonicalMIME(ext); ok {
			f.Add(fmt.Sprintf("is not registered for extension %q (expected %s)", ext, canonical),
				"mime_type", "extension")
		}
	}

	if validation.ValidFileName(fileName) && ext != "" {
		if i := strings.LastIndexByte(fileName, '.'); i >= 0 && i < len(fileName)-1 {
			suffix := strings.ToLower(fileName[i+1:])
			if suffix != ext && validation.ExtensionAllowed(suffix) {
				f.Add(fmt.Sprintf("embeds extension %q but %q was declared", suffix, ext),
					"file_name", "extension")
			}
		}
	}

	return f
}

// documentCustomRules covers the description conventions: a description is
// optional, but when present it must say something a file name does not.
func documentCustomRules(fileName, description string) validation.Failures {
	var f validation.Failures
	if description == "" {
		return f
	}

	if !validation.ContainsLetter(description) {
		f.Add("must contain at least one letter", "description")
	}
	if fileName != "" && strings.EqualFold(strings.TrimSpace(description), strings.TrimSpace(fileName)) {
		f.Add("must not repeat the file name", "description")
	}

	return f
}

// matterCustomRules rejects matter descriptions made purely of digits or
// punctuation.
func matterCustomRules(description string) validation.Failures {
	var f validation.Failures
	if description != "" && !validation.ContainsLetter(description) {
		f.Add("must contain at least one letter", "description")
	}
	return f
}

// revisionDateOrder enforces that a revision was not modified before it was
// created. Zero dates are reported by the tag stage.
func revisionDateOrder(created, modified time.Time) validation.Failures {
	var f validation.Failures
	if !created.IsZero() && !modified.IsZero() && modified.Before(created) {
		f.Add("must not precede the creation date", "modification_date", "creation_date")
	}
	return f
}
