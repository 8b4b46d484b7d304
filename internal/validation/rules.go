package validation

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Field bounds shared by the DTOs. Values mirror the database schema limits.
const (
	MaxFileNameLength    = 128
	MaxDescriptionLength = 512
	MinMatterDescription = 3
	MaxMatterDescription = 128
	MinRevisionNumber    = 1
	MaxRevisionNumber    = 999999
	MaxFileSize          = 256 << 20 // 256 MiB
	ChecksumLength       = 64
)

// Date window accepted for creation and modification timestamps. FutureSkew
// tolerates client clocks running slightly ahead.
var (
	MinDate    = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	FutureSkew = time.Minute
)

// allowedExtensions maps each accepted extension to the MIME types it may be
// declared with. The first entry is the canonical type for the extension.
var allowedExtensions = map[string][]string{
	"pdf":  {"application/pdf"},
	"doc":  {"application/msword"},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"xls":  {"application/vnd.ms-excel"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	"ppt":  {"application/vnd.ms-powerpoint"},
	"pptx": {"application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	"txt":  {"text/plain"},
	"rtf":  {"application/rtf", "text/rtf"},
	"odt":  {"application/vnd.oasis.opendocument.text"},
	"csv":  {"text/csv"},
	"htm":  {"text/html"},
	"html": {"text/html"},
	"msg":  {"application/vnd.ms-outlook"},
	"eml":  {"message/rfc822"},
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"png":  {"image/png"},
	"gif":  {"image/gif"},
	"tif":  {"image/tiff"},
	"tiff": {"image/tiff"},
}

// reservedFileNames are device names that legacy clients cannot store or
// retrieve; they are rejected regardless of extension.
var reservedFileNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

var (
	checksumRe = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
	mimeRe     = regexp.MustCompile(`^[a-z0-9][a-z0-9!#$&^_.+-]*/[a-z0-9][a-z0-9!#$&^_.+-]*$`)
	// Characters that cannot appear in a stored file name: path separators,
	// control characters and the usual filesystem-reserved punctuation.
	invalidFileNameChars = "/\\:*?\"<>|"
	letterRe             = regexp.MustCompile(`[a-zA-Z]`)
)

// ExtensionAllowed reports whether ext (without leading dot, any case) is in
// the accepted-extension registry.
func ExtensionAllowed(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}

// AllowedExtensions returns the accepted extensions in sorted order, for
// error messages and documentation.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// MIMEAllowedForExtension reports whether mimeType is an accepted declaration
// for ext. Unknown extensions are never accepted.
func MIMEAllowedForExtension(ext, mimeType string) bool {
	accepted, ok := allowedExtensions[strings.ToLower(ext)]
	if !ok {
		return false
	}
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	for _, m := range accepted {
		if m == mt {
			return true
		}
	}
	return false
}

// CanonicalMIME returns the canonical MIME type for an accepted extension and
// false for extensions outside the registry.
func CanonicalMIME(ext string) (string, bool) {
	accepted, ok := allowedExtensions[strings.ToLower(ext)]
	if !ok || len(accepted) == 0 {
		return "", false
	}
	return accepted[0], true
}

// MIMEKnown reports whether mimeType is declared for any accepted extension.
func MIMEKnown(mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	for _, accepted := range allowedExtensions {
		for _, m := range accepted {
			if m == mt {
				return true
			}
		}
	}
	return false
}

// ValidMIMEShape reports whether mimeType looks like "type/subtype".
func ValidMIMEShape(mimeType string) bool {
	return mimeRe.MatchString(strings.ToLower(strings.TrimSpace(mimeType)))
}

// ValidChecksum reports whether s is a 64-character hexadecimal SHA-256
// digest. Case is not significant.
func ValidChecksum(s string) bool {
	return checksumRe.MatchString(s)
}

// ValidFileName reports whether name is storable: non-blank, free of path
// separators, reserved punctuation and control characters.
func ValidFileName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if strings.ContainsAny(name, invalidFileNameChars) {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// IsReservedFileName reports whether name (ignoring case and any extension
// suffix) is a reserved device name.
func IsReservedFileName(name string) bool {
	base := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	_, ok := reservedFileNames[base]
	return ok
}

// ContainsLetter reports whether s has at least one ASCII letter. Descriptions
// made purely of digits or punctuation are rejected by the custom rules.
func ContainsLetter(s string) bool {
	return letterRe.MatchString(s)
}

// ValidDate reports whether t falls inside the accepted window:
// [MinDate, now+FutureSkew]. The zero value is not valid.
func ValidDate(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if t.Before(MinDate) {
		return false
	}
	return !t.After(time.Now().Add(FutureSkew))
}
