package dto

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// fullFileName joins a file name and extension for display. A name that
// already carries the extension is returned as is.
func fullFileName(name, ext string) string {
	name = strings.TrimSpace(name)
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasSuffix(strings.ToLower(name), "."+ext) {
		return name
	}
	return name + "." + ext
}

// formattedFileSize renders a byte count in binary units ("4.2 MiB").
// Negative sizes render as zero.
func formattedFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

func documentStatus(checkedOut bool) string {
	if checkedOut {
		return "checked out"
	}
	return "available"
}

func matterStatus(archived bool) string {
	if archived {
		return "archived"
	}
	return "active"
}

func revisionLabel(number int, deleted bool) string {
	if deleted {
		return fmt.Sprintf("revision %d (deleted)", number)
	}
	return fmt.Sprintf("revision %d", number)
}
