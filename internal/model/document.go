package model

import "time"

// Document represents a stored file owned by a matter. FileName and Extension
// are kept separately; the stored object lives under StoragePath in the object
// store, and Checksum is the SHA-256 digest of its content as hex.
type Document struct {
	ID           string    `json:"id"`
	MatterID     string    `json:"matter_id"`
	FileName     string    `json:"file_name"`
	Extension    string    `json:"extension"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	Checksum     string    `json:"checksum"`
	Description  string    `json:"description,omitempty"`
	IsCheckedOut bool      `json:"is_checked_out"`
	StoragePath  string    `json:"storage_path"`
	CreatedAt    time.Time `json:"created_at"`
}
