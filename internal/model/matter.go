package model

import "time"

// Matter represents a legal matter: the container every document belongs to.
// This is a pure domain model with no database-specific dependencies or tags.
type Matter struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	IsArchived   bool      `json:"is_archived"`
	CreationDate time.Time `json:"creation_date"`
}
