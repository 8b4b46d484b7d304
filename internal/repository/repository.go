// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory;
// interfaces hold strictly persistence operations, no business logic.
package repository

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
