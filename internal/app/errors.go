package service

import (
	"errors"

	repository "github.com/ehsandc/Event-App-on-render/internal/adapters/repository"
)

// Sentinel kinds for rejected operations. No partial mutation occurs
// when any of these is returned.
var (
	// ErrEventNotFound marks an edit/delete target absent from the
	// addressable record set. Seed events are not addressable for edits.
	ErrEventNotFound = repository.ErrEventNotFound

	// ErrCategoryNotFound marks an unknown category id.
	ErrCategoryNotFound = repository.ErrCategoryNotFound

	// ErrInvalidEvent marks an event failing basic validation, e.g. a
	// missing title or an end time not after the start time.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidName marks an empty category name.
	ErrInvalidName = errors.New("invalid category name")

	// ErrDuplicateName marks a case-insensitive name collision with an
	// active category.
	ErrDuplicateName = errors.New("category name already exists")

	// ErrCategoryInUse marks a deletion attempt while events still
	// reference the category.
	ErrCategoryInUse = errors.New("category in use by one or more events")

	// ErrCategoryReadOnly marks a rename attempt on a seed category.
	ErrCategoryReadOnly = errors.New("seed category is read-only")
)
