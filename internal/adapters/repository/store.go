// Package repository persists the local override store: everything the
// user changed on top of the read-only seed document.
//
// The store holds a small set of named entries, each a JSON-encoded
// array, mirroring the original browser-storage layout:
//
//	local_events         locally added events (newest first)
//	local_edits          full replacement records keyed by id
//	deleted_event_ids    tombstones hiding seed events
//	local_categories     locally added categories
//	deleted_category_ids tombstones hiding seed categories
//
// Every mutation rewrites exactly one entry atomically. A corrupt entry
// is read back as an empty collection, never surfaced as an error.
package repository

import (
	"context"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// Persisted entry keys.
const (
	keyLocalEvents        = "local_events"
	keyLocalEdits         = "local_edits"
	keyDeletedEventIDs    = "deleted_event_ids"
	keyLocalCategories    = "local_categories"
	keyDeletedCategoryIDs = "deleted_category_ids"
)

// Store provides read/write access to the local override collections.
// Referential and naming validation lives with the caller, which owns
// the reconciled view; the store only guards its own record sets.
type Store interface {
	// AddEvent persists a locally created event, assigning its id.
	AddEvent(ctx context.Context, e model.Event) (model.Event, error)

	// ReplaceLocalEvent records a full-replacement edit for a locally
	// added event. Returns ErrEventNotFound for ids outside the
	// local-added set; seed records cannot be edited through the store.
	ReplaceLocalEvent(ctx context.Context, id int64, replacement model.Event) error

	// RemoveLocalEvent drops a locally added event and any edit overlay
	// recorded for it. Returns ErrEventNotFound if the id is unknown.
	RemoveLocalEvent(ctx context.Context, id int64) error

	// TombstoneEvent records a deletion marker for a seed event id.
	// Recording the same id twice is a no-op.
	TombstoneEvent(ctx context.Context, id int64) error

	// AddCategory persists a locally created category, assigning its id
	// and marking it custom.
	AddCategory(ctx context.Context, c model.Category) (model.Category, error)

	// RenameCategory renames a locally added category.
	// Returns ErrCategoryNotFound for ids outside the local set.
	RenameCategory(ctx context.Context, id int64, newName string) error

	// RemoveCategory drops a locally added category.
	// Returns ErrCategoryNotFound if the id is unknown.
	RemoveCategory(ctx context.Context, id int64) error

	// TombstoneCategory records a deletion marker for a seed category id.
	TombstoneCategory(ctx context.Context, id int64) error

	// ListLocalEvents returns locally added events, newest first.
	ListLocalEvents(ctx context.Context) ([]model.Event, error)

	// ListLocalEdits returns recorded edits keyed by event id.
	ListLocalEdits(ctx context.Context) (map[int64]model.Event, error)

	// ListDeletedEventIDs returns the event tombstone set.
	ListDeletedEventIDs(ctx context.Context) ([]int64, error)

	// ListLocalCategories returns locally added categories in insertion order.
	ListLocalCategories(ctx context.Context) ([]model.Category, error)

	// ListDeletedCategoryIDs returns the category tombstone set.
	ListDeletedCategoryIDs(ctx context.Context) ([]int64, error)

	// Close releases the underlying database handle.
	Close() error
}
