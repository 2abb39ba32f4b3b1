// Package model contains domain models passed between layers.
package model

import "time"

// Origin tags where a reconciled record came from. Only local-origin
// events accept edits and direct removal; seed-origin events are
// tombstoned instead.
type Origin string

// Record origins.
const (
	OriginSeed  Origin = "seed"
	OriginLocal Origin = "local"
)

// Event represents a listed event, either shipped with the seed
// document or added locally.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Image       string    `json:"image,omitempty"`
	CategoryIDs []int64   `json:"categoryIds"`
	CreatedBy   int64     `json:"createdBy"`
	Origin      Origin    `json:"origin,omitempty"`
}

// HasCategory reports whether the event references the given category id.
func (e Event) HasCategory(id int64) bool {
	for _, cid := range e.CategoryIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// Category groups events. Seed categories are read-only; locally added
// ones carry IsCustom and may be renamed or deleted while unused.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"isCustom,omitempty"`
}

// User is a read-only creator reference from the seed document.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// SeedData mirrors the top-level shape of the seed JSON document.
type SeedData struct {
	Events     []Event    `json:"events"`
	Categories []Category `json:"categories"`
	Users      []User     `json:"users"`
}

// DatePeriod buckets events relative to a reference time.
type DatePeriod string

// Supported date periods.
const (
	PeriodAll      DatePeriod = "all"
	PeriodUpcoming DatePeriod = "upcoming"
	PeriodOngoing  DatePeriod = "ongoing"
	PeriodPast     DatePeriod = "past"
	PeriodToday    DatePeriod = "today"
	PeriodThisWeek DatePeriod = "this-week"
)

// Valid reports whether the period is one of the supported buckets.
func (p DatePeriod) Valid() bool {
	switch p {
	case PeriodAll, PeriodUpcoming, PeriodOngoing, PeriodPast, PeriodToday, PeriodThisWeek:
		return true
	}
	return false
}

// FilterSpec selects the visible subset of reconciled events.
// A zero CategoryID or CreatorID means "all".
type FilterSpec struct {
	SearchText string     `json:"searchText"`
	CategoryID int64      `json:"categoryId"`
	CreatorID  int64      `json:"creatorId"`
	DatePeriod DatePeriod `json:"datePeriod"`
}

// DefaultFilterSpec returns the spec that matches every event.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{DatePeriod: PeriodAll}
}
