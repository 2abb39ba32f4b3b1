// Package filter computes the visible subset of reconciled events for a
// filter specification. All functions are pure and order-preserving;
// the reference time is injected so date buckets stay testable.
package filter

import (
	"strings"
	"time"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

const daysPerWeek = 7

// Events returns the events matching every predicate of spec, in input
// order. Category and user references that resolve to nothing simply
// contribute no match text.
func Events(events []model.Event, categories []model.Category, users []model.User, spec model.FilterSpec, now time.Time) []model.Event {
	catNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}
	userNames := make(map[int64]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	query := strings.ToLower(strings.TrimSpace(spec.SearchText))

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !matchesSearch(e, query, catNames, userNames) {
			continue
		}
		if spec.CategoryID != 0 && !e.HasCategory(spec.CategoryID) {
			continue
		}
		if spec.CreatorID != 0 && e.CreatedBy != spec.CreatorID {
			continue
		}
		if !matchesPeriod(e, spec.DatePeriod, now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesSearch checks the query against title, description, referenced
// category names and the creator name, case-insensitively.
func matchesSearch(e model.Event, query string, catNames, userNames map[int64]string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	for _, id := range e.CategoryIDs {
		if name, ok := catNames[id]; ok && strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	if name, ok := userNames[e.CreatedBy]; ok && strings.Contains(strings.ToLower(name), query) {
		return true
	}
	return false
}

func matchesPeriod(e model.Event, period model.DatePeriod, now time.Time) bool {
	switch period {
	case model.PeriodUpcoming:
		return e.StartTime.After(now)
	case model.PeriodPast:
		return e.EndTime.Before(now)
	case model.PeriodOngoing:
		return !e.StartTime.After(now) && !e.EndTime.Before(now)
	case model.PeriodToday:
		day := startOfDay(now)
		return inWindow(e.StartTime, day, day.AddDate(0, 0, 1))
	case model.PeriodThisWeek:
		week := startOfWeek(now)
		return inWindow(e.StartTime, week, week.AddDate(0, 0, daysPerWeek))
	default:
		// PeriodAll and anything unrecognized match everything.
		return true
	}
}

// inWindow reports t in the half-open interval [from, until).
func inWindow(t, from, until time.Time) bool {
	return !t.Before(from) && t.Before(until)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek anchors the 7-day window at the most recent weekday
// index 0 (Sunday) relative to t.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}
