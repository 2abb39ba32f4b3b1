package filter_test

import (
	"testing"
	"time"

	"github.com/ehsandc/Event-App-on-render/internal/domain/filter"
	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday

func fixtures() ([]model.Event, []model.Category, []model.User) {
	events := []model.Event{
		{
			ID:          1,
			Title:       "Jazz Night",
			Description: "An evening of live music",
			StartTime:   time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC),
			CategoryIDs: []int64{10},
			CreatedBy:   1,
		},
		{
			ID:          2,
			Title:       "City Marathon",
			Description: "Annual 42k run",
			StartTime:   time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC),
			CategoryIDs: []int64{11},
			CreatedBy:   2,
		},
		{
			ID:          3,
			Title:       "New Year Gala",
			Description: "Celebration across midnight",
			StartTime:   time.Date(2023, 12, 31, 22, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
			CategoryIDs: []int64{10, 11},
			CreatedBy:   2,
		},
	}
	categories := []model.Category{
		{ID: 10, Name: "Music"},
		{ID: 11, Name: "Sports"},
	}
	users := []model.User{
		{ID: 1, Name: "Jazzmin Lee"},
		{ID: 2, Name: "Pat Runner"},
	}
	return events, categories, users
}

func TestEventsIdentity(t *testing.T) {
	Convey("Given the default filter spec", t, func() {
		events, categories, users := fixtures()

		out := filter.Events(events, categories, users, model.DefaultFilterSpec(), now)

		Convey("Then the input passes through unchanged", func() {
			So(out, ShouldResemble, events)
		})
	})
}

func TestEventsSearch(t *testing.T) {
	Convey("Given events, categories and users", t, func() {
		events, categories, users := fixtures()

		Convey("When searching case-insensitively by title", func() {
			spec := model.FilterSpec{SearchText: "jAzZ", DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then the title match counts regardless of case", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 1)
			})

			Convey("Then an event matching only through its creator also counts", func() {
				quiet := model.Event{ID: 8, Title: "Quiet Evening", CreatedBy: 1}
				out = filter.Events(append(events, quiet), categories, users, spec, now)
				So(out, ShouldHaveLength, 2)
				So(out[1].ID, ShouldEqual, 8)
			})
		})

		Convey("When the query only matches a creator name", func() {
			spec := model.FilterSpec{SearchText: "jazzmin", DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then the creator's events match", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 1)
			})
		})

		Convey("When the query matches a referenced category name", func() {
			spec := model.FilterSpec{SearchText: "music", DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then every event referencing that category matches", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].ID, ShouldEqual, 1)
				So(out[1].ID, ShouldEqual, 3)
			})
		})

		Convey("When an event references a deleted category", func() {
			dangling := []model.Event{{ID: 9, Title: "Mystery", CategoryIDs: []int64{999}}}
			spec := model.FilterSpec{SearchText: "music", DatePeriod: model.PeriodAll}

			Convey("Then the unresolved id contributes no match text and nothing errors", func() {
				out := filter.Events(dangling, categories, users, spec, now)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the search text is empty", func() {
			spec := model.FilterSpec{SearchText: "   ", DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then everything matches", func() {
				So(out, ShouldHaveLength, len(events))
			})
		})
	})
}

func TestEventsCategoryAndCreator(t *testing.T) {
	Convey("Given events with category and creator references", t, func() {
		events, categories, users := fixtures()

		Convey("When filtering by category id", func() {
			spec := model.FilterSpec{CategoryID: 11, DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then only events referencing that category remain", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].ID, ShouldEqual, 2)
				So(out[1].ID, ShouldEqual, 3)
			})
		})

		Convey("When filtering by creator id", func() {
			spec := model.FilterSpec{CreatorID: 2, DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then only that creator's events remain", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].ID, ShouldEqual, 2)
				So(out[1].ID, ShouldEqual, 3)
			})
		})

		Convey("When combining predicates", func() {
			spec := model.FilterSpec{SearchText: "gala", CategoryID: 10, CreatorID: 2, DatePeriod: model.PeriodAll}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then the result is the AND of all of them", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 3)
			})
		})
	})
}

func TestEventsDatePeriods(t *testing.T) {
	Convey("Given a fixed reference time of 2024-01-01T00:00:00Z", t, func() {
		events, categories, users := fixtures()

		Convey("When filtering for upcoming events", func() {
			spec := model.FilterSpec{DatePeriod: model.PeriodUpcoming}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then an event starting 2023-12-31T23:00:00Z is excluded and 2024-01-02 included", func() {
				extra := append(events, model.Event{
					ID:        4,
					Title:     "Late Countdown",
					StartTime: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC),
				})
				out = filter.Events(extra, categories, users, spec, now)
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 1)
			})
		})

		Convey("When filtering for past events", func() {
			spec := model.FilterSpec{DatePeriod: model.PeriodPast}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then only events fully over are included", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 2)
			})
		})

		Convey("When filtering for ongoing events", func() {
			spec := model.FilterSpec{DatePeriod: model.PeriodOngoing}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then events spanning now are included", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 3)
			})
		})

		Convey("When filtering for today", func() {
			spec := model.FilterSpec{DatePeriod: model.PeriodToday}

			Convey("Then only events starting within [startOfToday, startOfTomorrow) match", func() {
				extra := append(events, model.Event{
					ID:        5,
					Title:     "Morning Yoga",
					StartTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
				})
				out := filter.Events(extra, categories, users, spec, now)
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, 5)
			})
		})

		Convey("When filtering for this week", func() {
			spec := model.FilterSpec{DatePeriod: model.PeriodThisWeek}
			out := filter.Events(events, categories, users, spec, now)

			Convey("Then the window is the Sunday-anchored 7-day span around now", func() {
				// 2024-01-01 is a Monday, so the week runs from
				// Sunday 2023-12-31 through Saturday 2024-01-06.
				So(out, ShouldHaveLength, 3)
			})
		})
	})
}
