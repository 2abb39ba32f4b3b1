package reconcile_test

import (
	"testing"
	"time"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
	"github.com/ehsandc/Event-App-on-render/internal/domain/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

func seedEvents() []model.Event {
	return []model.Event{
		{ID: 1, Title: "Jazz Night", StartTime: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Marathon", StartTime: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Art Expo", StartTime: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestEvents(t *testing.T) {
	Convey("Given seed events and local overrides", t, func() {
		seed := seedEvents()

		Convey("When there are no overrides", func() {
			out := reconcile.Events(seed, nil, nil, nil)

			Convey("Then the seed events pass through in order, tagged seed-origin", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].ID, ShouldEqual, 1)
				So(out[1].ID, ShouldEqual, 2)
				So(out[2].ID, ShouldEqual, 3)
				for _, e := range out {
					So(e.Origin, ShouldEqual, model.OriginSeed)
				}
			})
		})

		Convey("When local events were added", func() {
			added := []model.Event{
				{ID: 200, Title: "Pottery Class"},
				{ID: 100, Title: "Book Club"},
			}
			out := reconcile.Events(seed, added, nil, nil)

			Convey("Then local additions come first, each group keeping its order", func() {
				So(out, ShouldHaveLength, 5)
				So(out[0].ID, ShouldEqual, 200)
				So(out[1].ID, ShouldEqual, 100)
				So(out[2].ID, ShouldEqual, 1)
				So(out[0].Origin, ShouldEqual, model.OriginLocal)
				So(out[2].Origin, ShouldEqual, model.OriginSeed)
			})
		})

		Convey("When an edit is recorded for an id", func() {
			edited := map[int64]model.Event{
				2: {ID: 2, Title: "Marathon (rescheduled)"},
			}
			out := reconcile.Events(seed, nil, edited, nil)

			Convey("Then the edited version appears exactly once, never both", func() {
				So(out, ShouldHaveLength, 3)
				var matches int
				for _, e := range out {
					if e.ID == 2 {
						matches++
						So(e.Title, ShouldEqual, "Marathon (rescheduled)")
					}
				}
				So(matches, ShouldEqual, 1)
			})

			Convey("Then the substituted record keeps its position and origin", func() {
				So(out[1].ID, ShouldEqual, 2)
				So(out[1].Origin, ShouldEqual, model.OriginSeed)
			})
		})

		Convey("When ids are tombstoned", func() {
			added := []model.Event{{ID: 100, Title: "Book Club"}}
			out := reconcile.Events(seed, added, nil, []int64{1, 100})

			Convey("Then no event with a tombstoned id survives, regardless of origin", func() {
				So(out, ShouldHaveLength, 2)
				for _, e := range out {
					So(e.ID, ShouldNotEqual, 1)
					So(e.ID, ShouldNotEqual, 100)
				}
			})
		})

		Convey("When called twice with identical inputs", func() {
			added := []model.Event{{ID: 100, Title: "Book Club"}}
			edited := map[int64]model.Event{3: {Title: "Art Expo 2024"}}
			deleted := []int64{2}

			first := reconcile.Events(seed, added, edited, deleted)
			second := reconcile.Events(seed, added, edited, deleted)

			Convey("Then the outputs are deep-equal", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When an edit record carries a mismatched id", func() {
			edited := map[int64]model.Event{3: {ID: 999, Title: "Renamed"}}
			out := reconcile.Events(seed, nil, edited, nil)

			Convey("Then the base id wins; edits cannot change identity", func() {
				So(out[2].ID, ShouldEqual, 3)
				So(out[2].Title, ShouldEqual, "Renamed")
			})
		})
	})
}

func TestCategories(t *testing.T) {
	Convey("Given seed and local categories", t, func() {
		seed := []model.Category{
			{ID: 10, Name: "Music"},
			{ID: 11, Name: "Sports"},
		}
		local := []model.Category{
			{ID: 1000, Name: "Workshops", IsCustom: true},
		}

		Convey("When reconciled without tombstones", func() {
			out := reconcile.Categories(seed, local, nil)

			Convey("Then seed categories come first, locals after", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].ID, ShouldEqual, 10)
				So(out[2].ID, ShouldEqual, 1000)
			})
		})

		Convey("When a seed category is tombstoned", func() {
			out := reconcile.Categories(seed, local, []int64{11})

			Convey("Then it disappears from the reconciled view", func() {
				So(out, ShouldHaveLength, 2)
				for _, c := range out {
					So(c.ID, ShouldNotEqual, 11)
				}
			})
		})
	})
}
