package model_test

import (
	"testing"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHasCategory(t *testing.T) {
	Convey("Given an event referencing categories", t, func() {
		e := model.Event{CategoryIDs: []int64{10, 11}}

		Convey("Then referenced ids are reported", func() {
			So(e.HasCategory(10), ShouldBeTrue)
			So(e.HasCategory(11), ShouldBeTrue)
		})

		Convey("Then unreferenced ids are not", func() {
			So(e.HasCategory(12), ShouldBeFalse)
		})
	})

	Convey("Given an event with no categories", t, func() {
		So(model.Event{}.HasCategory(10), ShouldBeFalse)
	})
}

func TestDatePeriodValid(t *testing.T) {
	Convey("Given the supported period buckets", t, func() {
		periods := []model.DatePeriod{
			model.PeriodAll,
			model.PeriodUpcoming,
			model.PeriodOngoing,
			model.PeriodPast,
			model.PeriodToday,
			model.PeriodThisWeek,
		}

		Convey("Then each is valid", func() {
			for _, p := range periods {
				So(p.Valid(), ShouldBeTrue)
			}
		})
	})

	Convey("Given unknown period values", t, func() {
		So(model.DatePeriod("").Valid(), ShouldBeFalse)
		So(model.DatePeriod("someday").Valid(), ShouldBeFalse)
		So(model.DatePeriod("THIS-WEEK").Valid(), ShouldBeFalse)
	})
}

func TestDefaultFilterSpec(t *testing.T) {
	Convey("Given the default filter spec", t, func() {
		spec := model.DefaultFilterSpec()

		Convey("Then it restricts nothing", func() {
			So(spec.SearchText, ShouldEqual, "")
			So(spec.CategoryID, ShouldEqual, 0)
			So(spec.CreatorID, ShouldEqual, 0)
			So(spec.DatePeriod, ShouldEqual, model.PeriodAll)
		})
	})
}
