package schedule_test

import (
	"testing"

	"github.com/eventease/insights/internal/domain/model"
	schedule "github.com/eventease/insights/internal/domain/schedule"
	"github.com/eventease/insights/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func itemTypes(plan types.SchedulePlan) []types.ItemType {
	out := make([]types.ItemType, len(plan.Schedule))
	for i, item := range plan.Schedule {
		out[i] = item.Type
	}
	return out
}

func TestBuild(t *testing.T) {
	Convey("Given an event to schedule", t, func() {
		Convey("When no constraints are supplied", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{})

			Convey("Then the default agenda shape is produced", func() {
				So(itemTypes(plan), ShouldResemble, []types.ItemType{
					types.ItemRegistration,
					types.ItemOpening,
					types.ItemSession,
					types.ItemBreak,
					types.ItemSession,
					types.ItemBreak,
					types.ItemSession,
					types.ItemClosing,
				})
			})

			Convey("Then blocks start at the default time", func() {
				So(plan.Schedule[0].Time, ShouldEqual, "09:00")
				So(plan.Schedule[0].Duration, ShouldEqual, 15)
				So(plan.Schedule[1].Time, ShouldEqual, "09:15")
			})

			Convey("Then the closing block ends at start plus duration", func() {
				// 09:00 + 4h - 15min
				closing := plan.Schedule[len(plan.Schedule)-1]
				So(closing.Type, ShouldEqual, types.ItemClosing)
				So(closing.Time, ShouldEqual, "12:45")
			})

			Convey("Then sessions run back to back", func() {
				// Registration 15 + opening 15, then 45-minute sessions with
				// 15-minute breaks.
				So(plan.Schedule[2].Time, ShouldEqual, "09:30")
				So(plan.Schedule[2].Duration, ShouldEqual, 45)
				So(plan.Schedule[3].Time, ShouldEqual, "10:15")
				So(plan.Schedule[4].Time, ShouldEqual, "10:30")
			})
		})

		Convey("When the event is a workshop", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "Workshop"}, 15, schedule.Constraints{})

			Convey("Then two long hands-on sessions replace the three talks", func() {
				So(itemTypes(plan), ShouldResemble, []types.ItemType{
					types.ItemRegistration,
					types.ItemOpening,
					types.ItemSession,
					types.ItemBreak,
					types.ItemSession,
					types.ItemClosing,
				})
				So(plan.Schedule[2].Duration, ShouldEqual, 90)
				So(plan.Schedule[2].Activity, ShouldEqual, "Workshop Session 1")
			})
		})

		Convey("When the category mentions training", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "corporate training"}, 15, schedule.Constraints{})

			So(plan.Schedule[2].Duration, ShouldEqual, 90)
		})

		Convey("When the event is a conference", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "Tech Conference"}, 100, schedule.Constraints{})

			Convey("Then the opening block is extended", func() {
				So(plan.Schedule[1].Type, ShouldEqual, types.ItemOpening)
				So(plan.Schedule[1].Duration, ShouldEqual, 30)
			})
		})

		Convey("When the event runs a full day", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{
				DurationHours: 8,
			})

			Convey("Then a lunch block appears at the configured clock time", func() {
				var lunch *types.ScheduleItem
				for i := range plan.Schedule {
					if plan.Schedule[i].Type == types.ItemLunch {
						lunch = &plan.Schedule[i]
					}
				}
				So(lunch, ShouldNotBeNil)
				So(lunch.Time, ShouldEqual, "12:30")
				So(lunch.Duration, ShouldEqual, 60)
			})

			Convey("Then the closing reflects the longer day", func() {
				closing := plan.Schedule[len(plan.Schedule)-1]
				So(closing.Time, ShouldEqual, "16:45")
			})
		})

		Convey("When a late start puts the lunch clock time inside a session", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{
				StartTime:     "11:00",
				DurationHours: 6,
			})

			Convey("Then lunch keeps its fixed time and overlaps the running session", func() {
				// Sessions run 11:30, 12:30, 13:30; lunch stays pinned at
				// 12:30 rather than shifting around the content.
				var lunch *types.ScheduleItem
				for i := range plan.Schedule {
					if plan.Schedule[i].Type == types.ItemLunch {
						lunch = &plan.Schedule[i]
					}
				}
				So(lunch, ShouldNotBeNil)
				So(lunch.Time, ShouldEqual, "12:30")
				So(lunch.Duration, ShouldEqual, 60)

				So(plan.Schedule[4].Type, ShouldEqual, types.ItemSession)
				So(plan.Schedule[4].Time, ShouldEqual, "12:30")
			})

			Convey("Then the closing still ends the six-hour day", func() {
				closing := plan.Schedule[len(plan.Schedule)-1]
				So(closing.Time, ShouldEqual, "16:45")
			})
		})

		Convey("When a short event is requested", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{
				DurationHours: 4,
			})

			Convey("Then no lunch block is inserted", func() {
				for _, item := range plan.Schedule {
					So(item.Type, ShouldNotEqual, types.ItemLunch)
				}
			})
		})

		Convey("When custom constraints are supplied", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{
				StartTime:      "10:00",
				SessionMinutes: 30,
				BreakMinutes:   10,
			})

			So(plan.Schedule[0].Time, ShouldEqual, "10:00")
			So(plan.Schedule[2].Duration, ShouldEqual, 30)
			So(plan.Schedule[3].Duration, ShouldEqual, 10)
		})

		Convey("When the start time is malformed", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{
				StartTime: "not-a-time",
			})

			Convey("Then the default start applies", func() {
				So(plan.Schedule[0].Time, ShouldEqual, "09:00")
			})
		})

		Convey("When a late start pushes blocks past midnight", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{
				StartTime:     "22:00",
				DurationHours: 4,
			})

			Convey("Then times format with hours past 24 rather than wrapping", func() {
				closing := plan.Schedule[len(plan.Schedule)-1]
				So(closing.Time, ShouldEqual, "25:45")
			})
		})

		Convey("Then the total duration sums every block", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{})

			sum := 0
			for _, item := range plan.Schedule {
				sum += item.Duration
			}
			So(plan.TotalDuration, ShouldEqual, sum)
		})
	})
}

func TestAdvisories(t *testing.T) {
	Convey("Given headcount and venue variations", t, func() {
		Convey("When the event is large", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 120, schedule.Constraints{})

			So(plan.Recommendations, ShouldContain, "Consider breakout rooms to keep large-group sessions interactive")
		})

		Convey("When the event is small", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 8, schedule.Constraints{})

			So(plan.Recommendations, ShouldContain, "Small group: a roundtable format encourages participation")
		})

		Convey("When the event is virtual", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music", IsVirtual: true}, 30, schedule.Constraints{})

			So(plan.Recommendations, ShouldContain, "Schedule short screen breaks and keep sessions under an hour for virtual attendees")
		})

		Convey("When the event is in person", func() {
			plan := schedule.Build(model.Event{ID: "e", Category: "music"}, 30, schedule.Constraints{})

			So(plan.Recommendations, ShouldContain, "Reserve the venue 30 minutes early for setup and registration")
		})

		Convey("Then there is always at least one advisory", func() {
			plan := schedule.Build(model.Event{ID: "e"}, 0, schedule.Constraints{})

			So(plan.Recommendations, ShouldNotBeEmpty)
		})
	})
}
