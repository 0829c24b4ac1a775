package model_test

import (
	"testing"
	"time"

	model "github.com/eventease/insights/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2026, time.June, 1, 15, 0, 0, 0, time.UTC)

func TestEventStatus(t *testing.T) {
	Convey("Given event statuses", t, func() {
		Convey("Then known states validate", func() {
			So(model.StatusUpcoming.Valid(), ShouldBeTrue)
			So(model.StatusOngoing.Valid(), ShouldBeTrue)
			So(model.StatusCompleted.Valid(), ShouldBeTrue)
			So(model.StatusCancelled.Valid(), ShouldBeTrue)
		})

		Convey("Then unknown states do not", func() {
			So(model.EventStatus("").Valid(), ShouldBeFalse)
			So(model.EventStatus("draft").Valid(), ShouldBeFalse)
		})
	})
}

func TestParticipantStatus(t *testing.T) {
	Convey("Given participant statuses", t, func() {
		Convey("Then known states validate", func() {
			for _, s := range []model.ParticipantStatus{
				model.ParticipantRegistered,
				model.ParticipantConfirmed,
				model.ParticipantPending,
				model.ParticipantAttended,
				model.ParticipantCancelled,
				model.ParticipantRejected,
				model.ParticipantCheckedIn,
			} {
				So(s.Valid(), ShouldBeTrue)
			}
			So(model.ParticipantStatus("waitlisted").Valid(), ShouldBeFalse)
		})

		Convey("Then only attended and checked_in count as attendance", func() {
			So(model.ParticipantAttended.Attended(), ShouldBeTrue)
			So(model.ParticipantCheckedIn.Attended(), ShouldBeTrue)
			So(model.ParticipantRegistered.Attended(), ShouldBeFalse)
			So(model.ParticipantConfirmed.Attended(), ShouldBeFalse)
			So(model.ParticipantCancelled.Attended(), ShouldBeFalse)
		})
	})
}

func TestCandidate(t *testing.T) {
	Convey("Given candidate filtering", t, func() {
		future := model.Event{ID: "e", Status: model.StatusUpcoming, Date: now.AddDate(0, 0, 10)}

		Convey("Then future upcoming events qualify", func() {
			So(future.Candidate(now), ShouldBeTrue)
		})

		Convey("Then events dated today still qualify", func() {
			today := future
			today.Date = now.Add(-2 * time.Hour) // same calendar day
			So(today.Candidate(now), ShouldBeTrue)
		})

		Convey("Then past events do not qualify", func() {
			past := future
			past.Date = now.AddDate(0, 0, -1)
			So(past.Candidate(now), ShouldBeFalse)
		})

		Convey("Then cancelled and completed events never qualify", func() {
			cancelled := future
			cancelled.Status = model.StatusCancelled
			So(cancelled.Candidate(now), ShouldBeFalse)

			completed := future
			completed.Status = model.StatusCompleted
			So(completed.Candidate(now), ShouldBeFalse)
		})

		Convey("Then ongoing events still qualify", func() {
			ongoing := future
			ongoing.Status = model.StatusOngoing
			So(ongoing.Candidate(now), ShouldBeTrue)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given raw wire records", t, func() {
		Convey("When normalizing an event", func() {
			e := model.NormalizeEvent(model.Event{
				ID:              "  e1 ",
				Title:           " Go Meetup ",
				Category:        " technology ",
				Tags:            []string{" golang ", "", "  "},
				Location:        " Berlin ",
				OwnerID:         " u1 ",
				MaxParticipants: -5,
			})

			Convey("Then fields are trimmed and cleaned", func() {
				So(e.ID, ShouldEqual, "e1")
				So(e.Title, ShouldEqual, "Go Meetup")
				So(e.Category, ShouldEqual, "technology")
				So(e.Tags, ShouldResemble, []string{"golang"})
				So(e.Location, ShouldEqual, "Berlin")
				So(e.OwnerID, ShouldEqual, "u1")
			})

			Convey("Then negative capacity resets to unstated", func() {
				So(e.MaxParticipants, ShouldEqual, 0)
			})

			Convey("Then a missing status defaults to upcoming", func() {
				So(e.Status, ShouldEqual, model.StatusUpcoming)
			})
		})

		Convey("When the event already has a valid status", func() {
			e := model.NormalizeEvent(model.Event{ID: "e1", Status: model.StatusCompleted})
			So(e.Status, ShouldEqual, model.StatusCompleted)
		})

		Convey("When normalizing a participant", func() {
			p := model.NormalizeParticipant(model.Participant{
				ID:      " p1 ",
				EventID: " e1 ",
				UserID:  " u1 ",
				Status:  model.ParticipantStatus("bogus"),
			})

			So(p.ID, ShouldEqual, "p1")
			So(p.EventID, ShouldEqual, "e1")
			So(p.UserID, ShouldEqual, "u1")
			So(p.Status, ShouldEqual, model.ParticipantRegistered)
		})

		Convey("When normalizing preferences", func() {
			prefs := model.NormalizePreferences(model.Preferences{
				UserID:     " u1 ",
				Categories: []string{" technology ", ""},
				Tags:       []string{"", " golang "},
			})

			So(prefs.UserID, ShouldEqual, "u1")
			So(prefs.Categories, ShouldResemble, []string{"technology"})
			So(prefs.Tags, ShouldResemble, []string{"golang"})
		})
	})
}
