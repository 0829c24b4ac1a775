package profile_test

import (
	"testing"
	"time"

	"github.com/eventease/insights/internal/domain/model"
	profile "github.com/eventease/insights/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

var day = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestBuild(t *testing.T) {
	Convey("Given profile inputs", t, func() {
		Convey("When the user has no history and no preferences", func() {
			p := profile.Build(nil, nil, model.Preferences{})

			Convey("Then the profile is cold-start and empty", func() {
				So(p.ColdStart(), ShouldBeTrue)
				So(p.TopCategory, ShouldBeEmpty)
				So(p.FavoriteCategories, ShouldBeEmpty)
				So(p.FavoriteTags, ShouldBeEmpty)
			})
		})

		Convey("When the user only declared preferences", func() {
			p := profile.Build(nil, nil, model.Preferences{
				UserID:     "u1",
				Categories: []string{"technology", "arts"},
				Tags:       []string{"golang"},
			})

			Convey("Then the profile is still cold-start", func() {
				So(p.ColdStart(), ShouldBeTrue)
			})

			Convey("Then signup interests seed the profile", func() {
				So(p.TopCategory, ShouldEqual, "technology")
				So(p.FavoriteCategories, ShouldResemble, []string{"technology", "arts"})
				So(p.FavoriteTags, ShouldResemble, []string{"golang"})
				So(p.SignupCategories, ShouldResemble, []string{"technology", "arts"})
				So(p.SignupTags, ShouldResemble, []string{"golang"})
			})
		})

		Convey("When signup preferences compete with history", func() {
			created := []model.Event{
				{ID: "a", Category: "sports", Date: day},
				{ID: "b", Category: "sports", Date: day},
			}
			p := profile.Build(created, nil, model.Preferences{
				Categories: []string{"arts"},
			})

			Convey("Then the signup weight outranks two occurrences", func() {
				// arts 3 vs sports 2
				So(p.TopCategory, ShouldEqual, "arts")
			})
		})

		Convey("When history outweighs signup preferences", func() {
			created := []model.Event{
				{ID: "a", Category: "sports", Date: day},
				{ID: "b", Category: "sports", Date: day},
				{ID: "c", Category: "sports", Date: day},
				{ID: "d", Category: "sports", Date: day},
			}
			p := profile.Build(created, nil, model.Preferences{
				Categories: []string{"arts"},
			})

			So(p.TopCategory, ShouldEqual, "sports")
		})

		Convey("When counts tie", func() {
			created := []model.Event{
				{ID: "a", Category: "music", Date: day},
				{ID: "b", Category: "sports", Date: day},
			}
			p := profile.Build(created, nil, model.Preferences{})

			Convey("Then first-seen order breaks the tie", func() {
				So(p.TopCategory, ShouldEqual, "music")
			})
		})

		Convey("When counting attendance", func() {
			participations := []model.Participation{
				{EventID: "e1", Category: "technology", Status: model.ParticipantAttended},
				{EventID: "e2", Category: "business", Status: model.ParticipantCheckedIn},
				{EventID: "e3", Category: "arts", Status: model.ParticipantRegistered},
				{EventID: "e4", Category: "music", Status: model.ParticipantCancelled},
			}
			p := profile.Build(nil, participations, model.Preferences{})

			Convey("Then only attended and checked_in count", func() {
				So(p.EventsAttended, ShouldEqual, 2)
				So(p.ColdStart(), ShouldBeFalse)
			})

			Convey("Then every participation category is a favorite", func() {
				So(p.FavoriteCategories, ShouldResemble, []string{"technology", "business", "arts", "music"})
			})
		})

		Convey("When many tags accumulate", func() {
			created := []model.Event{
				{ID: "a", Category: "technology", Tags: []string{"golang", "cloud"}, Date: day},
				{ID: "b", Category: "technology", Tags: []string{"golang", "ai"}, Date: day},
			}
			p := profile.Build(created, nil, model.Preferences{Tags: []string{"design"}})

			Convey("Then tags are ordered by weighted frequency", func() {
				// design 3, golang 2, cloud 1, ai 1
				So(p.FavoriteTags, ShouldResemble, []string{"design", "golang", "cloud", "ai"})
			})
		})

		Convey("When inputs alias shared slices", func() {
			prefs := model.Preferences{Categories: []string{"arts"}, Tags: []string{"design"}}
			p := profile.Build(nil, nil, prefs)
			prefs.Categories[0] = "mutated"

			Convey("Then the profile keeps its own copies", func() {
				So(p.SignupCategories, ShouldResemble, []string{"arts"})
			})
		})
	})
}
