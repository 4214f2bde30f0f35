package store_test

import (
	"errors"
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/greenroots/social-server/models"
	"github.com/greenroots/social-server/store"
)

func TestUpcomingFilter(t *testing.T) {
	Convey("Given a listing filter", t, func() {
		Convey("With only a date it selects event_date on or after that date", func() {
			f := store.UpcomingFilter(models.TreeFilter{FromDate: "2024-06-15"})
			So(f, ShouldResemble, bson.M{"event_date": bson.M{"$gte": "2024-06-15"}})
		})

		Convey("The All type is the same as no type", func() {
			all := store.UpcomingFilter(models.TreeFilter{FromDate: "2024-06-15", Type: "All"})
			none := store.UpcomingFilter(models.TreeFilter{FromDate: "2024-06-15"})
			So(all, ShouldResemble, none)
		})

		Convey("A concrete type restricts event_type", func() {
			f := store.UpcomingFilter(models.TreeFilter{FromDate: "2024-06-15", Type: "Cleanup"})
			So(f["event_type"], ShouldEqual, "Cleanup")
		})

		Convey("Search becomes a case-insensitive unanchored regex on event_title", func() {
			f := store.UpcomingFilter(models.TreeFilter{FromDate: "2024-06-15", Search: "clean"})
			title := f["event_title"].(bson.M)
			So(title["$options"], ShouldEqual, "i")

			re := regexp.MustCompile("(?i)" + title["$regex"].(string))
			So(re.MatchString("Community Cleanup"), ShouldBeTrue)
			So(re.MatchString("Riverside Planting"), ShouldBeFalse)
		})

		Convey("Regex metacharacters in search are matched literally", func() {
			f := store.UpcomingFilter(models.TreeFilter{FromDate: "2024-06-15", Search: "c++ (north)"})
			re := regexp.MustCompile("(?i)" + f["event_title"].(bson.M)["$regex"].(string))
			So(re.MatchString("Learn C++ (North) planting"), ShouldBeTrue)
			So(re.MatchString("cc north"), ShouldBeFalse)
		})
	})
}

func TestOverwriteFields(t *testing.T) {
	Convey("Given an event update body", t, func() {
		Convey("All six fields are written and extras are dropped", func() {
			set := store.OverwriteFields(map[string]interface{}{
				"event_title": "Mangrove Drive",
				"description": "Plant 500 saplings",
				"event_type":  "Planting",
				"thumbnail":   "https://img/m.jpg",
				"location":    "Khulna",
				"event_date":  "2024-08-10",
				"organizer":   "Eco Club",
			})
			So(len(set), ShouldEqual, 6)
			So(set["event_title"], ShouldEqual, "Mangrove Drive")
			So(set, ShouldNotContainKey, "organizer")
		})

		Convey("Missing fields are set to null", func() {
			set := store.OverwriteFields(map[string]interface{}{"event_title": "Renamed"})
			So(len(set), ShouldEqual, 6)
			So(set, ShouldContainKey, "location")
			So(set["location"], ShouldBeNil)
		})
	})
}

func TestParseID(t *testing.T) {
	Convey("ParseID accepts 24-char hex and rejects anything else", t, func() {
		oid, err := store.ParseID("65f1c0ffee0000000000beef")
		So(err, ShouldBeNil)
		So(oid.Hex(), ShouldEqual, "65f1c0ffee0000000000beef")

		_, err = store.ParseID("not-an-id")
		So(errors.Is(err, store.ErrInvalidID), ShouldBeTrue)
	})
}
