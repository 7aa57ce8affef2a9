package api

import (
	"errors"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMembershipRoute(t *testing.T) {
	Convey("parseMembershipRoute", t, func() {
		parse := func(target string) (membershipRequest, error) {
			return parseMembershipRoute(httptest.NewRequest("POST", target, nil))
		}

		Convey("decodes escaped names per segment", func() {
			req, err := parse("/activities/Arts%2FCrafts%20Club/remove")
			So(err, ShouldBeNil)
			So(req.Activity, ShouldEqual, "Arts/Crafts Club")
			So(req.Action, ShouldEqual, actionRemove)
		})

		Convey("rejects unknown actions and extra segments", func() {
			for _, target := range []string{
				"/activities/Chess%20Club",
				"/activities/Chess%20Club/",
				"/activities/Chess%20Club/join",
				"/activities/Chess%20Club/signup/extra",
				"/activities//signup",
			} {
				_, err := parse(target)
				So(errors.Is(err, ErrRouteNotFound), ShouldBeTrue)
			}
		})

		Convey("binds and validates the email", func() {
			req, err := parse("/activities/Chess%20Club/signup?email=a%40mergington.edu")
			So(err, ShouldBeNil)
			req.bindQuery(httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=a%40mergington.edu", nil))
			So(req.Email, ShouldEqual, "a@mergington.edu")
			So(req.validate(), ShouldBeNil)

			req.Email = "   "
			So(req.validate(), ShouldNotBeNil)
		})
	})
}
