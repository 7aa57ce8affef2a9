package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then roster operations fail before Start", func() {
			_, err := svc.Activities(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.Signup(ctx, "Chess Club", "a@mergington.edu"), service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.Remove(ctx, "Chess Club", "a@mergington.edu"), service.ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When starting the service", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then it should load the default catalog", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["activities"], ShouldEqual, len(model.DefaultCatalog()))
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})

		Convey("When stopping the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given an invalid catalog", t, func() {
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithCatalog(model.Catalog{"Broken": {MaxParticipants: -1}}),
		)

		Convey("Then Start should fail with ErrInvalidCatalog", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
		})
	})
}

func TestService_Roster(t *testing.T) {
	Convey("Given a started service with a small catalog", t, func() {
		ctx := context.Background()
		svc := startedService(
			service.WithLogger(logger.Nop()),
			service.WithCatalog(model.Catalog{
				"Chess Club": {
					Description:     "Learn strategies and compete in chess tournaments",
					Schedule:        "Fridays, 3:30 PM - 5:00 PM",
					MaxParticipants: 12,
					Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
				},
			}),
		)
		defer svc.Stop()

		Convey("When signing up a new student", func() {
			err := svc.Signup(ctx, "Chess Club", "newstudent@mergington.edu")

			Convey("Then the student appears at the end of the roster", func() {
				So(err, ShouldBeNil)
				activities, err := svc.Activities(ctx)
				So(err, ShouldBeNil)
				So(activities["Chess Club"].Participants, ShouldResemble,
					[]string{"michael@mergington.edu", "daniel@mergington.edu", "newstudent@mergington.edu"})
				So(svc.GetStats()["participants"], ShouldEqual, 3)
			})
		})

		Convey("When signing up an existing participant", func() {
			err := svc.Signup(ctx, "Chess Club", "michael@mergington.edu")

			Convey("Then it fails with ErrAlreadyRegistered", func() {
				So(errors.Is(err, repository.ErrAlreadyRegistered), ShouldBeTrue)
			})
		})

		Convey("When signing up for an unknown activity", func() {
			err := svc.Signup(ctx, "NonExistent Club", "newstudent@mergington.edu")

			Convey("Then it fails with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When removing a participant", func() {
			err := svc.Remove(ctx, "Chess Club", "michael@mergington.edu")

			Convey("Then the roster keeps the others in order", func() {
				So(err, ShouldBeNil)
				activities, _ := svc.Activities(ctx)
				So(activities["Chess Club"].Participants, ShouldResemble, []string{"daniel@mergington.edu"})
			})
		})

		Convey("When removing a student who never signed up", func() {
			err := svc.Remove(ctx, "Chess Club", "nonexistent@mergington.edu")

			Convey("Then it fails with ErrNotRegistered", func() {
				So(errors.Is(err, repository.ErrNotRegistered), ShouldBeTrue)
			})
		})

		Convey("When removing from an unknown activity", func() {
			err := svc.Remove(ctx, "NonExistent Club", "michael@mergington.edu")

			Convey("Then it fails with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_WithRegistry(t *testing.T) {
	Convey("Given an injected registry", t, func() {
		ctx := context.Background()
		reg, err := repository.NewInMemoryRegistry(ctx)
		So(err, ShouldBeNil)

		svc := startedService(service.WithRegistry(reg), service.WithLogger(logger.Nop()))
		defer svc.Stop()

		Convey("Then the service mutates that registry", func() {
			So(svc.Signup(ctx, "Art Club", "painter@mergington.edu"), ShouldBeNil)
			art, err := reg.Get(ctx, "Art Club")
			So(err, ShouldBeNil)
			So(art.HasParticipant("painter@mergington.edu"), ShouldBeTrue)
		})
	})
}
