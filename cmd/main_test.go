package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/config"
	"github.com/okian/mergington/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	ts := httptest.NewServer(newHandler(context.Background(), svc, logger.Nop()))
	t.Cleanup(ts.Close)
	return ts
}

func noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestHandlerRoutes(t *testing.T) {
	convey.Convey("Given the full application handler", t, func() {
		ts := newTestServer(t)
		client := noRedirectClient()

		convey.Convey("When requesting the root path", func() {
			resp, err := client.Get(ts.URL + "/")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it redirects to the landing page", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusTemporaryRedirect)
				convey.So(resp.Header.Get("Location"), convey.ShouldEqual, "/static/index.html")
				convey.So(resp.Header.Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When following the redirect", func() {
			resp, err := http.Get(ts.URL + "/")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the landing page is served", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(resp.Header.Get("Content-Type"), convey.ShouldContainSubstring, "text/html")
			})
		})

		convey.Convey("When signing up and removing over the wire", func() {
			signup, err := client.Post(ts.URL+"/activities/Chess%20Club/signup?email=wire@mergington.edu", "", http.NoBody)
			convey.So(err, convey.ShouldBeNil)
			signup.Body.Close()

			list, err := client.Get(ts.URL + "/activities")
			convey.So(err, convey.ShouldBeNil)
			var activities map[string]struct {
				Participants []string `json:"participants"`
			}
			convey.So(json.NewDecoder(list.Body).Decode(&activities), convey.ShouldBeNil)
			list.Body.Close()

			remove, err := client.Post(ts.URL+"/activities/Chess%20Club/remove?email=wire@mergington.edu", "", http.NoBody)
			convey.So(err, convey.ShouldBeNil)
			remove.Body.Close()

			convey.Convey("Then both calls succeed and the roster saw the student", func() {
				convey.So(signup.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(activities["Chess Club"].Participants, convey.ShouldContain, "wire@mergington.edu")
				convey.So(remove.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When requesting the docs", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats"} {
				resp, err := client.Get(ts.URL + path)
				convey.So(err, convey.ShouldBeNil)
				resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then the server carries the configured timeouts", func() {
			srv := newHTTPServer(cfg, http.NotFoundHandler())
			convey.So(srv.Addr, convey.ShouldEqual, ":8000")
			convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, 10*time.Second)
			convey.So(srv.IdleTimeout, convey.ShouldEqual, idleTimeout)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a config that listens on an ephemeral port", t, func() {
		t.Setenv("MERGINGTON_ADDR", "127.0.0.1:0")
		t.Setenv("MERGINGTON_SHUTDOWN_TIMEOUT_MS", "1000")

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				convey.So(run(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the config is invalid", func() {
			t.Setenv("MERGINGTON_READ_TIMEOUT_MS", "0")

			convey.Convey("Then run fails before serving", func() {
				convey.So(run(context.Background()), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a short-lived context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.Convey("Then the updater returns when the context ends", func() {
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
