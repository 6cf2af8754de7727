package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/echolearn/arena/internal/adapters/http/api"
	"github.com/echolearn/arena/internal/adapters/http/swagger"
	"github.com/echolearn/arena/internal/adapters/repository"
	app "github.com/echolearn/arena/internal/app"
	"github.com/echolearn/arena/internal/config"
	"github.com/echolearn/arena/internal/content"
	"github.com/echolearn/arena/pkg/logger"
)

func TestWiring(t *testing.T) {
	convey.Convey("Given the main application components", t, func() {
		ctx := context.Background()
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("When loading configuration from the environment", func() {
			t.Setenv("ARENA_ADDR", ":8080")
			t.Setenv("ARENA_DB_PATH", filepath.Join(t.TempDir(), "arena.db"))

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")

			convey.Convey("Then the full route surface can be wired", func() {
				store, err := repository.New(cfg.DBPath)
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = store.Close() }()

				library, err := content.Load()
				convey.So(err, convey.ShouldBeNil)

				svc := app.New(store, library, app.WithLogger(logger.Get()))

				mux := http.NewServeMux()
				swagger.Register(ctx, mux)
				api.NewServer(svc).Register(ctx, mux)

				req := httptest.NewRequest(http.MethodGet, "/contests", http.NoBody)
				req.Header.Set("X-User-ID", "smoke-user")
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				req = httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
				rec = httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				req = httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
				rec = httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}
