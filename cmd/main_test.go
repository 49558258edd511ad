package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/riddlerush/internal/adapters/http/api"
	app "github.com/okian/riddlerush/internal/app"
	"github.com/okian/riddlerush/internal/config"
	"github.com/okian/riddlerush/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		cmd := newRootCmd()

		convey.Convey("Then it should carry the expected identity", func() {
			convey.So(cmd.Use, convey.ShouldEqual, "riddlerush")
			convey.So(cmd.Version, convey.ShouldEqual, releaseVersion)
		})

		convey.Convey("Then it should expose the serve flags", func() {
			for _, name := range []string{"addr", "log-level", "offline", "data-dir", "join-base-url"} {
				convey.So(cmd.Flags().Lookup(name), convey.ShouldNotBeNil)
			}
		})

		convey.Convey("Then it should have a simulate subcommand", func() {
			sub, _, err := cmd.Find([]string{"simulate"})
			convey.So(err, convey.ShouldBeNil)
			convey.So(sub.Use, convey.ShouldEqual, "simulate")
			convey.So(sub.Flags().Lookup("players"), convey.ShouldNotBeNil)
			convey.So(sub.Flags().Lookup("rounds"), convey.ShouldNotBeNil)
		})

		convey.Convey("Then positional arguments are rejected", func() {
			cmd.SetArgs([]string{"unexpected"})
			err := cmd.Execute()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestFlagOverrides(t *testing.T) {
	convey.Convey("Given a loaded config and parsed flags", t, func() {
		cmd := newRootCmd()
		cfg := config.New(context.Background())

		convey.Convey("When no flags are set", func() {
			flags := &serveFlags{}
			applyFlags(cfg, cmd, flags)

			convey.Convey("Then config values survive", func() {
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.OfflineMode, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When flags are explicitly set", func() {
			convey.So(cmd.Flags().Set("addr", ":7070"), convey.ShouldBeNil)
			convey.So(cmd.Flags().Set("offline", "true"), convey.ShouldBeNil)
			convey.So(cmd.Flags().Set("data-dir", "/tmp/riddle"), convey.ShouldBeNil)

			flags := &serveFlags{addr: ":7070", offline: true, dataDir: "/tmp/riddle"}
			applyFlags(cfg, cmd, flags)

			convey.Convey("Then they override the config", func() {
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.OfflineMode, convey.ShouldBeTrue)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/riddle")
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("RIDDLE_ADDR", ":8080")
			_ = os.Setenv("RIDDLE_OFFLINE_MODE", "true")
			defer func() {
				_ = os.Unsetenv("RIDDLE_ADDR")
				_ = os.Unsetenv("RIDDLE_OFFLINE_MODE")
			}()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.OfflineMode, convey.ShouldBeTrue)

				svc := app.New(
					app.WithOfflineMode(cfg.OfflineMode),
					app.WithBasePoints(cfg.BasePoints),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				server.Register(ctx, mux)

				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("RIDDLE_ADDR", "")
			defer func() { _ = os.Unsetenv("RIDDLE_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should handle them gracefully", func() {
				svc := app.New(
					app.WithBasePoints(0),
					app.WithWriteQueueSize(-1),
					app.WithPetScanTimeout(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	convey.Convey("Given the metrics package", t, func() {
		convey.Convey("Then a manager should be creatable with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}
