package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	config "github.com/eventease/insights/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a fresh configuration", t, func() {
		cfg := config.New(context.Background())

		Convey("Then every default is populated", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.IngestQueueSize, ShouldEqual, 100_000)
			So(cfg.WorkerCount, ShouldEqual, runtime.NumCPU()*2)
			So(cfg.DedupeSize, ShouldEqual, 50_000)
			So(cfg.ShardCount, ShouldEqual, 8)
			So(cfg.MaxRecommendations, ShouldEqual, 20)
			So(cfg.DefaultRecommendations, ShouldEqual, 5)
			So(cfg.ScheduleStartTime, ShouldEqual, "09:00")
			So(cfg.ScheduleLunchStart, ShouldEqual, "12:30")
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given layered configuration sources", t, func() {
		ctx := context.Background()

		Convey("When nothing overrides the defaults", func() {
			clearInsightsEnv()

			cfg, err := config.Load(ctx)

			Convey("Then defaults come back unchanged", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.MaxRecommendations, ShouldEqual, 20)
			})
		})

		Convey("When environment variables are set", func() {
			clearInsightsEnv()
			t.Setenv("INSIGHTS_ADDR", ":7070")
			t.Setenv("INSIGHTS_QUEUE_SIZE", "500")
			t.Setenv("INSIGHTS_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			Convey("Then they override the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.IngestQueueSize, ShouldEqual, 500)
				So(cfg.LogLevel, ShouldEqual, "debug")
			})

			Convey("Then untouched fields keep their defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.ShardCount, ShouldEqual, 8)
			})
		})

		Convey("When a config file is provided", func() {
			clearInsightsEnv()
			path := filepath.Join(t.TempDir(), "insights.yaml")
			content := "addr: \":6060\"\nmax_recommendations: 10\nschedule_start_time: \"08:30\"\n"
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
			t.Setenv("INSIGHTS_CONFIG", path)

			cfg, err := config.Load(ctx)

			Convey("Then file values override the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.MaxRecommendations, ShouldEqual, 10)
				So(cfg.ScheduleStartTime, ShouldEqual, "08:30")
			})
		})

		Convey("When both file and env configure the same key", func() {
			clearInsightsEnv()
			path := filepath.Join(t.TempDir(), "insights.yaml")
			So(os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o600), ShouldBeNil)
			t.Setenv("INSIGHTS_CONFIG", path)
			t.Setenv("INSIGHTS_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			Convey("Then the environment wins", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
			})
		})

		Convey("When the config file does not exist", func() {
			clearInsightsEnv()
			t.Setenv("INSIGHTS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			Convey("Then loading fails with a load error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When the config file is not valid YAML", func() {
			clearInsightsEnv()
			path := filepath.Join(t.TempDir(), "broken.yaml")
			So(os.WriteFile(path, []byte("addr: [unclosed"), 0o600), ShouldBeNil)
			t.Setenv("INSIGHTS_CONFIG", path)

			_, err := config.Load(ctx)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})

		Convey("When validation fails", func() {
			clearInsightsEnv()

			Convey("And the address is blanked out", func() {
				t.Setenv("INSIGHTS_ADDR", "")

				// An empty env value still overrides the default.
				_, err := config.Load(ctx)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("And the recommendation cap is not positive", func() {
				t.Setenv("INSIGHTS_MAX_RECOMMENDATIONS", "0")

				_, err := config.Load(ctx)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("And the default exceeds the cap", func() {
				t.Setenv("INSIGHTS_MAX_RECOMMENDATIONS", "5")
				t.Setenv("INSIGHTS_DEFAULT_RECOMMENDATIONS", "10")

				_, err := config.Load(ctx)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

// clearInsightsEnv unsets every INSIGHTS_* variable the branches set.
// t.Setenv only restores the environment when the whole test finishes,
// while GoConvey re-runs the outer tree once per leaf, so values set in
// one branch would otherwise leak into its siblings.
func clearInsightsEnv() {
	for _, v := range []string{
		"INSIGHTS_CONFIG",
		"INSIGHTS_ADDR",
		"INSIGHTS_QUEUE_SIZE",
		"INSIGHTS_LOG_LEVEL",
		"INSIGHTS_MAX_RECOMMENDATIONS",
		"INSIGHTS_DEFAULT_RECOMMENDATIONS",
	} {
		_ = os.Unsetenv(v)
	}
}
