package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ehsandc/Event-App-on-render/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the defaults are served", func() {
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.SeedURL, ShouldEqual, "events.json")
			So(cfg.SeedTimeoutMS, ShouldEqual, 15_000)
			So(cfg.StorePath, ShouldEqual, "overrides.db")
			So(cfg.RefreshCron, ShouldEqual, "")
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given configuration in the environment", t, func() {
		t.Setenv("EVENTS_ADDR", ":9090")
		t.Setenv("EVENTS_SEED_URL", "https://example.com/events.json")
		t.Setenv("EVENTS_SEED_TIMEOUT_MS", "5000")
		t.Setenv("EVENTS_REFRESH_CRON", "@hourly")

		cfg, err := config.Load(context.Background())

		Convey("Then env values override the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.SeedURL, ShouldEqual, "https://example.com/events.json")
			So(cfg.SeedTimeoutMS, ShouldEqual, 5000)
			So(cfg.RefreshCron, ShouldEqual, "@hourly")
		})

		Convey("Then untouched fields keep their defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.StorePath, ShouldEqual, "overrides.db")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML configuration file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := "addr: \":7070\"\nlog_level: debug\nseed_url: seeds/events.json\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("EVENTS_CONFIG", path)

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the file layers over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.SeedURL, ShouldEqual, "seeds/events.json")
				So(cfg.StorePath, ShouldEqual, "overrides.db")
			})
		})

		Convey("When the environment also sets a value", func() {
			t.Setenv("EVENTS_ADDR", ":6060")
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})
	})

	Convey("Given a config path that does not exist", t, func() {
		t.Setenv("EVENTS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an explicitly blank listen address", t, func() {
		t.Setenv("EVENTS_ADDR", "")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with the validation sentinel", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given an explicitly blank seed location", t, func() {
		t.Setenv("EVENTS_SEED_URL", "")

		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}
