package config_test

import (
	"testing"

	"github.com/rolematch/rolematch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.CatalogPath, convey.ShouldEqual, "data/roles.csv")
			convey.So(cfg.TopN, convey.ShouldEqual, 3)
			convey.So(cfg.FallbackFloor, convey.ShouldEqual, -1)
			convey.So(cfg.EliminationEnabled, convey.ShouldBeTrue)
			convey.So(cfg.PostgresDSN, convey.ShouldBeEmpty)
			convey.So(cfg.PostgresMaxConns, convey.ShouldEqual, 8)
		})
	})
}
