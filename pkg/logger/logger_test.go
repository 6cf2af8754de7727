package logger_test

import (
	"context"
	"testing"

	"github.com/echolearn/arena/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			// Must not panic.
			l.Info(context.Background(), "hello", logger.String("k", "v"), logger.Int("n", 1))
		})

		Convey("Named returns a child logger", func() {
			l := logger.Named("contest")
			So(l, ShouldNotBeNil)
			l.Debug(context.Background(), "child message")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the level parser", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Known levels parse", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO "} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Unknown levels fail", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
