package rating_test

import (
	"math/rand"
	"testing"

	"github.com/echolearn/arena/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeltaTiers(t *testing.T) {
	Convey("Given an engine with a fixed source", t, func() {
		engine := rating.NewEngine(rating.WithSource(rand.NewSource(1)))

		// Neutral rating: regression term is zero at 1000..1500.
		const neutral = 1200

		Convey("Top tier (ratio >= 0.90) draws +30..+44", func() {
			for i := 0; i < 200; i++ {
				d := engine.Delta(neutral, 280)
				So(d, ShouldBeBetweenOrEqual, 30, 44)
			}
		})

		Convey("Second tier (ratio >= 0.75) draws +15..+29", func() {
			for i := 0; i < 200; i++ {
				d := engine.Delta(neutral, 230)
				So(d, ShouldBeBetweenOrEqual, 15, 29)
			}
		})

		Convey("Third tier (ratio >= 0.50) draws +5..+14", func() {
			for i := 0; i < 200; i++ {
				d := engine.Delta(neutral, 160)
				So(d, ShouldBeBetweenOrEqual, 5, 14)
			}
		})

		Convey("Fourth tier (ratio >= 0.30) draws -15..-5", func() {
			for i := 0; i < 200; i++ {
				d := engine.Delta(neutral, 100)
				So(d, ShouldBeBetweenOrEqual, -15, -5)
			}
		})

		Convey("Bottom tier (ratio < 0.30) draws -30..-15", func() {
			for i := 0; i < 200; i++ {
				d := engine.Delta(neutral, 50)
				So(d, ShouldBeBetweenOrEqual, -30, -15)
			}
		})

		Convey("Exact boundary scores land in the upper tier", func() {
			So(engine.Delta(neutral, 270), ShouldBeBetweenOrEqual, 30, 44) // ratio 0.90
			So(engine.Delta(neutral, 225), ShouldBeBetweenOrEqual, 15, 29) // ratio 0.75
			So(engine.Delta(neutral, 150), ShouldBeBetweenOrEqual, 5, 14)  // ratio 0.50
			So(engine.Delta(neutral, 90), ShouldBeBetweenOrEqual, -15, -5) // ratio 0.30
		})
	})
}

func TestDeltaRegression(t *testing.T) {
	Convey("Given the regression term", t, func() {
		engine := rating.NewEngine(rating.WithSource(rand.NewSource(7)))

		Convey("A rating of 1600 sheds nothing: (1600-1500)/200 floors to zero", func() {
			for i := 0; i < 100; i++ {
				So(engine.Delta(1600, 280), ShouldBeBetweenOrEqual, 30, 44)
			}
		})

		Convey("A rating of 1900 sheds two points", func() {
			for i := 0; i < 100; i++ {
				So(engine.Delta(1900, 280), ShouldBeBetweenOrEqual, 28, 42)
			}
		})

		Convey("A rating of 600 gains two points", func() {
			for i := 0; i < 100; i++ {
				So(engine.Delta(600, 280), ShouldBeBetweenOrEqual, 32, 46)
			}
		})

		Convey("A rating of 999 gains nothing: (1000-999)/200 floors to zero", func() {
			for i := 0; i < 100; i++ {
				So(engine.Delta(999, 280), ShouldBeBetweenOrEqual, 30, 44)
			}
		})
	})
}

func TestDeltaReproducibility(t *testing.T) {
	Convey("Given two engines on the same seed", t, func() {
		a := rating.NewEngine(rating.WithSource(rand.NewSource(42)))
		b := rating.NewEngine(rating.WithSource(rand.NewSource(42)))

		Convey("They draw identical sequences", func() {
			for i := 0; i < 50; i++ {
				So(a.Delta(1200, 280), ShouldEqual, b.Delta(1200, 280))
			}
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given Apply", t, func() {
		Convey("It adds the delta", func() {
			So(rating.Apply(1000, 30), ShouldEqual, 1030)
			So(rating.Apply(1000, -30), ShouldEqual, 970)
		})

		Convey("It never drops below the floor", func() {
			So(rating.Apply(510, -30), ShouldEqual, 500)
			So(rating.Apply(500, -1), ShouldEqual, 500)
		})
	})
}

func TestTierFor(t *testing.T) {
	Convey("Given the display tier table", t, func() {
		cases := []struct {
			rating int
			name   string
			color  string
		}{
			{0, "Unranked", "gray"},
			{1000, "Unranked", "gray"},
			{1249, "Unranked", "gray"},
			{1250, "Baratheon", "amber"},
			{1499, "Baratheon", "amber"},
			{1500, "Stark", "blue"},
			{1699, "Stark", "blue"},
			{1700, "Lannister", "yellow"},
			{2000, "Targaryen", "purple"},
			{2499, "Targaryen", "purple"},
			{2500, "Dracarys", "red"},
			{4000, "Dracarys", "red"},
		}
		for _, c := range cases {
			tier := rating.TierFor(c.rating)
			So(tier.Name, ShouldEqual, c.name)
			So(tier.Color, ShouldEqual, c.color)
		}
	})
}
