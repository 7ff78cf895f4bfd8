package lapstats_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/swimsplit/internal/domain/boundary"
	"github.com/okian/swimsplit/internal/domain/lapstats"
	"github.com/okian/swimsplit/internal/domain/model"
)

func ev(t model.EventType, at float64) model.Event {
	return model.Event{Type: t, Time: at}
}

func TestComputeButterflyTurnTime(t *testing.T) {
	Convey("Given a butterfly 50 with one matched turn pair", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventStroke, 3.0),
			ev(model.EventStroke, 10.0),
			ev(model.EventStroke, 26.5),
			ev(model.EventTurnStart, 28.0),
			ev(model.EventTurnEnd, 29.5),
			ev(model.EventStroke, 33.0),
			ev(model.EventStroke, 52.0),
			ev(model.EventEnd, 55.0),
		}
		bounds := boundary.Result{
			Times:        []float64{0, 28.0, 55.0},
			TurnPairLaps: map[int]bool{0: true},
		}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, model.Measurements{})

			So(stats, ShouldHaveLength, 2)

			Convey("Then the turning lap carries the pair duration", func() {
				So(stats[0].TurnTime, ShouldNotBeNil)
				So(*stats[0].TurnTime, ShouldAlmostEqual, 1.5)
			})

			Convey("And the final lap has no turn time", func() {
				So(stats[1].TurnTime, ShouldBeNil)
			})

			Convey("And stroke-to-wall spans last stroke to the next wall contact", func() {
				// Lap 0: last stroke 26.5, first turn event after is 28.0.
				So(stats[0].StrokeToWall, ShouldNotBeNil)
				So(*stats[0].StrokeToWall, ShouldAlmostEqual, 1.5)

				// Final lap: no turn follows the last stroke, the window end stands in.
				So(stats[1].StrokeToWall, ShouldNotBeNil)
				So(*stats[1].StrokeToWall, ShouldAlmostEqual, 3.0)
			})

			Convey("And stroke counts follow the half-open lap windows", func() {
				So(stats[0].StrokeCount, ShouldEqual, 3)
				So(stats[1].StrokeCount, ShouldEqual, 2)
			})
		})
	})
}

func TestComputeInteriorLapTurnTimes(t *testing.T) {
	Convey("Given a breaststroke 75 with two turn pairs of distinct durations", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventStroke, 5.0),
			ev(model.EventTurnStart, 30.0),
			ev(model.EventTurnEnd, 31.0),
			ev(model.EventStroke, 40.0),
			ev(model.EventTurnStart, 62.0),
			ev(model.EventTurnEnd, 64.5),
			ev(model.EventStroke, 70.0),
			ev(model.EventEnd, 95.0),
		}
		bounds := boundary.Result{
			Times:        []float64{0, 30.0, 62.0, 95.0},
			TurnPairLaps: map[int]bool{0: true, 1: true},
		}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, model.Measurements{})

			So(stats, ShouldHaveLength, 3)

			Convey("Then each turning lap owns the pair at its closing wall", func() {
				So(stats[0].TurnTime, ShouldNotBeNil)
				So(*stats[0].TurnTime, ShouldAlmostEqual, 1.0)
				So(stats[1].TurnTime, ShouldNotBeNil)
				So(*stats[1].TurnTime, ShouldAlmostEqual, 2.5)
			})

			Convey("And the final lap has no turn time", func() {
				So(stats[2].TurnTime, ShouldBeNil)
			})
		})
	})
}

func TestComputeManualMeasurements(t *testing.T) {
	Convey("Given a single-lap race with full manual coverage", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventWaterEntry, 0.7),
			ev(model.EventStroke, 3.0),
			ev(model.EventStroke, 5.0),
			ev(model.EventStroke, 7.0),
			ev(model.EventStroke, 9.0),
			ev(model.EventStroke, 11.0),
			ev(model.EventStroke, 13.5),
			ev(model.EventEnd, 14.5),
		}
		bounds := boundary.Result{Times: []float64{0, 14.5}}
		manual := model.Measurements{
			BreakoutTime:     []float64{1.5},
			BreakoutDistance: []float64{5.0},
			FifteenTime:      []float64{6.5},
		}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, manual)

			So(stats, ShouldHaveLength, 1)
			s := stats[0]

			Convey("Then breakout time is relative to water entry on the first lap", func() {
				So(s.BreakoutTimeRel, ShouldNotBeNil)
				So(*s.BreakoutTimeRel, ShouldAlmostEqual, 0.8)
			})

			Convey("And underwater speed is breakout distance over that interval", func() {
				So(s.UnderwaterSpeed, ShouldNotBeNil)
				So(*s.UnderwaterSpeed, ShouldAlmostEqual, 6.25)
			})

			Convey("And overwater speed uses the surface distance minus the touch allowance", func() {
				// (25 - 5 - 0.5) over last stroke 13.5 minus breakout 1.5.
				So(s.OverwaterSpeed, ShouldNotBeNil)
				So(*s.OverwaterSpeed, ShouldAlmostEqual, 19.5/12.0)
			})

			Convey("And the fifteen-metre splits bracket the manual mark", func() {
				So(*s.BreakoutToFifteen, ShouldAlmostEqual, 5.0)
				So(*s.FifteenToTurn, ShouldAlmostEqual, 8.0)
			})

			Convey("And tempo starts from the manual breakout, not the first stroke", func() {
				So(s.StrokesPerSecond, ShouldAlmostEqual, 6.0/13.0)
			})
		})
	})

	Convey("Given manual coverage for only the first of two laps", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventStroke, 3.0),
			ev(model.EventStroke, 17.0),
			ev(model.EventEnd, 30.0),
		}
		bounds := boundary.Result{Times: []float64{0, 15.0, 30.0}}
		manual := model.Measurements{
			BreakoutTime:     []float64{1.8},
			BreakoutDistance: []float64{6.0},
			FifteenTime:      []float64{7.0},
		}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, manual)

			Convey("Then the uncovered lap leaves the manual fields absent", func() {
				So(stats[0].BreakoutDistance, ShouldNotBeNil)
				So(stats[1].BreakoutDistance, ShouldBeNil)
				So(stats[1].UnderwaterSpeed, ShouldBeNil)
				So(stats[1].FifteenToTurn, ShouldBeNil)
			})
		})
	})
}

func TestComputeSparseWindows(t *testing.T) {
	Convey("Given a lap window with no strokes", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventStroke, 20.0),
			ev(model.EventEnd, 30.0),
		}
		bounds := boundary.Result{Times: []float64{0, 15.0, 30.0}}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, model.Measurements{})

			Convey("Then the strokeless lap keeps zero tempo and no stroke-to-wall", func() {
				So(stats[0].StrokeCount, ShouldEqual, 0)
				So(stats[0].StrokesPerSecond, ShouldEqual, 0)
				So(stats[0].StrokeToWall, ShouldBeNil)
			})

			Convey("And lap time is still the window span", func() {
				So(stats[0].LapTime, ShouldAlmostEqual, 15.0)
			})
		})
	})

	Convey("Given no boundaries", t, func() {
		calc := lapstats.New()

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), nil, boundary.Result{}, model.Measurements{})

			Convey("Then there is nothing to report", func() {
				So(stats, ShouldBeNil)
			})
		})
	})
}

func TestComputeTurnTimeFamilies(t *testing.T) {
	Convey("Given a freestyle result with an incidental start/end pair in the stream", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventStroke, 10.0),
			ev(model.EventTurnStart, 24.0),
			ev(model.EventTurnEnd, 25.0),
			ev(model.EventStroke, 40.0),
			ev(model.EventEnd, 50.0),
		}
		bounds := boundary.Result{Times: []float64{0, 25.0, 50.0}}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, model.Measurements{})

			Convey("Then no lap reports turn time without pair eligibility", func() {
				for _, s := range stats {
					So(s.TurnTime, ShouldBeNil)
				}
			})
		})
	})
}

func TestComputeIdempotent(t *testing.T) {
	Convey("Given one input set", t, func() {
		calc := lapstats.New()
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventStroke, 2.0),
			ev(model.EventTurnStart, 28.0),
			ev(model.EventTurnEnd, 29.5),
			ev(model.EventStroke, 33.0),
			ev(model.EventEnd, 55.0),
		}
		bounds := boundary.Result{
			Times:        []float64{0, 28.0, 55.0},
			TurnPairLaps: map[int]bool{0: true},
		}
		manual := model.Measurements{
			BreakoutTime:     []float64{1.2, 30.5},
			BreakoutDistance: []float64{6.0, 5.5},
			FifteenTime:      []float64{7.5, 36.0},
		}

		Convey("When computing twice", func() {
			first := calc.Compute(context.Background(), events, bounds, manual)
			second := calc.Compute(context.Background(), events, bounds, manual)

			Convey("Then both runs are identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestCalculatorOptions(t *testing.T) {
	Convey("Given a long-course calculator", t, func() {
		calc := lapstats.New(lapstats.WithPoolLength(50), lapstats.WithTouchAllowance(0))
		events := []model.Event{
			ev(model.EventStart, 0),
			ev(model.EventWaterEntry, 0.5),
			ev(model.EventStroke, 5.0),
			ev(model.EventStroke, 27.0),
			ev(model.EventEnd, 28.0),
		}
		bounds := boundary.Result{Times: []float64{0, 28.0}}
		manual := model.Measurements{
			BreakoutTime:     []float64{2.5},
			BreakoutDistance: []float64{10.0},
			FifteenTime:      []float64{8.0},
		}

		Convey("When computing lap stats", func() {
			stats := calc.Compute(context.Background(), events, bounds, manual)

			Convey("Then overwater distance reflects the configured course", func() {
				// (50 - 10 - 0) over last stroke 27.0 minus breakout 2.5.
				So(*stats[0].OverwaterSpeed, ShouldAlmostEqual, 40.0/24.5)
			})
		})
	})
}
