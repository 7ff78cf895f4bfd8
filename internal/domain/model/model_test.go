package model_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/swimsplit/internal/domain/model"
)

func TestParseEventType(t *testing.T) {
	Convey("Given raw event type strings", t, func() {
		Convey("When parsing recognized types", func() {
			for _, raw := range []string{"start", "TURN_END", " stroke ", "Water_Entry"} {
				_, err := model.ParseEventType(raw)
				So(err, ShouldBeNil)
			}
		})

		Convey("When parsing an unknown type", func() {
			_, err := model.ParseEventType("splash")
			So(errors.Is(err, model.ErrUnknownEventType), ShouldBeTrue)
		})
	})
}

func TestParseRaceDetails(t *testing.T) {
	Convey("Given announcement-form race details", t, func() {
		Convey("When parsing a well-formed description", func() {
			race, err := model.ParseRaceDetails("Men's 200 Breaststroke")

			So(err, ShouldBeNil)
			So(race.Gender, ShouldEqual, model.Men)
			So(race.Distance, ShouldEqual, 200)
			So(race.Stroke, ShouldEqual, model.Breaststroke)
		})

		Convey("When parsing a medley description", func() {
			race, err := model.ParseRaceDetails("Women's 400 IM")

			So(err, ShouldBeNil)
			So(race.Gender, ShouldEqual, model.Women)
			So(race.Stroke, ShouldEqual, model.IM)
		})

		Convey("When the description round-trips through Describe", func() {
			race, err := model.ParseRaceDetails("Women's 100 Butterfly")

			So(err, ShouldBeNil)
			So(race.Describe(), ShouldEqual, "Women's 100 Butterfly")
		})

		Convey("When parsing malformed descriptions", func() {
			for _, raw := range []string{"", "200 Freestyle", "Men's Freestyle", "Men's -50 Freestyle", "Men's 50 Sidestroke"} {
				_, err := model.ParseRaceDetails(raw)
				So(errors.Is(err, model.ErrBadRaceDetails), ShouldBeTrue)
			}
		})
	})
}

func TestValidateEvents(t *testing.T) {
	Convey("Given captured event sequences", t, func() {
		valid := []model.Event{
			{Type: model.EventStart, Time: 0},
			{Type: model.EventWaterEntry, Time: 0.4},
			{Type: model.EventStroke, Time: 2.1},
			{Type: model.EventTurnEnd, Time: 25.2},
			{Type: model.EventEnd, Time: 51.0},
		}

		Convey("When the sequence is complete and ordered", func() {
			So(model.ValidateEvents(valid), ShouldBeNil)
		})

		Convey("When the end event is missing", func() {
			err := model.ValidateEvents(valid[:len(valid)-1])
			So(errors.Is(err, model.ErrMissingEndEvent), ShouldBeTrue)
		})

		Convey("When the start event is missing", func() {
			err := model.ValidateEvents(valid[1:])
			So(errors.Is(err, model.ErrMissingStartEvent), ShouldBeTrue)
		})

		Convey("When the start is not at time zero", func() {
			events := []model.Event{
				{Type: model.EventStart, Time: 0.5},
				{Type: model.EventEnd, Time: 30},
			}
			err := model.ValidateEvents(events)
			So(errors.Is(err, model.ErrEventsOutOfOrder), ShouldBeTrue)
		})

		Convey("When times go backwards", func() {
			events := []model.Event{
				{Type: model.EventStart, Time: 0},
				{Type: model.EventStroke, Time: 5},
				{Type: model.EventStroke, Time: 4},
				{Type: model.EventEnd, Time: 30},
			}
			err := model.ValidateEvents(events)
			So(errors.Is(err, model.ErrEventsOutOfOrder), ShouldBeTrue)
		})

		Convey("When an event type is unrecognized", func() {
			events := []model.Event{
				{Type: model.EventStart, Time: 0},
				{Type: "splash", Time: 3},
				{Type: model.EventEnd, Time: 30},
			}
			err := model.ValidateEvents(events)
			So(errors.Is(err, model.ErrUnknownEventType), ShouldBeTrue)
		})
	})
}

func TestEventHelpers(t *testing.T) {
	Convey("Given a mixed event sequence", t, func() {
		events := []model.Event{
			{Type: model.EventStart, Time: 0},
			{Type: model.EventWaterEntry, Time: 0.35},
			{Type: model.EventStroke, Time: 2.0},
			{Type: model.EventTurnStart, Time: 28.0},
			{Type: model.EventTurnEnd, Time: 29.5},
			{Type: model.EventStroke, Time: 31.0},
			{Type: model.EventEnd, Time: 55.0},
		}

		Convey("EndTime finds the finish", func() {
			end, err := model.EndTime(events)
			So(err, ShouldBeNil)
			So(end, ShouldEqual, 55.0)
		})

		Convey("FilterEvents keeps only the requested type", func() {
			strokes := model.FilterEvents(events, model.EventStroke)
			So(strokes, ShouldHaveLength, 2)
			So(strokes[0].Time, ShouldEqual, 2.0)
		})

		Convey("TurnEvents returns both turn halves time-sorted", func() {
			turns := model.TurnEvents(events)
			So(turns, ShouldHaveLength, 2)
			So(turns[0].Type, ShouldEqual, model.EventTurnStart)
			So(turns[1].Type, ShouldEqual, model.EventTurnEnd)
		})

		Convey("WaterEntryTime reports presence", func() {
			at, ok := model.WaterEntryTime(events)
			So(ok, ShouldBeTrue)
			So(at, ShouldEqual, 0.35)

			_, ok = model.WaterEntryTime(events[2:])
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMeasurementsCovers(t *testing.T) {
	Convey("Given partially filled manual measurements", t, func() {
		m := model.Measurements{
			BreakoutTime:     []float64{4.2, 4.5},
			BreakoutDistance: []float64{7.5, 8.0},
			FifteenTime:      []float64{6.1},
		}

		Convey("Covers requires all three slices to reach the lap", func() {
			So(m.Covers(0), ShouldBeTrue)
			So(m.Covers(1), ShouldBeFalse)
			So(m.Covers(-1), ShouldBeFalse)
		})
	})
}
