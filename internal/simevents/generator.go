// Package simevents generates synthetic race captures for exercising
// the analysis pipeline without a stopwatch session.
package simevents

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/okian/swimsplit/internal/domain/model"
)

// Default simulation constants, loosely modelled on a short-course
// age-group freestyle race.
const (
	defaultLapSeconds   = 16.0
	defaultTempoSeconds = 1.1
	defaultJitter       = 0.08
	defaultSeed         = 42

	waterEntryAfterStart = 0.35
	turnDuration         = 1.4
	breakoutAfterWall    = 2.0 // past the push-off, before the first stroke
	firstStrokeAfterWall = 2.6
)

// Config drives one simulated capture.
type Config struct {
	Race         model.Race
	LapSeconds   float64
	TempoSeconds float64
	Jitter       float64
	Seed         int64
}

// NewConfig returns a Config with defaults for the given race.
func NewConfig(race model.Race) Config {
	return Config{
		Race:         race,
		LapSeconds:   defaultLapSeconds,
		TempoSeconds: defaultTempoSeconds,
		Jitter:       defaultJitter,
		Seed:         defaultSeed,
	}
}

// Generate produces a plausible event stream for the configured race.
// The same Config always yields the same capture.
func (c Config) Generate(lapLength int) ([]model.Event, error) {
	if lapLength <= 0 || c.Race.Distance <= 0 || c.Race.Distance%lapLength != 0 {
		return nil, fmt.Errorf("cannot simulate %d units in %d-unit laps", c.Race.Distance, lapLength)
	}
	laps := c.Race.Distance / lapLength
	rng := rand.New(rand.NewSource(c.Seed)) //nolint:gosec // deterministic captures on purpose

	jitter := func() float64 { return (rng.Float64()*2 - 1) * c.Jitter }

	events := []model.Event{
		{Type: model.EventStart, Time: 0},
		{Type: model.EventWaterEntry, Time: waterEntryAfterStart + jitter()},
	}

	wall := 0.0
	for lap := 0; lap < laps; lap++ {
		lapEnd := wall + c.LapSeconds + jitter()

		events = append(events, model.Event{Type: model.EventBreakout, Time: wall + breakoutAfterWall + jitter()})
		for t := wall + firstStrokeAfterWall; t < lapEnd-c.TempoSeconds/2; t += c.TempoSeconds + jitter()/4 {
			events = append(events, model.Event{Type: model.EventStroke, Time: t})
		}

		if lap == laps-1 {
			events = append(events, model.Event{Type: model.EventEnd, Time: lapEnd})
			break
		}
		events = append(events, turnEvents(c.Race.Stroke, lap, laps, lapLength, lapEnd)...)
		wall = lapEnd
	}

	sortByTime(events)
	return events, nil
}

// turnEvents emits the wall contact for the lap transition using the
// stroke's convention: a lone turn_end for single-touch walls, a
// turn_start/turn_end pair for two-hand walls.
func turnEvents(stroke model.Stroke, lap, laps, lapLength int, wallTime float64) []model.Event {
	switch stroke {
	case model.Freestyle, model.Backstroke:
		return []model.Event{{Type: model.EventTurnEnd, Time: wallTime}}
	case model.Breaststroke, model.Butterfly:
		return []model.Event{
			{Type: model.EventTurnStart, Time: wallTime},
			{Type: model.EventTurnEnd, Time: wallTime + turnDuration},
		}
	case model.IM:
		seg := laps / 4
		if seg == 0 {
			return []model.Event{{Type: model.EventTurnEnd, Time: wallTime}}
		}
		switch lap / seg {
		case 0, 2: // fly, breast
			return []model.Event{
				{Type: model.EventTurnStart, Time: wallTime},
				{Type: model.EventTurnEnd, Time: wallTime + turnDuration},
			}
		default: // back, free
			return []model.Event{{Type: model.EventTurnEnd, Time: wallTime}}
		}
	}
	return nil
}

func sortByTime(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
}
