// Package lapstats derives per-lap swimming metrics from detected
// boundaries, the raw event stream and optional manual measurements.
package lapstats

import (
	"context"

	"github.com/okian/swimsplit/internal/domain/boundary"
	"github.com/okian/swimsplit/internal/domain/model"
	"github.com/okian/swimsplit/pkg/logger"
)

// Short-course defaults for the overwater-distance computation. The
// touch allowance subtracts the arm's reach at the wall from the
// swum surface distance.
const (
	defaultPoolLength     = 25.0
	defaultTouchAllowance = 0.5
)

// Calculator computes LapStat records for one race.
type Calculator struct {
	poolLength     float64
	touchAllowance float64
	log            logger.Logger
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithPoolLength sets the pool length in course units.
func WithPoolLength(length float64) Option {
	return func(c *Calculator) {
		if length > 0 {
			c.poolLength = length
		}
	}
}

// WithTouchAllowance sets the hand-touch allowance in course units.
func WithTouchAllowance(allowance float64) Option {
	return func(c *Calculator) {
		if allowance >= 0 {
			c.touchAllowance = allowance
		}
	}
}

// WithLogger sets the calculator's logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Calculator) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Calculator with the given options.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		poolLength:     defaultPoolLength,
		touchAllowance: defaultTouchAllowance,
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// turnPair is one matched turn_start/turn_end occurrence.
type turnPair struct {
	start, end float64
}

// Compute returns one LapStat per boundary window. Fields whose
// prerequisite data does not cover a lap are left absent. All
// arithmetic keeps full precision; presentation rounding belongs to
// the rendering adapters.
func (c *Calculator) Compute(ctx context.Context, events []model.Event, bounds boundary.Result, manual model.Measurements) []model.LapStat {
	laps := bounds.Laps()
	if laps == 0 {
		return nil
	}

	turns := model.TurnEvents(events)
	pairs := matchTurnPairs(turns)
	strokes := model.FilterEvents(events, model.EventStroke)
	waterEntry, hasWaterEntry := model.WaterEntryTime(events)

	stats := make([]model.LapStat, 0, laps)
	for i := 0; i < laps; i++ {
		start, end := bounds.Times[i], bounds.Times[i+1]
		last := i == laps-1

		inWindow := windowStrokes(strokes, start, end, last)
		stat := model.LapStat{
			LapIndex:    i,
			LapTime:     end - start,
			StrokeCount: len(inWindow),
		}

		swimStart := 0.0
		haveSwimStart := false
		if i < len(manual.BreakoutTime) {
			swimStart, haveSwimStart = manual.BreakoutTime[i], true
		} else if len(inWindow) > 0 {
			swimStart, haveSwimStart = inWindow[0].Time, true
		}
		if haveSwimStart && end-swimStart > 0 {
			stat.StrokesPerSecond = float64(len(inWindow)) / (end - swimStart)
		}

		if len(inWindow) > 0 {
			lastStroke := inWindow[len(inWindow)-1].Time
			stat.StrokeToWall = model.Float(firstTurnAfter(turns, lastStroke, end) - lastStroke)
		}

		if bounds.TurnPairLaps[i] {
			if pair, ok := pairForLap(pairs, start, end); ok {
				stat.TurnTime = model.Float(pair.end - pair.start)
			}
		}

		if manual.Covers(i) {
			c.underwaterMetrics(&stat, i, start, end, inWindow, manual, waterEntry, hasWaterEntry)
		}

		stats = append(stats, stat)
	}

	c.log.Debug(ctx, "lap metrics computed",
		logger.Int("laps", laps),
		logger.Int("strokes", len(strokes)),
		logger.Int("turn_pairs", len(pairs)))
	return stats
}

// underwaterMetrics fills the manual-measurement block for one covered lap.
func (c *Calculator) underwaterMetrics(stat *model.LapStat, lap int, start, end float64, inWindow []model.Event, manual model.Measurements, waterEntry float64, hasWaterEntry bool) {
	breakoutAt := manual.BreakoutTime[lap]
	breakoutDist := manual.BreakoutDistance[lap]
	fifteenAt := manual.FifteenTime[lap]

	underwaterStart := start
	if lap == 0 && hasWaterEntry {
		underwaterStart = waterEntry
	}

	rel := breakoutAt - underwaterStart
	stat.BreakoutTimeRel = model.Float(rel)
	stat.BreakoutDistance = model.Float(breakoutDist)
	stat.UnderwaterSpeed = model.Float(ratio(breakoutDist, rel))

	overwaterDist := c.poolLength - breakoutDist - c.touchAllowance
	overwaterTime := end - breakoutAt
	for i := len(inWindow) - 1; i >= 0; i-- {
		if inWindow[i].Time > breakoutAt {
			overwaterTime = inWindow[i].Time - breakoutAt
			break
		}
	}
	stat.OverwaterSpeed = model.Float(ratio(overwaterDist, overwaterTime))

	stat.BreakoutToFifteen = model.Float(fifteenAt - breakoutAt)
	stat.FifteenToTurn = model.Float(end - fifteenAt)
}

// ratio divides guarding against a non-positive denominator.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// windowStrokes returns strokes inside [start, end); the final lap
// window also owns its closing timestamp.
func windowStrokes(strokes []model.Event, start, end float64, last bool) []model.Event {
	var out []model.Event
	for _, s := range strokes {
		if s.Time < start {
			continue
		}
		if s.Time > end || (s.Time == end && !last) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// firstTurnAfter returns the time of the first turn event strictly
// after t, defaulting to the window end when none follows.
func firstTurnAfter(turns []model.Event, t, windowEnd float64) float64 {
	for _, tr := range turns {
		if tr.Time > t {
			return tr.Time
		}
	}
	return windowEnd
}

// matchTurnPairs pairs adjacent turn_start/turn_end occurrences in the
// time-sorted turn list. An unpaired start is skipped, never matched to
// a later non-adjacent end.
func matchTurnPairs(turns []model.Event) []turnPair {
	var pairs []turnPair
	for i := 0; i+1 < len(turns); i++ {
		if turns[i].Type == model.EventTurnStart && turns[i+1].Type == model.EventTurnEnd {
			pairs = append(pairs, turnPair{start: turns[i].Time, end: turns[i+1].Time})
			i++
		}
	}
	return pairs
}

// pairForLap attributes a pair to a lap window. The pair bracketing the
// window's closing boundary wins: a lap owns the turn it ends with, and
// for every interior lap the opening boundary is the previous turn's
// turn_start, which must not be re-attributed. Only when no pair
// brackets the close does a pair strictly inside the window stand in.
func pairForLap(pairs []turnPair, start, end float64) (turnPair, bool) {
	for _, p := range pairs {
		if p.start <= end && end <= p.end {
			return p, true
		}
	}
	for _, p := range pairs {
		if start < p.start && p.start < end {
			return p, true
		}
	}
	return turnPair{}, false
}
