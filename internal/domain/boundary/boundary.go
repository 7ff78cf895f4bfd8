// Package boundary turns a flat capture-event stream into lap
// boundaries. Each stroke has its own wall-contact convention, so the
// detector dispatches on a strategy table keyed by stroke rather than
// nesting the conventions in one walk.
package boundary

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/swimsplit/internal/domain/model"
	"github.com/okian/swimsplit/pkg/logger"
)

// Default detection constants. The debounce window absorbs accidental
// double key-presses on the capture device.
const (
	defaultDebounceWindow = 0.1
	defaultLapLength      = 25
	imSegments            = 4
)

// Result is the outcome of boundary detection for one race.
type Result struct {
	// Times is the ordered boundary list. Times[0] is always 0.0 and
	// the last entry is the end-event time; strictly increasing.
	Times []float64

	// TurnPairLaps holds the lap indices expected to carry a complete
	// turn_start/turn_end pair: every turning lap for breaststroke and
	// butterfly, only the back-to-breast crossover lap for IM, none
	// for freestyle and backstroke.
	TurnPairLaps map[int]bool

	// Warnings carries non-fatal data-quality findings.
	Warnings []Warning
}

// Laps returns the lap count implied by the boundary list, never negative.
func (r Result) Laps() int {
	if len(r.Times) < 2 {
		return 0
	}
	return len(r.Times) - 1
}

// Detector maps turn events to lap boundaries for a race.
type Detector struct {
	debounce  float64
	lapLength int
	log       logger.Logger
}

// strategy produces the intermediate boundary times (everything between
// the implicit 0.0 and the end-event time) plus any warnings.
type strategy func(d *Detector, race model.Race, turns []model.Event) ([]float64, []Warning)

// Per-stroke wall-contact conventions. Freestyle and backstroke touch
// once, so the push-off marker is the boundary. Breaststroke and
// butterfly touch with two hands, so the touch itself bounds the lap
// and the paired push-off only feeds turn-time.
var strategies = map[model.Stroke]strategy{
	model.Freestyle:    (*Detector).singleTouch,
	model.Backstroke:   (*Detector).singleTouch,
	model.Breaststroke: (*Detector).twoHandTouch,
	model.Butterfly:    (*Detector).twoHandTouch,
	model.IM:           (*Detector).medleyWalk,
}

// New creates a Detector with the given options.
func New(opts ...Option) *Detector {
	d := &Detector{
		debounce:  defaultDebounceWindow,
		lapLength: defaultLapLength,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the ordered lap boundaries for the race. The absence
// of an end event is fatal; an under-captured turn stream degrades to a
// shorter boundary list with a warning. Callers must not assume the lap
// count matches distance over lap length.
func (d *Detector) Detect(ctx context.Context, race model.Race, events []model.Event) (Result, error) {
	endTime, err := model.EndTime(events)
	if err != nil {
		return Result{}, fmt.Errorf("detect boundaries: %w", err)
	}

	detect, ok := strategies[race.Stroke]
	if !ok {
		return Result{}, fmt.Errorf("detect boundaries: %w: %q", model.ErrUnknownStroke, race.Stroke)
	}

	turns := model.TurnEvents(events)
	times, warnings := detect(d, race, turns)

	times = append(times, 0.0, endTime)
	sort.Float64s(times)
	times = d.collapse(times)

	res := Result{
		Times:        times,
		TurnPairLaps: d.pairEligible(race, times, warnings),
		Warnings:     warnings,
	}
	for _, w := range res.Warnings {
		d.log.Warn(ctx, "boundary detection degraded",
			logger.String("kind", string(w.Kind)),
			logger.String("detail", w.Message),
			logger.String("stroke", string(race.Stroke)),
			logger.Int("laps", res.Laps()))
	}
	d.log.Debug(ctx, "boundaries detected",
		logger.String("stroke", string(race.Stroke)),
		logger.Int("distance", race.Distance),
		logger.Int("laps", res.Laps()))
	return res, nil
}

// singleTouch takes every turn_end as a boundary.
func (d *Detector) singleTouch(race model.Race, turns []model.Event) ([]float64, []Warning) {
	var times []float64
	for _, t := range turns {
		if t.Type == model.EventTurnEnd {
			times = append(times, t.Time)
		}
	}
	return times, d.checkCount(race, len(times))
}

// twoHandTouch takes every turn_start as a boundary; the paired
// turn_end is turn-time input only.
func (d *Detector) twoHandTouch(race model.Race, turns []model.Event) ([]float64, []Warning) {
	var times []float64
	for _, t := range turns {
		if t.Type == model.EventTurnStart {
			times = append(times, t.Time)
		}
	}
	return times, d.checkCount(race, len(times))
}

// medleyWalk classifies the race into fly, back, breast and free length
// groups and walks the time-sorted turn events consuming the subtype
// each group's wall contact demands. If the walk cannot produce the
// expected boundary count, its partial state is discarded and the first
// N chronological turn events of any subtype stand in.
func (d *Detector) medleyWalk(race model.Race, turns []model.Event) ([]float64, []Warning) {
	seg := d.segmentLengths(race.Distance)
	if seg == 0 {
		// Distance does not divide into four equal segments; no walk
		// is defined, so use the chronological fallback directly.
		return d.chronological(turns, len(turns)),
			[]Warning{newWarning(WarnInsufficientTurnEvents,
				fmt.Sprintf("no medley segmentation for distance %d", race.Distance))}
	}

	expected := imSegments*seg - 1
	times, ok := d.walk(turns, seg, expected)
	if ok {
		return times, nil
	}

	fallback := d.chronological(turns, expected)
	warnings := []Warning{newWarning(WarnInsufficientTurnEvents,
		fmt.Sprintf("medley walk needed %d boundaries, using first %d turn events", expected, len(fallback)))}
	return fallback, warnings
}

// walk consumes turn events per length group. Boundary k (1-based) ends
// length k-1; the group of a length is its index divided by the group
// size. Fly and breast groups consume a turn_start and skip its paired
// turn_end; back and free groups consume a turn_end. The back-to-breast
// crossover falls in the back group and keeps the turn_end convention.
func (d *Detector) walk(turns []model.Event, seg, expected int) ([]float64, bool) {
	times := make([]float64, 0, expected)
	i := 0
	for k := 1; k <= expected; k++ {
		want := model.EventTurnEnd
		switch (k - 1) / seg {
		case 0, 2: // fly, breast
			want = model.EventTurnStart
		}
		for i < len(turns) && turns[i].Type != want {
			i++
		}
		if i >= len(turns) {
			return nil, false
		}
		times = append(times, turns[i].Time)
		i++
		if want == model.EventTurnStart && i < len(turns) && turns[i].Type == model.EventTurnEnd {
			i++
		}
	}
	return times, true
}

// chronological returns the first n turn-event times regardless of
// subtype, or all of them when fewer exist.
func (d *Detector) chronological(turns []model.Event, n int) []float64 {
	if n > len(turns) {
		n = len(turns)
	}
	times := make([]float64, 0, n)
	for _, t := range turns[:n] {
		times = append(times, t.Time)
	}
	return times
}

// segmentLengths returns the lengths per medley segment, or 0 when the
// distance does not divide evenly.
func (d *Detector) segmentLengths(distance int) int {
	per := imSegments * d.lapLength
	if distance <= 0 || distance%per != 0 {
		return 0
	}
	return distance / per
}

// checkCount flags an under-captured turn stream for non-medley races.
func (d *Detector) checkCount(race model.Race, got int) []Warning {
	if d.lapLength <= 0 || race.Distance%d.lapLength != 0 {
		return nil
	}
	expected := race.Distance/d.lapLength - 1
	if expected < 0 || got >= expected {
		return nil
	}
	return []Warning{newWarning(WarnInsufficientTurnEvents,
		fmt.Sprintf("found %d turn boundaries, pattern expects %d", got, expected))}
}

// collapse merges boundaries closer than the debounce window, keeping
// the earlier of each colliding pair. Input must be sorted.
func (d *Detector) collapse(times []float64) []float64 {
	if len(times) == 0 {
		return times
	}
	out := times[:1]
	for _, t := range times[1:] {
		if t-out[len(out)-1] < d.debounce {
			continue
		}
		out = append(out, t)
	}
	return out
}

// pairEligible derives the turn-pair lap set from the final boundary
// list. A degraded medley detection cannot place the crossover, so it
// marks no laps.
func (d *Detector) pairEligible(race model.Race, times []float64, warnings []Warning) map[int]bool {
	laps := len(times) - 1
	if laps < 1 {
		return nil
	}
	eligible := make(map[int]bool)
	switch race.Stroke {
	case model.Breaststroke, model.Butterfly:
		for i := 0; i < laps-1; i++ {
			eligible[i] = true
		}
	case model.IM:
		if len(warnings) > 0 {
			return nil
		}
		seg := d.segmentLengths(race.Distance)
		crossover := 2*seg - 1
		if seg > 0 && crossover < laps {
			eligible[crossover] = true
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible
}
