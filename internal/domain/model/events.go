package model

import (
	"fmt"
	"sort"
)

// ValidateEvents checks that a captured sequence is computable: events
// are time-ordered with non-negative times, exactly one start at time
// zero exists, and exactly one end exists. The end-event check is the
// fatal condition gating all lap computation; everything else about a
// sparse capture degrades later, not here.
func ValidateEvents(events []Event) error {
	starts, ends := 0, 0
	last := 0.0
	for i, e := range events {
		if _, err := ParseEventType(string(e.Type)); err != nil {
			return err
		}
		if e.Time < 0 {
			return fmt.Errorf("%w: negative time %.3f at index %d", ErrEventsOutOfOrder, e.Time, i)
		}
		if e.Time < last {
			return fmt.Errorf("%w: %.3f after %.3f at index %d", ErrEventsOutOfOrder, e.Time, last, i)
		}
		last = e.Time
		switch e.Type {
		case EventStart:
			starts++
			if e.Time != 0 {
				return fmt.Errorf("%w: start at %.3f, want 0", ErrEventsOutOfOrder, e.Time)
			}
		case EventEnd:
			ends++
		}
	}
	if starts != 1 {
		return fmt.Errorf("%w: found %d", ErrMissingStartEvent, starts)
	}
	if ends != 1 {
		return fmt.Errorf("%w: found %d", ErrMissingEndEvent, ends)
	}
	return nil
}

// EndTime returns the time of the end event.
func EndTime(events []Event) (float64, error) {
	for _, e := range events {
		if e.Type == EventEnd {
			return e.Time, nil
		}
	}
	return 0, ErrMissingEndEvent
}

// FilterEvents returns the events of the given type, capture order preserved.
func FilterEvents(events []Event, t EventType) []Event {
	var out []Event
	for _, e := range events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// TurnEvents returns every turn_start/turn_end sorted by time.
func TurnEvents(events []Event) []Event {
	var turns []Event
	for _, e := range events {
		if e.Type.IsTurn() {
			turns = append(turns, e)
		}
	}
	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Time < turns[j].Time })
	return turns
}

// WaterEntryTime returns the water_entry event time and whether one was captured.
func WaterEntryTime(events []Event) (float64, bool) {
	for _, e := range events {
		if e.Type == EventWaterEntry {
			return e.Time, true
		}
	}
	return 0, false
}
