// Package model contains the race domain records passed between layers:
// timestamped capture events, the race context, manually entered
// measurements, and the computed per-lap and overall statistics.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// EventType identifies a captured race event.
type EventType string

// Event types produced by the capture collaborator.
const (
	EventStart      EventType = "start"
	EventWaterEntry EventType = "water_entry"
	EventStroke     EventType = "stroke"
	EventTurnStart  EventType = "turn_start"
	EventTurnEnd    EventType = "turn_end"
	EventBreakout   EventType = "breakout"
	EventEnd        EventType = "end"
)

// ParseEventType validates a raw event type string.
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case EventStart, EventWaterEntry, EventStroke, EventTurnStart, EventTurnEnd, EventBreakout, EventEnd:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
}

// IsTurn reports whether the type is either half of a turn.
func (t EventType) IsTurn() bool {
	return t == EventTurnStart || t == EventTurnEnd
}

// Event is a single timestamped race event. Time is seconds from the
// race start, never negative.
type Event struct {
	Type EventType `json:"type"`
	Time float64   `json:"time"`
}

// Stroke identifies the swimming stroke of a race.
type Stroke string

// Recognized strokes.
const (
	Freestyle    Stroke = "freestyle"
	Backstroke   Stroke = "backstroke"
	Breaststroke Stroke = "breaststroke"
	Butterfly    Stroke = "butterfly"
	IM           Stroke = "im"
)

// ParseStroke validates a raw stroke string.
func ParseStroke(s string) (Stroke, error) {
	st := Stroke(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case Freestyle, Backstroke, Breaststroke, Butterfly, IM:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStroke, s)
}

// Gender of the race category.
type Gender string

// Recognized race categories.
const (
	Men   Gender = "men"
	Women Gender = "women"
)

// Race is the immutable context of one analysis run.
type Race struct {
	Swimmer  string `json:"swimmer"`
	Gender   Gender `json:"gender,omitempty"`
	Stroke   Stroke `json:"stroke"`
	Distance int    `json:"distance"`
	Session  string `json:"session,omitempty"`
	Relay    bool   `json:"relay,omitempty"`
}

// Describe renders the race in the conventional announcement form,
// e.g. "Men's 200 Breaststroke".
func (r Race) Describe() string {
	var b strings.Builder
	if r.Gender != "" {
		g := string(r.Gender)
		b.WriteString(strings.ToUpper(g[:1]) + g[1:] + "'s ")
	}
	b.WriteString(strconv.Itoa(r.Distance))
	b.WriteString(" ")
	s := string(r.Stroke)
	if r.Stroke == IM {
		b.WriteString("IM")
	} else {
		b.WriteString(strings.ToUpper(s[:1]) + s[1:])
	}
	return b.String()
}

// ParseRaceDetails parses the announcement form "Men's 50 Freestyle"
// into gender, distance and stroke.
func ParseRaceDetails(details string) (Race, error) {
	parts := strings.Fields(strings.TrimSpace(details))
	if len(parts) < 3 {
		return Race{}, fmt.Errorf("%w: %q", ErrBadRaceDetails, details)
	}

	gender := Gender(strings.TrimSuffix(strings.ToLower(parts[0]), "'s"))
	if gender != Men && gender != Women {
		return Race{}, fmt.Errorf("%w: unknown gender in %q", ErrBadRaceDetails, details)
	}

	distance, err := strconv.Atoi(parts[1])
	if err != nil || distance <= 0 {
		return Race{}, fmt.Errorf("%w: bad distance in %q", ErrBadRaceDetails, details)
	}

	stroke, err := ParseStroke(strings.Join(parts[2:], " "))
	if err != nil {
		return Race{}, fmt.Errorf("%w: %v", ErrBadRaceDetails, err)
	}

	return Race{Gender: gender, Distance: distance, Stroke: stroke}, nil
}

// Measurements holds optional manually entered values, one entry per
// lap. The slices are parallel and may be shorter than the lap count.
type Measurements struct {
	BreakoutTime     []float64 `json:"breakout_time"`
	BreakoutDistance []float64 `json:"breakout_distance"`
	FifteenTime      []float64 `json:"fifteen_time"`
}

// Covers reports whether manual data exists for the given lap index.
func (m Measurements) Covers(lap int) bool {
	return lap >= 0 &&
		lap < len(m.BreakoutTime) &&
		lap < len(m.BreakoutDistance) &&
		lap < len(m.FifteenTime)
}
