package model

// Canonical stat field names. These double as report labels and as the
// keys of LapStat.Fields and OverallStats.
const (
	FieldLapTime           = "lap_time"
	FieldTurnTime          = "turn_time"
	FieldStrokeToWall      = "stroke_to_wall"
	FieldStrokeCount       = "stroke_count"
	FieldStrokesPerSecond  = "strokes_per_second"
	FieldBreakoutTimeRel   = "breakout_time_rel"
	FieldBreakoutDistance  = "breakout_distance"
	FieldUnderwaterSpeed   = "underwater_speed"
	FieldOverwaterSpeed    = "overwater_speed"
	FieldBreakoutToFifteen = "breakout_to_fifteen"
	FieldFifteenToTurn     = "fifteen_to_turn"
)

// LapStat is the computed record for one lap. Pointer fields are
// present only when their prerequisite data covered the lap; absent
// means absent, never zero.
type LapStat struct {
	LapIndex         int     `json:"lap"`
	LapTime          float64 `json:"lap_time"`
	StrokeCount      int     `json:"stroke_count"`
	StrokesPerSecond float64 `json:"strokes_per_second"`

	TurnTime     *float64 `json:"turn_time,omitempty"`
	StrokeToWall *float64 `json:"stroke_to_wall,omitempty"`

	BreakoutTimeRel   *float64 `json:"breakout_time_rel,omitempty"`
	BreakoutDistance  *float64 `json:"breakout_distance,omitempty"`
	UnderwaterSpeed   *float64 `json:"underwater_speed,omitempty"`
	OverwaterSpeed    *float64 `json:"overwater_speed,omitempty"`
	BreakoutToFifteen *float64 `json:"breakout_to_fifteen,omitempty"`
	FifteenToTurn     *float64 `json:"fifteen_to_turn,omitempty"`
}

// Fields returns the present numeric fields keyed by canonical name.
// The lap index is identity, not a metric, and is excluded.
func (s LapStat) Fields() map[string]float64 {
	out := map[string]float64{
		FieldLapTime:          s.LapTime,
		FieldStrokeCount:      float64(s.StrokeCount),
		FieldStrokesPerSecond: s.StrokesPerSecond,
	}
	put := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}
	put(FieldTurnTime, s.TurnTime)
	put(FieldStrokeToWall, s.StrokeToWall)
	put(FieldBreakoutTimeRel, s.BreakoutTimeRel)
	put(FieldBreakoutDistance, s.BreakoutDistance)
	put(FieldUnderwaterSpeed, s.UnderwaterSpeed)
	put(FieldOverwaterSpeed, s.OverwaterSpeed)
	put(FieldBreakoutToFifteen, s.BreakoutToFifteen)
	put(FieldFifteenToTurn, s.FifteenToTurn)
	return out
}

// OverallStats maps "Average <field>" to the mean over the laps where
// that field was present.
type OverallStats map[string]float64

// Float returns a pointer to v, for optional LapStat fields.
func Float(v float64) *float64 { return &v }
