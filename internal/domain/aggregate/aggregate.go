// Package aggregate folds per-lap statistics into whole-race averages.
package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/swimsplit/internal/domain/model"
)

// AveragePrefix is prepended to every aggregated field name.
const AveragePrefix = "Average "

// Overall computes the mean of every numeric field over exactly the
// laps where that field is present. An absent field contributes
// nothing; it is never treated as zero. The lap index is identity and
// is excluded by LapStat.Fields.
func Overall(laps []model.LapStat) model.OverallStats {
	series := make(map[string][]float64)
	for _, lap := range laps {
		for name, v := range lap.Fields() {
			series[name] = append(series[name], v)
		}
	}

	out := make(model.OverallStats, len(series))
	for name, values := range series {
		out[AveragePrefix+name] = stat.Mean(values, nil)
	}
	return out
}

// StrokeIntervals returns the gaps between consecutive stroke events
// across the whole race, the capture-side view of tempo.
func StrokeIntervals(events []model.Event) []float64 {
	strokes := model.FilterEvents(events, model.EventStroke)
	if len(strokes) < 2 {
		return nil
	}
	intervals := make([]float64, 0, len(strokes)-1)
	for i := 1; i < len(strokes); i++ {
		intervals = append(intervals, strokes[i].Time-strokes[i-1].Time)
	}
	return intervals
}

// MeanStrokeInterval averages the tempo gaps; ok is false when fewer
// than two strokes were captured.
func MeanStrokeInterval(events []model.Event) (float64, bool) {
	intervals := StrokeIntervals(events)
	if len(intervals) == 0 {
		return 0, false
	}
	return stat.Mean(intervals, nil), true
}

// FieldNames returns the aggregated field names in stable order, for
// deterministic rendering.
func FieldNames(stats model.OverallStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
