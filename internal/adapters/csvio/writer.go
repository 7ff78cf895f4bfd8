package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/okian/swimsplit/internal/domain/aggregate"
	"github.com/okian/swimsplit/internal/domain/model"
)

// lapColumns is the stable column order for lap-stat tables. Optional
// columns are blank, not zero, when the field is absent.
var lapColumns = []string{
	model.FieldLapTime,
	model.FieldStrokeCount,
	model.FieldStrokesPerSecond,
	model.FieldTurnTime,
	model.FieldStrokeToWall,
	model.FieldBreakoutTimeRel,
	model.FieldBreakoutDistance,
	model.FieldUnderwaterSpeed,
	model.FieldOverwaterSpeed,
	model.FieldBreakoutToFifteen,
	model.FieldFifteenToTurn,
}

// WriteLapStats writes one row per lap with a header, two-decimal
// presentation rounding applied.
func WriteLapStats(w io.Writer, laps []model.LapStat) error {
	cw := csv.NewWriter(w)

	header := append([]string{"lap"}, lapColumns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, lap := range laps {
		fields := lap.Fields()
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(lap.LapIndex+1))
		for _, col := range lapColumns {
			v, ok := fields[col]
			if !ok {
				row = append(row, "")
				continue
			}
			if col == model.FieldStrokeCount {
				row = append(row, strconv.Itoa(int(v)))
				continue
			}
			row = append(row, strconv.FormatFloat(round2(v), 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write lap %d: %w", lap.LapIndex, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteOverall writes the "Average <field>" table in stable order.
func WriteOverall(w io.Writer, overall model.OverallStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, name := range aggregate.FieldNames(overall) {
		row := []string{name, strconv.FormatFloat(round2(overall[name]), 'f', 2, 64)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
