// Package report renders computed race analyses for people: a plain
// text summary and an HTML chart page. All rounding to two decimals
// happens here; the domain keeps full precision.
package report

import (
	"fmt"
	"strings"

	service "github.com/okian/swimsplit/internal/app"
	"github.com/okian/swimsplit/internal/domain/aggregate"
)

// Summary renders the race summary block.
func Summary(a *service.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Swimmer: %s\n", a.Race.Swimmer)
	fmt.Fprintf(&b, "Race Details: %s\n", a.Race.Describe())
	b.WriteString("\nRace Metrics:\n")
	fmt.Fprintf(&b, "  Total Race Time: %.2f seconds\n", a.TotalTime)
	if a.WaterEntry != nil {
		fmt.Fprintf(&b, "  Water Entry Time: %.2f seconds\n", *a.WaterEntry)
	}

	for _, lap := range a.Laps {
		fmt.Fprintf(&b, "  Lap %d: Time = %.2f s, Strokes = %d", lap.LapIndex+1, lap.LapTime, lap.StrokeCount)
		if lap.TurnTime != nil {
			fmt.Fprintf(&b, ", Turn = %.2f s", *lap.TurnTime)
		}
		if lap.UnderwaterSpeed != nil {
			fmt.Fprintf(&b, ", Underwater = %.2f u/s", *lap.UnderwaterSpeed)
		}
		if lap.OverwaterSpeed != nil {
			fmt.Fprintf(&b, ", Overwater = %.2f u/s", *lap.OverwaterSpeed)
		}
		b.WriteString("\n")
	}

	if len(a.Overall) > 0 {
		b.WriteString("\nAverages:\n")
		for _, name := range aggregate.FieldNames(a.Overall) {
			fmt.Fprintf(&b, "  %s: %.2f\n", title(name), a.Overall[name])
		}
	}

	if len(a.StrokeTempo) > 0 {
		mean, ok := aggregate.MeanStrokeInterval(a.Events)
		if ok {
			fmt.Fprintf(&b, "\n  Avg Stroke Interval: %.2f seconds\n", mean)
		}
	}

	for _, w := range a.Warnings {
		fmt.Fprintf(&b, "\n  Data quality: %s\n", w.Message)
	}

	return b.String()
}

// title turns "Average lap_time" into "Average Lap Time".
func title(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
