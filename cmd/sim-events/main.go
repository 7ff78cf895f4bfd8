// Command sim-events writes a synthetic race capture CSV for testing
// the analyzer end to end without a live stopwatch session.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/okian/swimsplit/internal/domain/model"
	"github.com/okian/swimsplit/internal/simevents"
)

func main() {
	var (
		details = flag.String("race", "Men's 100 Freestyle", "Race details, e.g. \"Women's 200 IM\"")
		out     = flag.String("out", "events.csv", "Output CSV path")
		lapLen  = flag.Int("lap-length", 25, "Pool length in race units")
		lapSec  = flag.Float64("lap-seconds", 16.0, "Base seconds per lap")
		tempo   = flag.Float64("tempo", 1.1, "Base seconds between strokes")
		seed    = flag.Int64("seed", 42, "Random seed; same seed, same capture")
	)
	flag.Parse()

	if err := run(*details, *out, *lapLen, *lapSec, *tempo, *seed); err != nil {
		os.Stderr.WriteString("sim-events failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(details, out string, lapLen int, lapSec, tempo float64, seed int64) error {
	race, err := model.ParseRaceDetails(details)
	if err != nil {
		return err
	}

	cfg := simevents.NewConfig(race)
	cfg.LapSeconds = lapSec
	cfg.TempoSeconds = tempo
	cfg.Seed = seed

	events, err := cfg.Generate(lapLen)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"type", "time"}); err != nil {
		return err
	}
	for _, e := range events {
		if err := cw.Write([]string{string(e.Type), strconv.FormatFloat(e.Time, 'f', 3, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	fmt.Printf("wrote %d events for %s to %s\n", len(events), race.Describe(), out)
	return nil
}
