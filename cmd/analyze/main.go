// Command analyze runs the offline analysis flow: read a captured
// event log (and optional manual measurements), compute lap metrics,
// print the summary and write the report artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/swimsplit/internal/adapters/csvio"
	"github.com/okian/swimsplit/internal/adapters/report"
	"github.com/okian/swimsplit/internal/adapters/repository"
	service "github.com/okian/swimsplit/internal/app"
	"github.com/okian/swimsplit/internal/config"
	"github.com/okian/swimsplit/internal/domain/model"
	"github.com/okian/swimsplit/pkg/logger"
)

func main() {
	var (
		eventsPath  = flag.String("events", "", "Path to the captured events CSV (type,time)")
		manualPath  = flag.String("manual", "", "Optional manual measurements CSV (breakout_time,breakout_distance,fifteen_time)")
		details     = flag.String("race", "", "Race details, e.g. \"Men's 50 Freestyle\"")
		swimmer     = flag.String("swimmer", "", "Swimmer name")
		sessionName = flag.String("session", "", "Session label")
		persist     = flag.Bool("persist", false, "Store the capture in the configured database")
		htmlReport  = flag.Bool("html", true, "Write the HTML chart report")
		csvOut      = flag.Bool("csv", true, "Write lap and average CSV tables")
	)
	flag.Parse()

	if err := run(*eventsPath, *manualPath, *details, *swimmer, *sessionName, *persist, *htmlReport, *csvOut); err != nil {
		os.Stderr.WriteString("analyze failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(eventsPath, manualPath, details, swimmer, session string, persist, htmlReport, csvOut bool) error {
	if eventsPath == "" || details == "" {
		return fmt.Errorf("both -events and -race are required")
	}

	if err := logger.Init(); err != nil {
		return err
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	race, err := model.ParseRaceDetails(details)
	if err != nil {
		return err
	}
	race.Swimmer = swimmer
	race.Session = session

	events, err := readEvents(eventsPath)
	if err != nil {
		return err
	}
	var manual model.Measurements
	if manualPath != "" {
		if manual, err = readMeasurements(manualPath); err != nil {
			return err
		}
	}

	opts := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithPoolLength(cfg.PoolLength),
		service.WithTouchAllowance(cfg.TouchAllowance),
		service.WithDebounceWindow(cfg.DebounceWindow),
	}
	if persist && cfg.DBPath != "" {
		store, err := repository.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithStore(store))
	}
	svc := service.New(opts...)
	defer svc.Close() //nolint:errcheck // best-effort close on exit

	analysis, err := svc.AnalyzeAndStore(ctx, race, events, manual)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("Race Summary")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println(report.Summary(analysis))

	if htmlReport {
		path, err := report.WriteHTMLFile(cfg.ReportDir, analysis)
		if err != nil {
			return err
		}
		fmt.Printf("HTML report written: %s\n", path)
	}
	if csvOut {
		if err := writeTables(cfg.ReportDir, analysis); err != nil {
			return err
		}
	}
	return nil
}

func readEvents(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	return csvio.ReadEvents(f)
}

func readMeasurements(path string) (model.Measurements, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Measurements{}, fmt.Errorf("open measurements file: %w", err)
	}
	defer f.Close()
	return csvio.ReadMeasurements(f)
}

func writeTables(dir string, a *service.Analysis) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	base := strings.ReplaceAll(a.Race.Swimmer, " ", "_")
	if base == "" {
		base = "race"
	}

	lapsPath := filepath.Join(dir, base+"_laps.csv")
	lf, err := os.Create(lapsPath)
	if err != nil {
		return fmt.Errorf("create laps table: %w", err)
	}
	defer lf.Close()
	if err := csvio.WriteLapStats(lf, a.Laps); err != nil {
		return err
	}

	avgPath := filepath.Join(dir, base+"_averages.csv")
	af, err := os.Create(avgPath)
	if err != nil {
		return fmt.Errorf("create averages table: %w", err)
	}
	defer af.Close()
	if err := csvio.WriteOverall(af, a.Overall); err != nil {
		return err
	}

	fmt.Printf("CSV tables written: %s, %s\n", lapsPath, avgPath)
	return nil
}
