// Package service provides the core analysis service that implements
// the dependencies required by the HTTP API and the batch CLI.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/swimsplit/internal/adapters/repository"
	"github.com/okian/swimsplit/internal/domain/aggregate"
	"github.com/okian/swimsplit/internal/domain/boundary"
	"github.com/okian/swimsplit/internal/domain/lapstats"
	"github.com/okian/swimsplit/internal/domain/model"
	"github.com/okian/swimsplit/pkg/logger"
	"github.com/okian/swimsplit/pkg/metrics"
)

// Analysis is the full computed output for one race. It is ephemeral:
// only the inputs are durable, and an identical input always reproduces
// an identical Analysis.
type Analysis struct {
	ID           string             `json:"id,omitempty"`
	Race         model.Race         `json:"race"`
	Boundaries   []float64          `json:"boundaries"`
	Laps         []model.LapStat    `json:"laps"`
	Overall      model.OverallStats `json:"overall"`
	Warnings     []boundary.Warning `json:"warnings,omitempty"`
	TotalTime    float64            `json:"total_time"`
	WaterEntry   *float64           `json:"water_entry,omitempty"`
	StrokeTempo  []float64          `json:"stroke_tempo,omitempty"`
	Events       []model.Event      `json:"-"`
	Measurements model.Measurements `json:"-"`
}

// Snapshot reports service counters for the /stats endpoint.
type Snapshot struct {
	RacesAnalyzed int64 `json:"races_analyzed"`
	Failures      int64 `json:"failures"`
	Degraded      int64 `json:"degraded"`
	RacesStored   int   `json:"races_stored"`
}

// Service wires the boundary detector, lap metrics calculator and
// aggregate statistics into one synchronous pipeline. The computation
// is pure batch work over an already-captured event list, so there is
// no queue or worker pool here.
type Service struct {
	detector   *boundary.Detector
	calculator *lapstats.Calculator
	store      repository.Store

	poolLength     float64
	touchAllowance float64
	debounceWindow float64
	lapLength      int

	analyzed atomic.Int64
	failed   atomic.Int64
	degraded atomic.Int64

	log logger.Logger
}

// New creates the analysis service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		poolLength:     25,
		touchAllowance: 0.5,
		debounceWindow: 0.1,
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.lapLength == 0 {
		s.lapLength = int(s.poolLength)
	}
	s.detector = boundary.New(
		boundary.WithDebounceWindow(s.debounceWindow),
		boundary.WithLapLength(s.lapLength),
		boundary.WithLogger(s.log.Named("boundary")),
	)
	s.calculator = lapstats.New(
		lapstats.WithPoolLength(s.poolLength),
		lapstats.WithTouchAllowance(s.touchAllowance),
		lapstats.WithLogger(s.log.Named("lapstats")),
	)
	return s
}

// Analyze runs the full pipeline over one captured race. A missing end
// event aborts the whole computation; an under-captured turn stream
// degrades to fewer laps and surfaces as warnings on the result.
func (s *Service) Analyze(ctx context.Context, race model.Race, events []model.Event, manual model.Measurements) (*Analysis, error) {
	started := time.Now()

	if err := model.ValidateEvents(events); err != nil {
		s.failed.Add(1)
		metrics.RecordAnalysisFailure()
		return nil, fmt.Errorf("analyze %s: %w", race.Describe(), err)
	}

	bounds, err := s.detector.Detect(ctx, race, events)
	if err != nil {
		s.failed.Add(1)
		metrics.RecordAnalysisFailure()
		return nil, fmt.Errorf("analyze %s: %w", race.Describe(), err)
	}
	if len(bounds.Warnings) > 0 {
		s.degraded.Add(1)
		metrics.RecordBoundaryFallback()
	}

	laps := s.calculator.Compute(ctx, events, bounds, manual)

	out := &Analysis{
		Race:         race,
		Boundaries:   bounds.Times,
		Laps:         laps,
		Overall:      aggregate.Overall(laps),
		Warnings:     bounds.Warnings,
		StrokeTempo:  aggregate.StrokeIntervals(events),
		Events:       events,
		Measurements: manual,
	}
	out.TotalTime, _ = model.EndTime(events)
	if t, ok := model.WaterEntryTime(events); ok {
		out.WaterEntry = model.Float(t)
	}

	s.analyzed.Add(1)
	metrics.RecordRaceAnalyzed()
	metrics.RecordLapCount(len(laps))
	metrics.RecordAnalysisDuration(time.Since(started).Seconds())
	s.log.Info(ctx, "race analyzed",
		logger.String("race", race.Describe()),
		logger.String("swimmer", race.Swimmer),
		logger.Int("laps", len(laps)),
		logger.Int("warnings", len(bounds.Warnings)))
	return out, nil
}

// AnalyzeAndStore analyzes the race and, when a store is configured,
// persists the captured inputs under a fresh id.
func (s *Service) AnalyzeAndStore(ctx context.Context, race model.Race, events []model.Event, manual model.Measurements) (*Analysis, error) {
	out, err := s.Analyze(ctx, race, events, manual)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return out, nil
	}

	out.ID = uuid.NewString()
	rec := repository.StoredRace{
		ID:           out.ID,
		Race:         race,
		Events:       events,
		Measurements: manual,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.SaveRace(ctx, rec); err != nil {
		return nil, fmt.Errorf("store race %s: %w", out.ID, err)
	}
	s.log.Debug(ctx, "race stored", logger.String("id", out.ID))
	return out, nil
}

// Get loads a stored race and recomputes its analysis. Statistics are
// never read back from disk; the capture is the record.
func (s *Service) Get(ctx context.Context, id string) (*Analysis, error) {
	if s.store == nil {
		return nil, fmt.Errorf("get race %s: %w", id, repository.ErrNotFound)
	}
	rec, err := s.store.GetRace(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.Analyze(ctx, rec.Race, rec.Events, rec.Measurements)
	if err != nil {
		return nil, err
	}
	out.ID = rec.ID
	return out, nil
}

// List returns stored race summaries, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]repository.RaceSummary, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListRaces(ctx, limit)
}

// Stats returns the service counter snapshot.
func (s *Service) Stats(ctx context.Context) Snapshot {
	snap := Snapshot{
		RacesAnalyzed: s.analyzed.Load(),
		Failures:      s.failed.Load(),
		Degraded:      s.degraded.Load(),
	}
	if s.store != nil {
		if n, err := s.store.CountRaces(ctx); err == nil {
			snap.RacesStored = n
		}
	}
	return snap
}

// Close releases the configured store, if any.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
