package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/swimsplit/internal/domain/model"
	"github.com/okian/swimsplit/pkg/metrics"
)

// SQLiteStore implements Store on a local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS races (
		id          TEXT PRIMARY KEY,
		swimmer     TEXT,
		gender      TEXT,
		stroke      TEXT NOT NULL,
		distance    INTEGER NOT NULL,
		session     TEXT,
		relay       INTEGER NOT NULL DEFAULT 0,
		total_time  DOUBLE,
		created_at  TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS race_events (
		race_id     TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		type        TEXT NOT NULL,
		time        DOUBLE NOT NULL,
		PRIMARY KEY (race_id, seq),
		FOREIGN KEY (race_id) REFERENCES races(id)
	);
	CREATE TABLE IF NOT EXISTS race_measurements (
		race_id            TEXT NOT NULL,
		lap                INTEGER NOT NULL,
		breakout_time      DOUBLE,
		breakout_distance  DOUBLE,
		fifteen_time       DOUBLE,
		PRIMARY KEY (race_id, lap),
		FOREIGN KEY (race_id) REFERENCES races(id)
	);
`

// NewSQLiteStore opens (or creates) the sqlite database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveRace persists the race, its events and measurements in one
// transaction.
func (s *SQLiteStore) SaveRace(ctx context.Context, race StoredRace) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	totalTime := sql.NullFloat64{}
	if t, err := model.EndTime(race.Events); err == nil {
		totalTime = sql.NullFloat64{Float64: t, Valid: true}
	}

	created := race.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO races (id, swimmer, gender, stroke, distance, session, relay, total_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		race.ID, race.Race.Swimmer, string(race.Race.Gender), string(race.Race.Stroke),
		race.Race.Distance, race.Race.Session, race.Race.Relay, totalTime, created,
	); err != nil {
		metrics.RecordPersistenceError()
		return fmt.Errorf("insert race %s: %w", race.ID, err)
	}

	for seq, e := range race.Events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO race_events (race_id, seq, type, time) VALUES (?, ?, ?, ?)`,
			race.ID, seq, string(e.Type), e.Time,
		); err != nil {
			metrics.RecordPersistenceError()
			return fmt.Errorf("insert event %d for race %s: %w", seq, race.ID, err)
		}
	}

	m := race.Measurements
	for lap := 0; lap < len(m.BreakoutTime); lap++ {
		row := []any{race.ID, lap, m.BreakoutTime[lap], nullAt(m.BreakoutDistance, lap), nullAt(m.FifteenTime, lap)}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO race_measurements (race_id, lap, breakout_time, breakout_distance, fifteen_time)
			 VALUES (?, ?, ?, ?, ?)`, row...,
		); err != nil {
			metrics.RecordPersistenceError()
			return fmt.Errorf("insert measurement %d for race %s: %w", lap, race.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordPersistenceError()
		return fmt.Errorf("commit race %s: %w", race.ID, err)
	}

	if n, err := s.CountRaces(ctx); err == nil {
		metrics.UpdateRacesStored(n)
	}
	return nil
}

// GetRace loads a stored race with its events and measurements.
func (s *SQLiteStore) GetRace(ctx context.Context, id string) (StoredRace, error) {
	var (
		out    StoredRace
		gender string
		stroke string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, swimmer, gender, stroke, distance, session, relay, created_at
		 FROM races WHERE id = ?`, id,
	).Scan(&out.ID, &out.Race.Swimmer, &gender, &stroke, &out.Race.Distance,
		&out.Race.Session, &out.Race.Relay, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredRace{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return StoredRace{}, fmt.Errorf("load race %s: %w", id, err)
	}
	out.Race.Gender = model.Gender(gender)
	out.Race.Stroke = model.Stroke(stroke)

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, time FROM race_events WHERE race_id = ? ORDER BY seq`, id)
	if err != nil {
		return StoredRace{}, fmt.Errorf("load events for %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			typ string
			t   float64
		)
		if err := rows.Scan(&typ, &t); err != nil {
			return StoredRace{}, fmt.Errorf("scan event for %s: %w", id, err)
		}
		out.Events = append(out.Events, model.Event{Type: model.EventType(typ), Time: t})
	}
	if err := rows.Err(); err != nil {
		return StoredRace{}, fmt.Errorf("iterate events for %s: %w", id, err)
	}

	mrows, err := s.db.QueryContext(ctx,
		`SELECT breakout_time, breakout_distance, fifteen_time
		 FROM race_measurements WHERE race_id = ? ORDER BY lap`, id)
	if err != nil {
		return StoredRace{}, fmt.Errorf("load measurements for %s: %w", id, err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var bt, bd, ft sql.NullFloat64
		if err := mrows.Scan(&bt, &bd, &ft); err != nil {
			return StoredRace{}, fmt.Errorf("scan measurement for %s: %w", id, err)
		}
		// NULL columns mark laps the original ragged input never
		// covered; materializing them as 0.0 would fabricate data.
		if bt.Valid {
			out.Measurements.BreakoutTime = append(out.Measurements.BreakoutTime, bt.Float64)
		}
		if bd.Valid {
			out.Measurements.BreakoutDistance = append(out.Measurements.BreakoutDistance, bd.Float64)
		}
		if ft.Valid {
			out.Measurements.FifteenTime = append(out.Measurements.FifteenTime, ft.Float64)
		}
	}
	if err := mrows.Err(); err != nil {
		return StoredRace{}, fmt.Errorf("iterate measurements for %s: %w", id, err)
	}

	return out, nil
}

// ListRaces returns up to limit race summaries, newest first.
func (s *SQLiteStore) ListRaces(ctx context.Context, limit int) ([]RaceSummary, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, swimmer, gender, stroke, distance, session, relay, total_time, created_at
		 FROM races ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	defer rows.Close()

	var out []RaceSummary
	for rows.Next() {
		var (
			sum       RaceSummary
			gender    string
			stroke    string
			totalTime sql.NullFloat64
		)
		if err := rows.Scan(&sum.ID, &sum.Race.Swimmer, &gender, &stroke, &sum.Race.Distance,
			&sum.Race.Session, &sum.Race.Relay, &totalTime, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan race summary: %w", err)
		}
		sum.Race.Gender = model.Gender(gender)
		sum.Race.Stroke = model.Stroke(stroke)
		sum.Swimmer = sum.Race.Swimmer
		sum.Details = sum.Race.Describe()
		sum.TotalTime = totalTime.Float64
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate races: %w", err)
	}
	return out, nil
}

// CountRaces returns the stored race count.
func (s *SQLiteStore) CountRaces(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM races`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count races: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullAt returns vs[i] or NULL when the parallel slice is shorter.
func nullAt(vs []float64, i int) any {
	if i < len(vs) {
		return vs[i]
	}
	return nil
}
