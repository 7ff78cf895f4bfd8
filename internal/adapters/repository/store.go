// Package repository persists captured races. Events and manual
// measurements are the durable record; computed statistics are
// ephemeral and recomputed on every read.
package repository

import (
	"context"
	"time"

	"github.com/okian/swimsplit/internal/domain/model"
)

// StoredRace is the durable record of one captured race.
type StoredRace struct {
	ID           string
	Race         model.Race
	Events       []model.Event
	Measurements model.Measurements
	CreatedAt    time.Time
}

// RaceSummary is the listing view of a stored race.
type RaceSummary struct {
	ID        string     `json:"id"`
	Swimmer   string     `json:"swimmer"`
	Details   string     `json:"details"`
	TotalTime float64    `json:"total_time"`
	CreatedAt time.Time  `json:"created_at"`
	Race      model.Race `json:"race"`
}

// Store provides durable access to captured races.
type Store interface {
	// SaveRace persists a captured race with its events and manual
	// measurements.
	SaveRace(ctx context.Context, race StoredRace) error

	// GetRace returns a stored race by id. Returns ErrNotFound when
	// the id is unknown.
	GetRace(ctx context.Context, id string) (StoredRace, error)

	// ListRaces returns up to limit summaries, newest first.
	ListRaces(ctx context.Context, limit int) ([]RaceSummary, error)

	// CountRaces returns the number of stored races.
	CountRaces(ctx context.Context) (int, error)

	// Close releases the underlying database.
	Close() error
}
