package service

import (
	"github.com/okian/swimsplit/internal/adapters/repository"
	"github.com/okian/swimsplit/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore sets the race persistence backend. Without one, Analyze
// still works and Get/List report nothing.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithPoolLength sets the course length in race units.
func WithPoolLength(length float64) Option {
	return func(s *Service) {
		if length > 0 {
			s.poolLength = length
		}
	}
}

// WithTouchAllowance sets the hand-reach allowance in race units.
func WithTouchAllowance(allowance float64) Option {
	return func(s *Service) {
		if allowance >= 0 {
			s.touchAllowance = allowance
		}
	}
}

// WithDebounceWindow sets the boundary debounce window in seconds.
func WithDebounceWindow(window float64) Option {
	return func(s *Service) {
		if window > 0 {
			s.debounceWindow = window
		}
	}
}
