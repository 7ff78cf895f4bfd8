package boundary

import "github.com/okian/swimsplit/pkg/logger"

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithDebounceWindow sets the minimum spacing between boundaries in
// seconds. Closer pairs collapse to the earlier press.
func WithDebounceWindow(window float64) Option {
	return func(d *Detector) {
		if window > 0 {
			d.debounce = window
		}
	}
}

// WithLapLength sets the pool length in course units, used for expected
// turn counts and medley segmentation.
func WithLapLength(length int) Option {
	return func(d *Detector) {
		if length > 0 {
			d.lapLength = length
		}
	}
}

// WithLogger sets the detector's logger.
func WithLogger(log logger.Logger) Option {
	return func(d *Detector) {
		if log != nil {
			d.log = log
		}
	}
}
