// Package csvio reads capture files and writes result tables. Malformed
// rows are rejected here; the domain core only ever sees validated
// numeric records.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/swimsplit/internal/domain/model"
)

// Sentinel kinds for capture-file errors.
var (
	ErrMalformedRow = errors.New("malformed row")
)

// ReadEvents parses an event log: one "type,time" row per event, an
// optional header, blank lines ignored.
func ReadEvents(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var events []model.Event
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line++
		if isBlank(rec) {
			continue
		}
		if line == 1 && isEventHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want 2", ErrMalformedRow, line, len(rec))
		}
		typ, err := model.ParseEventType(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad time %q", ErrMalformedRow, line, rec[1])
		}
		events = append(events, model.Event{Type: typ, Time: t})
	}
	return events, nil
}

// ReadMeasurements parses manual measurement rows, one lap per row:
// "breakout_time,breakout_distance,fifteen_time".
func ReadMeasurements(r io.Reader) (model.Measurements, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out model.Measurements
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Measurements{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line++
		if isBlank(rec) {
			continue
		}
		if line == 1 && isMeasurementHeader(rec) {
			continue
		}
		if len(rec) < 3 {
			return model.Measurements{}, fmt.Errorf("%w: line %d has %d fields, want 3", ErrMalformedRow, line, len(rec))
		}
		vals := make([]float64, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return model.Measurements{}, fmt.Errorf("%w: line %d: bad value %q", ErrMalformedRow, line, rec[i])
			}
			vals[i] = v
		}
		out.BreakoutTime = append(out.BreakoutTime, vals[0])
		out.BreakoutDistance = append(out.BreakoutDistance, vals[1])
		out.FifteenTime = append(out.FifteenTime, vals[2])
	}
	return out, nil
}

// isEventHeader reports whether the first row of an event file is
// labels rather than data. A row opening with a valid event type is
// data even when the rest is malformed; swallowing it as a header
// would hide the malformation.
func isEventHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := model.ParseEventType(rec[0])
	return err != nil
}

// isMeasurementHeader reports whether the first row of a measurement
// file is labels rather than data.
func isMeasurementHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	return err != nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
