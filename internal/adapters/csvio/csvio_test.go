package csvio_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/swimsplit/internal/adapters/csvio"
	"github.com/okian/swimsplit/internal/domain/model"
)

func TestReadEvents(t *testing.T) {
	in := strings.Join([]string{
		"type,time",
		"start,0",
		"water_entry,0.42",
		"",
		"stroke, 2.15",
		"turn_end,25.3",
		"end,51.2",
	}, "\n")

	events, err := csvio.ReadEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 5)

	assert.Equal(t, model.EventStart, events[0].Type)
	assert.Equal(t, 0.42, events[1].Time)
	assert.Equal(t, model.EventStroke, events[2].Type)
	assert.Equal(t, 2.15, events[2].Time)
	assert.Equal(t, model.EventEnd, events[4].Type)
}

func TestReadEventsWithoutHeader(t *testing.T) {
	in := "start,0\nend,30.5\n"

	events, err := csvio.ReadEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 30.5, events[1].Time)
}

func TestReadEventsRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown type", "start,0\nsplash,3.0\nend,30\n"},
		{"bad time", "start,zero\n"},
		{"bad time on first row", "start,zero\nend,30\n"},
		{"too few fields", "type,time\nstart\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvio.ReadEvents(strings.NewReader(tt.in))
			require.Error(t, err)
		})
	}
}

func TestReadMeasurements(t *testing.T) {
	in := strings.Join([]string{
		"breakout_time,breakout_distance,fifteen_time",
		"1.5,5.0,6.5",
		"27.2,4.5,32.0",
	}, "\n")

	m, err := csvio.ReadMeasurements(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []float64{1.5, 27.2}, m.BreakoutTime)
	assert.Equal(t, []float64{5.0, 4.5}, m.BreakoutDistance)
	assert.Equal(t, []float64{6.5, 32.0}, m.FifteenTime)
	assert.True(t, m.Covers(1))
	assert.False(t, m.Covers(2))
}

func TestReadMeasurementsRejectsShortRows(t *testing.T) {
	_, err := csvio.ReadMeasurements(strings.NewReader("1.5,5.0\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvio.ErrMalformedRow))
}

func TestReadMeasurementsRejectsBadFirstRow(t *testing.T) {
	// A row starting with a number is data; a bad trailing value must
	// not be mistaken for a header.
	_, err := csvio.ReadMeasurements(strings.NewReader("1.5,5.0,abc\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvio.ErrMalformedRow))
}

func TestWriteLapStats(t *testing.T) {
	laps := []model.LapStat{
		{
			LapIndex:         0,
			LapTime:          14.456,
			StrokeCount:      11,
			StrokesPerSecond: 0.84615,
			TurnTime:         model.Float(1.518),
		},
		{
			LapIndex:         1,
			LapTime:          15.1,
			StrokeCount:      12,
			StrokesPerSecond: 0.9,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteLapStats(&buf, laps))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "lap,lap_time,stroke_count,strokes_per_second,turn_time,stroke_to_wall,breakout_time_rel,breakout_distance,underwater_speed,overwater_speed,breakout_to_fifteen,fifteen_to_turn", lines[0])

	// Laps number from 1 in presentation, values round to two decimals,
	// absent fields stay blank.
	assert.Equal(t, "1,14.46,11,0.85,1.52,,,,,,,", lines[1])
	assert.Equal(t, "2,15.10,12,0.90,,,,,,,,", lines[2])
}

func TestWriteOverall(t *testing.T) {
	overall := model.OverallStats{
		"Average lap_time":     15.456,
		"Average turn_time":    1.4449,
		"Average stroke_count": 12,
	}

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteOverall(&buf, overall))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "metric,value", lines[0])
	assert.Equal(t, "Average lap_time,15.46", lines[1])
	assert.Equal(t, "Average stroke_count,12.00", lines[2])
	assert.Equal(t, "Average turn_time,1.44", lines[3])
}
