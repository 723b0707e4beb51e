package progress

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(duration float64, stream string) []Sample {
	var got []Sample
	m := NewMonitor(duration, func(s Sample) { got = append(got, s) })
	m.Consume(strings.NewReader(stream))
	return got
}

func TestMonitor_SurfacesThrottledSamples(t *testing.T) {
	// 100s duration: each line is 1 percentage point apart, so only every
	// other line clears the >1 point threshold.
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "frame=%d fps=25.0 time=00:00:%02d.00 bitrate=1000k\r", i*25, i)
	}
	got := collect(100, b.String())

	require.NotEmpty(t, got)
	last := -1.0
	for _, s := range got {
		assert.Greater(t, s.Percent, last+1, "each surfaced step must exceed the previous by >1 point")
		last = s.Percent
		assert.LessOrEqual(t, s.Percent, 100.0)
		assert.InDelta(t, 25.0, s.FPS, 0.001)
	}
}

func TestMonitor_ElapsedArithmetic(t *testing.T) {
	got := collect(10000, "time=01:02:03.50 fps= 30.5\n")
	require.Len(t, got, 1)
	assert.InDelta(t, 3723.5, got[0].Elapsed, 0.001)
	assert.InDelta(t, 30.5, got[0].FPS, 0.001)
}

func TestMonitor_PercentCappedAt100(t *testing.T) {
	got := collect(50, "time=00:02:00.00\n")
	require.Len(t, got, 1)
	assert.Equal(t, 100.0, got[0].Percent)
}

func TestMonitor_MissingFPSDefaultsToZero(t *testing.T) {
	got := collect(100, "time=00:00:30.00 bitrate=900k\n")
	require.Len(t, got, 1)
	assert.Zero(t, got[0].FPS)
}

func TestMonitor_UnmatchedLinesProduceNothing(t *testing.T) {
	got := collect(100, "Stream mapping:\nPress [q] to stop\n\n[libx264 @ 0x55] frame I:3\n")
	assert.Empty(t, got)
}

func TestMonitor_UnknownDurationProducesNothing(t *testing.T) {
	got := collect(0, "time=00:00:30.00 fps=25.0\n")
	assert.Empty(t, got)
	got = collect(-1, "time=00:00:30.00 fps=25.0\n")
	assert.Empty(t, got)
}

func TestMonitor_NonDecreasingPercentages(t *testing.T) {
	lines := []string{
		"time=00:00:05.00\r",
		"time=00:00:12.00\r",
		"time=00:00:12.50\r", // below threshold, dropped
		"time=00:00:40.00\r",
		"time=00:01:30.00\r",
	}
	got := collect(90, strings.Join(lines, ""))
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Percent, got[i-1].Percent)
	}
	assert.LessOrEqual(t, got[len(got)-1].Percent, 100.0)
}

func TestMonitor_CarriageReturnSplitting(t *testing.T) {
	// ffmpeg rewrites its stats line in place with \r and no \n.
	got := collect(100, "time=00:00:10.00 fps=20.0\rtime=00:00:50.00 fps=21.0\r")
	assert.Len(t, got, 2)
}

func TestMonitor_Lifecycle(t *testing.T) {
	m := NewMonitor(100, nil)
	assert.False(t, m.Done())

	m.Consume(strings.NewReader("time=00:00:10.00\n"))
	m.Finish(nil)
	assert.True(t, m.Done())
	assert.True(t, m.Succeeded())

	// Terminal: a later Finish with an error must not flip the outcome.
	m.Finish(errors.New("late"))
	assert.True(t, m.Succeeded())
}

func TestMonitor_FailureOutcome(t *testing.T) {
	m := NewMonitor(100, nil)
	m.Finish(errors.New("exit status 1"))
	assert.True(t, m.Done())
	assert.False(t, m.Succeeded())
}
