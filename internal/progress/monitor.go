// Package progress extracts coarse-grained progress from ffmpeg's
// line-oriented diagnostic stream.
//
// ffmpeg's stats output is not a stable contract, so the regex parsing
// lives entirely behind [Monitor] and the [SampleFunc] callback; if the
// diagnostic format changes, only this package changes.
package progress

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
)

// Sample is one surfaced progress update. Samples are ephemeral: derived
// from a single stream line and discarded after display.
type Sample struct {
	Elapsed float64 // Encoded media time in seconds.
	Percent float64 // 0-100, relative to the expected duration.
	FPS     float64 // Encoding frame rate; 0 when the line carried none.
}

// SampleFunc receives surfaced samples. It must not block; the monitor
// reads the stream in the caller's goroutine.
type SampleFunc func(Sample)

// State of the monitor. There is no transition back from StateDone.
type State int

const (
	StateRunning State = iota
	StateDone
)

var (
	timePattern = regexp.MustCompile(`time=(\d+):(\d+):(\d+\.\d+)`)
	fpsPattern  = regexp.MustCompile(`fps=\s*(\d+\.?\d*)`)
)

// Monitor consumes one encode's diagnostic stream and surfaces throttled
// progress samples. A Monitor is single-use: it is not restartable
// mid-stream, and a new encode needs a new Monitor.
type Monitor struct {
	duration float64
	emit     SampleFunc

	state   State
	success bool
	lastPct float64
}

// NewMonitor returns a monitor for a stream whose expected total duration
// is given in seconds. When duration is zero or negative the percentage is
// undefined and no samples are surfaced. emit may be nil.
func NewMonitor(duration float64, emit SampleFunc) *Monitor {
	return &Monitor{duration: duration, emit: emit, lastPct: -1}
}

// Consume reads r line by line until EOF, surfacing a sample whenever the
// computed percentage exceeds the last surfaced one by more than one
// point. Lines matching neither pattern are ignored. Consume blocks until
// the stream closes; it satisfies the ffmpeg executor's StreamConsumer.
func (m *Monitor) Consume(r io.Reader) {
	sc := bufio.NewScanner(r)
	// ffmpeg rewrites its stats line with \r, so split on both \r and \n.
	sc.Split(scanStatusLines)
	for sc.Scan() {
		m.observe(sc.Text())
	}
}

// observe parses one line and surfaces a sample when warranted.
func (m *Monitor) observe(line string) {
	if m.state == StateDone {
		return
	}
	elapsed, ok := parseElapsed(line)
	if !ok || m.duration <= 0 {
		return
	}

	pct := elapsed / m.duration * 100
	if pct > 100 {
		pct = 100
	}
	if pct <= m.lastPct+1 {
		return
	}
	m.lastPct = float64(int(pct))

	if m.emit != nil {
		m.emit(Sample{Elapsed: elapsed, Percent: pct, FPS: parseFPS(line)})
	}
}

// Finish transitions the monitor to its terminal state once the stream is
// closed and the process has exited. exitErr is the process wait error;
// the encode succeeded iff it is nil.
func (m *Monitor) Finish(exitErr error) {
	if m.state == StateDone {
		return
	}
	m.state = StateDone
	m.success = exitErr == nil
}

// Done reports whether the monitor reached its terminal state.
func (m *Monitor) Done() bool { return m.state == StateDone }

// Succeeded reports the final outcome; meaningful only once Done.
func (m *Monitor) Succeeded() bool { return m.state == StateDone && m.success }

// parseElapsed extracts "time=HH:MM:SS.frac" from a stats line as seconds.
func parseElapsed(line string) (float64, bool) {
	g := timePattern.FindStringSubmatch(line)
	if g == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(g[1])
	minutes, _ := strconv.Atoi(g[2])
	seconds, _ := strconv.ParseFloat(g[3], 64)
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

// parseFPS extracts the encoding frame rate; a line without one reads as 0
// rather than failing.
func parseFPS(line string) float64 {
	g := fpsPattern.FindStringSubmatch(line)
	if g == nil {
		return 0
	}
	fps, _ := strconv.ParseFloat(g[1], 64)
	return fps
}

// scanStatusLines is a bufio.SplitFunc that treats both \r and \n as line
// terminators, matching ffmpeg's in-place stats rewriting.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
