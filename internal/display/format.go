package display

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable binary size ("1.2 GiB").
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatDuration renders seconds as a compact clock string, e.g. "1h02m03s"
// or "4m05s"; sub-minute durations are plain seconds.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	s := d - m*time.Minute
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s/time.Second)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s/time.Second)
	default:
		return fmt.Sprintf("%ds", s/time.Second)
	}
}
