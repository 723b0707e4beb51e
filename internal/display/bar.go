package display

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// EncodeBar wraps the live progress bar shown while ffmpeg runs. It is a
// no-op when disabled (quiet mode or stdout not a TTY), so callers can
// update it unconditionally.
type EncodeBar struct {
	bar *progressbar.ProgressBar
}

// NewEncodeBar returns a 0-100 bar labelled with the file name, or a
// disabled bar when enabled is false.
func NewEncodeBar(name string, enabled bool) *EncodeBar {
	if !enabled {
		return &EncodeBar{}
	}
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Converting "+name),
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionSetWidth(24),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &EncodeBar{bar: bar}
}

// Update moves the bar to pct and shows the current encoding frame rate.
func (b *EncodeBar) Update(pct, fps float64) {
	if b.bar == nil {
		return
	}
	if fps > 0 {
		b.bar.Describe(fmt.Sprintf("Converting (%.0f fps)", fps))
	}
	_ = b.bar.Set(int(pct))
}

// Finish clears the bar from the terminal.
func (b *EncodeBar) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
