// Package filter computes the ffmpeg video filter chain for fitting a
// source into the target box and optionally burning in subtitles.
//
// Planning is pure: the same inputs always render the same filter string,
// and nothing here touches the filesystem or ffmpeg.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/backmassage/framefit/internal/config"
	"github.com/backmassage/framefit/internal/probe"
)

// ErrInvalidDimensions is returned when the probed source dimensions are
// zero or negative; the scale arithmetic must never see such values.
var ErrInvalidDimensions = errors.New("invalid source dimensions")

// Stage is one renderable element of the filter chain.
type Stage interface {
	Render() string
}

// Spec is the ordered filter chain for one file. Order is significant:
// scale/pad must precede subtitle burn-in so subtitles are rendered at
// final frame geometry.
type Spec struct {
	Stages []Stage
}

// Empty reports whether no filtering is needed. The caller skips
// transcoding entirely for an empty spec.
func (s Spec) Empty() bool { return len(s.Stages) == 0 }

// Render joins the stages into the ffmpeg -vf argument.
func (s Spec) Render() string {
	parts := make([]string, 0, len(s.Stages))
	for _, st := range s.Stages {
		parts = append(parts, st.Render())
	}
	return strings.Join(parts, ",")
}

// ScaleStage scales the source to fit the target box, padding with black
// bars when the scaled frame does not fill it.
type ScaleStage struct {
	Width, Height       int // Scaled frame dimensions (even).
	BoxWidth, BoxHeight int // Target box.
	PadX, PadY          int // Top-left offset of the frame inside the box.
}

// Padded reports whether black bars are needed. Zero padding means the
// scaled frame fills the box exactly.
func (s ScaleStage) Padded() bool { return s.PadX != 0 || s.PadY != 0 }

// Render emits "scale=W:H" for a box-filling frame, otherwise
// "scale=W:H,pad=BW:BH:X:Y:black".
func (s ScaleStage) Render() string {
	if !s.Padded() {
		return fmt.Sprintf("scale=%d:%d", s.Width, s.Height)
	}
	return fmt.Sprintf("scale=%d:%d,pad=%d:%d:%d:%d:black",
		s.Width, s.Height, s.BoxWidth, s.BoxHeight, s.PadX, s.PadY)
}

// SubtitleStage burns a subtitle file into the frames at a fixed font size.
type SubtitleStage struct {
	Path     string
	FontSize int
}

// Render emits the subtitles filter with the path escaped for ffmpeg's
// filter syntax (backslashes become forward slashes, colons are escaped).
func (s SubtitleStage) Render() string {
	return fmt.Sprintf("subtitles='%s':force_style='FontSize=%d'",
		escapeFilterPath(s.Path), s.FontSize)
}

// escapeFilterPath makes a filesystem path safe inside a filter argument.
// Windows separators are normalized to "/" and colons (drive letters,
// but also any other colon) are escaped so the path round-trips through
// ffmpeg's option parser.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	return strings.ReplaceAll(path, ":", `\:`)
}

// Plan computes the filter spec for one file. subtitlePath may be empty.
//
// An empty spec means the source is already at target geometry and there
// is nothing to burn in; the caller should skip the file. A source already
// at target geometry with a subtitle gets the subtitle stage alone.
func Plan(cfg *config.Config, src *probe.MediaInfo, subtitlePath string) (Spec, error) {
	if src.Width <= 0 || src.Height <= 0 {
		return Spec{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, src.Width, src.Height)
	}

	var spec Spec
	if src.Width != cfg.TargetWidth || src.Height != cfg.TargetHeight {
		spec.Stages = append(spec.Stages, planScale(src.Width, src.Height, cfg.TargetWidth, cfg.TargetHeight))
	}
	if subtitlePath != "" {
		spec.Stages = append(spec.Stages, SubtitleStage{Path: subtitlePath, FontSize: cfg.FontSize})
	}
	return spec, nil
}

// planScale computes the uniform scale factor and centered padding.
//
// Scaled dimensions are floored and then rounded down to the nearest even
// integer; most encoders reject odd dimensions for chroma-subsampled
// formats. Padding uses integer division, so an odd leftover pixel lands
// on the right/bottom edge. That asymmetry is accepted, not a bug.
func planScale(srcW, srcH, boxW, boxH int) ScaleStage {
	scale := min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))

	newW := int(float64(srcW) * scale)
	newH := int(float64(srcH) * scale)
	newW -= newW % 2
	newH -= newH % 2

	return ScaleStage{
		Width:     newW,
		Height:    newH,
		BoxWidth:  boxW,
		BoxHeight: boxH,
		PadX:      (boxW - newW) / 2,
		PadY:      (boxH - newH) / 2,
	}
}
