// Package probe provides ffprobe-based media inspection. A single JSON
// call per file yields the dimensions and duration the planner needs.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when ffprobe finds no usable video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// MediaInfo holds the probed properties of one media file. It is read-only
// after probing.
type MediaInfo struct {
	Width    int
	Height   int
	Duration float64 // Container duration in seconds; 0 when unknown.
	Codec    string  // Video codec name (informational).
	Size     int64   // Container size in bytes.
}

// Resolution returns "WxH", or "unknown" when dimensions are missing.
func (m *MediaInfo) Resolution() string {
	if m.Width <= 0 || m.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(m.Width) + "x" + strconv.Itoa(m.Height)
}

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result.
func Probe(ctx context.Context, path string) (*MediaInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var video *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType == "video" && s.Disposition["attached_pic"] != 1 {
			video = s
			break
		}
	}
	if video == nil {
		return nil, ErrNoVideoStream
	}

	return &MediaInfo{
		Width:    video.Width,
		Height:   video.Height,
		Duration: parseFloat(raw.Format.Duration),
		Codec:    video.CodecName,
		Size:     parseInt64(raw.Format.Size),
	}, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

type ffprobeStream struct {
	CodecName   string         `json:"codec_name"`
	CodecType   string         `json:"codec_type"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Disposition map[string]int `json:"disposition"`
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
