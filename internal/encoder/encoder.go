// Package encoder models the available H.264 encoders as a closed set of
// kinds, each with a fixed speed/quality argument table, and auto-detects
// the best hardware encoder from ffmpeg's encoder listing.
package encoder

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/framefit/internal/config"
)

// Kind identifies one supported video encoder.
type Kind int

const (
	KindX264 Kind = iota // Software fallback, always present.
	KindNVENC
	KindAMF
	KindQSV
)

// Codec returns the ffmpeg -c:v encoder name.
func (k Kind) Codec() string {
	switch k {
	case KindNVENC:
		return "h264_nvenc"
	case KindAMF:
		return "h264_amf"
	case KindQSV:
		return "h264_qsv"
	default:
		return "libx264"
	}
}

// Label returns the human-readable name shown in logs.
func (k Kind) Label() string {
	switch k {
	case KindNVENC:
		return "NVIDIA NVENC"
	case KindAMF:
		return "AMD AMF"
	case KindQSV:
		return "Intel QuickSync"
	default:
		return "CPU (libx264)"
	}
}

// Args returns the fixed speed/quality arguments for the kind. The tables
// are exhaustive per kind; there is deliberately no generic lookup.
func (k Kind) Args() []string {
	switch k {
	case KindNVENC:
		return []string{
			"-preset", "p1", // Fastest preset.
			"-tune", "hq",
			"-rc", "vbr",
			"-cq", "23",
			"-b:v", "0", // Let CQ control bitrate.
			"-maxrate", "10M",
			"-bufsize", "20M",
		}
	case KindAMF:
		return []string{
			"-quality", "speed",
			"-rc", "vbr_peak",
			"-qp_i", "23",
			"-qp_p", "23",
		}
	case KindQSV:
		return []string{
			"-preset", "veryfast",
			"-global_quality", "23",
		}
	default:
		return []string{
			"-preset", "veryfast",
			"-crf", "23",
		}
	}
}

// FromChoice maps a validated config choice to a kind; EncoderAuto maps to
// (0, false) and the caller runs detection instead.
func FromChoice(c config.EncoderChoice) (Kind, bool) {
	switch c {
	case config.EncoderNVENC:
		return KindNVENC, true
	case config.EncoderAMF:
		return KindAMF, true
	case config.EncoderQSV:
		return KindQSV, true
	case config.EncoderX264:
		return KindX264, true
	default:
		return KindX264, false
	}
}

// detectOrder is the hardware preference; libx264 is the implicit fallback.
var detectOrder = []Kind{KindNVENC, KindAMF, KindQSV}

// Detect asks ffmpeg for its encoder list and returns the first available
// hardware kind, falling back to libx264.
func Detect(ctx context.Context) (Kind, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders")
	out, err := cmd.Output()
	if err != nil {
		return KindX264, fmt.Errorf("list ffmpeg encoders: %w", err)
	}
	return DetectFrom(string(out)), nil
}

// DetectFrom scans ffmpeg's -encoders output for the preferred hardware
// encoders. Exported for testing without an ffmpeg binary.
func DetectFrom(encoderList string) Kind {
	for _, k := range detectOrder {
		if strings.Contains(encoderList, k.Codec()) {
			return k
		}
	}
	return KindX264
}
