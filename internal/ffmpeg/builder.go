// Package ffmpeg builds and executes the ffmpeg conversion command,
// streaming the diagnostic output to a consumer while the process runs.
package ffmpeg

import (
	"github.com/backmassage/framefit/internal/encoder"
	"github.com/backmassage/framefit/internal/filter"
)

// Build constructs the complete ffmpeg argument slice for one conversion:
// input, optional combined filter chain, encoder selection with its fixed
// argument table, audio pass-through, and web-optimized output.
func Build(inputPath, outputPath string, spec filter.Spec, kind encoder.Kind) []string {
	args := make([]string, 0, 32)

	args = append(args, "ffmpeg",
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-stats", "-stats_period", "1",
	)

	args = append(args, "-i", inputPath)

	if !spec.Empty() {
		args = append(args, "-vf", spec.Render())
	}

	args = append(args, "-c:v", kind.Codec())
	args = append(args, kind.Args()...)

	// Audio is never re-encoded.
	args = append(args, "-c:a", "copy")

	// Move the moov atom up front so output streams over HTTP immediately.
	args = append(args, "-movflags", "+faststart")

	args = append(args, outputPath)
	return args
}
