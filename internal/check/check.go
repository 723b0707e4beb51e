// Package check provides system diagnostics (the check subcommand) and
// pre-pipeline dependency validation for ffmpeg and ffprobe.
package check

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/framefit/internal/encoder"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
// Either one is fatal: the batch never starts without both tools.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps verifies that ffmpeg and ffprobe are on PATH. Returns a
// sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive check flow: prints ffmpeg/ffprobe
// availability, the H.264 encoders ffmpeg reports, and which one would be
// auto-selected. Informational only; returns false when a required tool
// is missing.
func RunCheck(ctx context.Context, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "ffmpeg")
	ok = checkTool(log, "ffprobe") && ok
	if !ok {
		return false
	}

	listH264Encoders(ctx, log)

	kind, err := encoder.Detect(ctx)
	if err != nil {
		log.Warn("Encoder detection failed: %v", err)
		return true
	}
	log.Success("Auto-detected encoder: %s (%s)", kind.Label(), kind.Codec())
	return true
}

// checkTool verifies the tool is on PATH and logs its version line.
func checkTool(log Logger, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// listH264Encoders prints all H.264 encoders reported by ffmpeg.
func listH264Encoders(ctx context.Context, log Logger) {
	log.Info("H.264 encoders:")
	cmd := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "h264") || strings.Contains(lower, "h.264") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}
