// Package pipeline orchestrates file discovery, per-file conversion, and
// batch summary reporting. Files are processed strictly sequentially; the
// only concurrency is the external ffmpeg process running beside the
// blocking progress reader.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/framefit/internal/config"
	"github.com/backmassage/framefit/internal/display"
	"github.com/backmassage/framefit/internal/encoder"
	"github.com/backmassage/framefit/internal/ffmpeg"
	"github.com/backmassage/framefit/internal/filter"
	"github.com/backmassage/framefit/internal/logging"
	"github.com/backmassage/framefit/internal/naming"
	"github.com/backmassage/framefit/internal/probe"
	"github.com/backmassage/framefit/internal/progress"
	"github.com/backmassage/framefit/internal/term"
)

// Run is the top-level batch entry point. It discovers files, resolves the
// encoder once, processes each file sequentially, and returns aggregate
// stats. Per-file failures do not stop the batch; a cancelled context does.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats
	}
	stats.Total = len(files)
	if stats.Total == 0 {
		log.Warn("No supported video files (.mp4, .mkv) found in %s", cfg.InputDir)
		return stats
	}

	kind, err := resolveEncoder(ctx, cfg)
	if err != nil {
		log.Warn("Encoder detection failed (%v), using %s", err, kind.Label())
	}

	log.Info("Found %d file(s)", stats.Total)
	log.Info("Encoder: %s (%s)", kind.Label(), kind.Codec())
	log.Info("Target box: %dx%d, subtitle font size %d", cfg.TargetWidth, cfg.TargetHeight, cfg.FontSize)
	log.Info("Output: %s", cfg.OutputDir)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processFile(ctx, cfg, log, kind, path, &stats)
	}

	logSummary(cfg, log, &stats)
	return stats
}

// resolveEncoder maps a forced config choice or runs auto-detection.
func resolveEncoder(ctx context.Context, cfg *config.Config) (encoder.Kind, error) {
	if kind, ok := encoder.FromChoice(cfg.Encoder); ok {
		return kind, nil
	}
	return encoder.Detect(ctx)
}

// processFile handles one media file: probe → find subtitle → plan →
// skip checks → convert with progress monitoring.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	kind encoder.Kind,
	path string,
	stats *RunStats,
) {
	basename := filepath.Base(path)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	// --- Probe ---
	mi, err := probe.Probe(ctx, path)
	if err != nil {
		log.Error("  Cannot probe file, skipping: %v", err)
		stats.Failed++
		return
	}
	log.Info("  Source: %s, %s, %s", mi.Resolution(), mi.Codec, display.FormatDuration(mi.Duration))

	// --- Subtitle discovery ---
	subtitle := naming.FindSubtitle(path)
	if subtitle != "" {
		log.Info("  Subtitles: %s", filepath.Base(subtitle))
	}

	// --- Plan ---
	spec, err := filter.Plan(cfg, mi, subtitle)
	if err != nil {
		log.Error("  Unusable video stream, skipping: %v", err)
		stats.Failed++
		return
	}
	if spec.Empty() {
		log.Success("  Already %dx%d with nothing to burn in, skipping", cfg.TargetWidth, cfg.TargetHeight)
		stats.Skipped++
		return
	}

	// --- Skip-existing check ---
	outputPath := naming.OutputPath(path, cfg.OutputDir, subtitle != "")
	if cfg.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			log.Warn("  Skip (exists): %s", filepath.Base(outputPath))
			stats.Skipped++
			return
		}
	}

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("  [DRY] Would convert -> %s (filter: %s)", filepath.Base(outputPath), spec.Render())
		stats.Converted++
		return
	}

	// --- Convert ---
	start := time.Now()
	args := ffmpeg.Build(path, outputPath, spec, kind)
	log.Debug("  ffmpeg args: %v", args[1:])

	barEnabled := cfg.ShowProgress && term.IsTerminal(os.Stdout)
	bar := display.NewEncodeBar(basename, barEnabled)
	monitor := progress.NewMonitor(mi.Duration, func(s progress.Sample) {
		bar.Update(s.Percent, s.FPS)
		if !barEnabled {
			log.Debug("  Progress: %.0f%% (%.0f fps)", s.Percent, s.FPS)
		}
	})

	err = ffmpeg.Execute(ctx, args, monitor)
	monitor.Finish(err)
	bar.Finish()

	if !monitor.Succeeded() {
		if errors.Is(ctx.Err(), context.Canceled) {
			log.Warn("  Conversion interrupted")
		} else {
			log.Error("  Conversion failed: %v", err)
		}
		// Never leave a partial output behind.
		_ = os.Remove(outputPath)
		stats.Failed++
		return
	}

	// --- Update stats ---
	elapsed := time.Since(start).Round(time.Second)
	stats.TotalInputBytes += mi.Size
	if outInfo, err := os.Stat(outputPath); err == nil {
		stats.TotalOutputBytes += outInfo.Size()
	}
	stats.Converted++
	log.Success("  Converted in %s -> %s", elapsed, filepath.Base(outputPath))
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)

	if cfg.DryRun || stats.Converted == 0 {
		return
	}
	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Info("  Size: input %s -> output %s (saved %s)",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes),
			display.FormatBytes(saved))
	} else {
		log.Warn("  Size: output grew by %s", display.FormatBytes(-saved))
	}
}
