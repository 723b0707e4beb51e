package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/backmassage/framefit/internal/config"
	"github.com/backmassage/framefit/internal/display"
	"github.com/backmassage/framefit/internal/logging"
	"github.com/backmassage/framefit/internal/naming"
	"github.com/backmassage/framefit/internal/probe"
)

// Inspect probes every discovered file and prints a tabular report of what
// a conversion run would do, without touching any output.
func Inspect(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	files, err := Discover(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("file discovery: %w", err)
	}
	if len(files) == 0 {
		log.Warn("No supported video files (.mp4, .mkv) found in %s", cfg.InputDir)
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Resolution", "Duration", "Codec", "Subs", "Action"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	var unreadable int
	for _, path := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		name := filepath.Base(path)
		mi, err := probe.Probe(ctx, path)
		if err != nil {
			unreadable++
			tw.AppendRow(table.Row{name, "?", "?", "?", "", "unreadable"})
			continue
		}

		subs := ""
		if naming.FindSubtitle(path) != "" {
			subs = "srt"
		}

		tw.AppendRow(table.Row{
			name,
			mi.Resolution(),
			display.FormatDuration(mi.Duration),
			mi.Codec,
			subs,
			inspectAction(cfg, mi.Width, mi.Height, subs != ""),
		})
	}
	tw.Render()

	log.Info("Inspected %d file(s)", len(files))
	if unreadable > 0 {
		log.Warn("%d file(s) could not be probed", unreadable)
	}
	return nil
}

// inspectAction mirrors the converter's skip decision for the report.
func inspectAction(cfg *config.Config, w, h int, hasSubs bool) string {
	switch {
	case w <= 0 || h <= 0:
		return "unreadable"
	case w == cfg.TargetWidth && h == cfg.TargetHeight && !hasSubs:
		return "skip"
	case hasSubs:
		return "convert+subs"
	default:
		return "convert"
	}
}
