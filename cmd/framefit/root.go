package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/framefit/internal/check"
	"github.com/backmassage/framefit/internal/config"
	"github.com/backmassage/framefit/internal/display"
	"github.com/backmassage/framefit/internal/logging"
	"github.com/backmassage/framefit/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// rootFlags carries CLI flag values before they are merged into the
// config. Merging happens after the optional TOML file loads, so that the
// precedence is flags > file > defaults.
type rootFlags struct {
	configFile string
	encoder    string
	fontSize   int
	force      bool
	dryRun     bool
	noProgress bool
	colorMode  string
	logFile    string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "framefit [flags] [input_dir [output_dir]]",
		Short: "Batch-convert videos to 1920x1080 with burned-in subtitles",
		Long: `framefit converts every .mp4/.mkv file in a directory to a 1920x1080
MP4, preserving aspect ratio with black bars. A same-stem .srt file next
to a video is burned into the frames. Files already at target resolution
with no subtitles, and files whose output already exists, are skipped.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, &flags, args)
			if err != nil {
				return err
			}
			defer log.Close()

			return runConvert(cmd.Context(), cfg, log)
		},
	}

	registerRootFlags(cmd, &flags)
	cmd.AddCommand(newCheckCommand(&flags))
	cmd.AddCommand(newInspectCommand(&flags))
	return cmd
}

func registerRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "TOML config file (default: per-user config dir)")
	pf.StringVar(&flags.colorMode, "color", "", "Color output: auto | always | never")
	pf.StringVarP(&flags.logFile, "log", "l", "", "Append logs to file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")

	f := cmd.Flags()
	f.StringVarP(&flags.encoder, "encoder", "e", "", "Encoder: auto | nvenc | amf | qsv | x264")
	f.IntVar(&flags.fontSize, "font-size", 0, "Burned-in subtitle font size")
	f.BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output files")
	f.BoolVarP(&flags.dryRun, "dry-run", "d", false, "Preview only; do not convert")
	f.BoolVar(&flags.noProgress, "no-progress", false, "Disable the live progress bar")
}

// setup builds the effective config (defaults -> TOML file -> flags ->
// positional args), validates it, and constructs the logger.
func setup(cmd *cobra.Command, flags *rootFlags, args []string) (*config.Config, *logging.Logger, error) {
	cfg := config.DefaultConfig()

	filePath := flags.configFile
	if filePath == "" {
		filePath = config.DefaultFilePath()
	}
	if err := config.LoadFileIfPresent(filePath, &cfg); err != nil {
		return nil, nil, err
	}

	applyFlags(cmd, flags, &cfg)

	if len(args) > 0 {
		cfg.InputDir = config.NormalizeDirArg(args[0])
	}
	if len(args) > 1 {
		cfg.OutputDir = config.NormalizeDirArg(args[1])
	}
	cfg.ResolveOutputDir()

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, log, nil
}

// applyFlags copies only the flags the user actually set, so TOML values
// survive unless overridden on the command line.
func applyFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	changed := func(name string) bool {
		if f := cmd.Flags().Lookup(name); f != nil {
			return f.Changed
		}
		return false
	}

	if changed("encoder") {
		cfg.Encoder = config.EncoderChoice(flags.encoder)
	}
	if changed("font-size") {
		cfg.FontSize = flags.fontSize
	}
	if changed("force") && flags.force {
		cfg.SkipExisting = false
	}
	if changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if changed("no-progress") && flags.noProgress {
		cfg.ShowProgress = false
	}
	if changed("color") {
		cfg.ColorMode = config.ColorMode(flags.colorMode)
	}
	if changed("log") {
		cfg.LogFile = flags.logFile
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
}

// runConvert validates paths and dependencies, wires signal handling, and
// runs the batch. Per-file failures do not fail the process; only a
// missing dependency, a path problem, or an interrupt does.
func runConvert(parent context.Context, cfg *config.Config, log *logging.Logger) error {
	display.PrintBanner()

	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("input not found: %s", cfg.InputDir)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %s", cfg.OutputDir)
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("cannot resolve output path: %s", cfg.OutputDir)
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		return err
	}

	// Fail fast before any work when ffmpeg/ffprobe are unavailable.
	if err := check.CheckDeps(); err != nil {
		return err
	}

	log.Info("=== framefit v%s ===", version)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN - no files will be written")
	}

	ctx, cancel := signalContext(parent, log)
	defer cancel()

	pipeline.Run(ctx, cfg, log)

	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// signalContext cancels the returned context on SIGINT/SIGTERM so the
// pipeline stops between reads without leaving partial output.
func signalContext(parent context.Context, log *logging.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directories.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
