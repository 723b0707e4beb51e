// Package config holds runtime configuration: defaults, optional TOML file
// loading, and validation. All defaults match the legacy converter script.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// EncoderChoice selects the video encoder, or requests auto-detection.
type EncoderChoice string

const (
	EncoderAuto  EncoderChoice = "auto"  // Probe ffmpeg for the best hardware encoder (default).
	EncoderNVENC EncoderChoice = "nvenc" // Force NVIDIA NVENC.
	EncoderAMF   EncoderChoice = "amf"   // Force AMD AMF.
	EncoderQSV   EncoderChoice = "qsv"   // Force Intel QuickSync.
	EncoderX264  EncoderChoice = "x264"  // Force software libx264.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a TOML file ([LoadFile]), and then mutated by CLI
// flag handling before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args; OutputDir defaults to
	// <InputDir>/converted when empty).
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`

	// Target frame geometry. The converter letterboxes/pillarboxes every
	// source into this box.
	TargetWidth  int `toml:"target_width"`  // Default: 1920.
	TargetHeight int `toml:"target_height"` // Default: 1080.

	// Encoder selection.
	Encoder EncoderChoice `toml:"encoder"` // Default: "auto".

	// Subtitle burn-in.
	FontSize int `toml:"font_size"` // Default: 20. Fixed ASS force_style size.

	// Behavior flags.
	DryRun       bool `toml:"-"`
	SkipExisting bool `toml:"skip_existing"` // Default: true. Cleared by --force.

	// Display and logging.
	Verbose      bool      `toml:"verbose"`
	ShowProgress bool      `toml:"show_progress"` // Default: true. Live per-file bar.
	ColorMode    ColorMode `toml:"color"`         // Default: "auto".
	LogFile      string    `toml:"log_file"`      // Optional log file path.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// converter. Used as the base before file and flag overrides apply.
func DefaultConfig() Config {
	return Config{
		InputDir:     ".",
		TargetWidth:  1920,
		TargetHeight: 1080,
		Encoder:      EncoderAuto,
		FontSize:     20,
		SkipExisting: true,
		ShowProgress: true,
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and the target geometry. Target dimensions
// must be positive and even; odd dimensions are rejected by most encoders
// for chroma-subsampled formats.
func (c *Config) Validate() error {
	switch c.Encoder {
	case EncoderAuto, EncoderNVENC, EncoderAMF, EncoderQSV, EncoderX264:
		// valid
	default:
		return fmt.Errorf("invalid encoder %q (use auto, nvenc, amf, qsv, or x264)", c.Encoder)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always, or never)", c.ColorMode)
	}

	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return errors.New("target dimensions must be positive")
	}
	if c.TargetWidth%2 != 0 || c.TargetHeight%2 != 0 {
		return errors.New("target dimensions must be even")
	}

	if c.FontSize <= 0 {
		return errors.New("font size must be positive")
	}

	if c.InputDir == "" {
		return errors.New("input directory must not be empty")
	}
	return nil
}

// ResolveOutputDir fills OutputDir with <InputDir>/converted when the user
// did not supply one, matching the legacy auto-create behavior.
func (c *Config) ResolveOutputDir() {
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "converted")
	}
}

// ValidatePaths ensures the resolved output directory is not equal to the
// resolved input directory. The scan is non-recursive, so a nested output
// directory is fine; converting a directory onto itself is not. Both
// arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	if outputAbs == inputAbs {
		return errors.New("output directory must not equal input directory")
	}
	return nil
}
