package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/library", "/media/library"},
		{"single trailing slash", "/media/library/", "/media/library"},
		{"multiple trailing slashes", "/media/library///", "/media/library"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Encoder(t *testing.T) {
	tests := []struct {
		name    string
		enc     EncoderChoice
		wantErr bool
	}{
		{"auto is valid", EncoderAuto, false},
		{"nvenc is valid", EncoderNVENC, false},
		{"amf is valid", EncoderAMF, false},
		{"qsv is valid", EncoderQSV, false},
		{"x264 is valid", EncoderX264, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "vaapi", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Encoder = tt.enc
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_TargetGeometry(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"1080p box", 1920, 1080, false},
		{"720p box", 1280, 720, false},
		{"odd width", 1921, 1080, true},
		{"odd height", 1920, 1081, true},
		{"zero width", 0, 1080, true},
		{"negative height", 1920, -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TargetWidth = tt.w
			cfg.TargetHeight = tt.h
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = "/media/in"
	cfg.ResolveOutputDir()
	if cfg.OutputDir != filepath.Join("/media/in", "converted") {
		t.Errorf("OutputDir = %q, want /media/in/converted", cfg.OutputDir)
	}

	cfg.OutputDir = "/elsewhere"
	cfg.ResolveOutputDir()
	if cfg.OutputDir != "/elsewhere" {
		t.Errorf("explicit OutputDir overwritten: %q", cfg.OutputDir)
	}
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidatePaths("/a/in", "/a/in"); err == nil {
		t.Error("expected error when output equals input")
	}
	if err := cfg.ValidatePaths("/a/in", "/a/in/converted"); err != nil {
		t.Errorf("nested output should be allowed: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
encoder = "x264"
font_size = 24
skip_existing = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Encoder != EncoderX264 {
		t.Errorf("Encoder = %q, want x264", cfg.Encoder)
	}
	if cfg.FontSize != 24 {
		t.Errorf("FontSize = %d, want 24", cfg.FontSize)
	}
	if cfg.SkipExisting {
		t.Error("SkipExisting should be false")
	}
	// Untouched fields keep defaults.
	if cfg.TargetWidth != 1920 {
		t.Errorf("TargetWidth = %d, want default 1920", cfg.TargetWidth)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("fontsize = 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFileIfPresent_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFileIfPresent(filepath.Join(t.TempDir(), "nope.toml"), &cfg); err != nil {
		t.Errorf("missing file should not be an error: %v", err)
	}
}
