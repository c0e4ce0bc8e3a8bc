package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audioheal/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("AWS_REGION", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "audioheal", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.CacheDir != filepath.Join(tempHome, ".cache", "audioheal", "clips") {
		t.Fatalf("unexpected cache dir: %q", cfg.Paths.CacheDir)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("output dir not absolute: %q", cfg.Paths.OutputDir)
	}
	if cfg.Voice.Language != "en-GB" || cfg.Voice.Name != "Amy" || cfg.Voice.Engine != "neural" {
		t.Fatalf("unexpected default voice: %+v", cfg.Voice)
	}
	if cfg.Synthesis.SampleRate != 16000 {
		t.Fatalf("unexpected sample rate: %d", cfg.Synthesis.SampleRate)
	}
	if cfg.Splice.SilenceThresholdDBFS != -60.0 {
		t.Fatalf("unexpected silence threshold: %v", cfg.Splice.SilenceThresholdDBFS)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"

[voice]
language = "en-US"
name = "Joanna"
engine = "Standard"

[synthesis]
sample_rate = 22000
region = "us-west-2"

[splice]
min_margin_ms = 5

[cache]
enabled = false
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v resolved=%q", exists, resolved)
	}
	if cfg.Paths.OutputDir != filepath.Join(dir, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Voice.Name != "Joanna" {
		t.Fatalf("unexpected voice name: %q", cfg.Voice.Name)
	}
	// Engine is lowercased during normalization.
	if cfg.Voice.Engine != "standard" {
		t.Fatalf("unexpected voice engine: %q", cfg.Voice.Engine)
	}
	if cfg.Synthesis.SampleRate != 22000 || cfg.Synthesis.Region != "us-west-2" {
		t.Fatalf("unexpected synthesis settings: %+v", cfg.Synthesis)
	}
	if cfg.Splice.MinMarginMS != 5 {
		t.Fatalf("unexpected min margin: %d", cfg.Splice.MinMarginMS)
	}
	if cfg.Cache.Enabled {
		t.Fatal("expected cache disabled")
	}
}

func TestLoadRegionFromEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Synthesis.Region != "eu-west-1" {
		t.Fatalf("expected region from env, got %q", cfg.Synthesis.Region)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "bad engine",
			mutate: func(c *config.Config) { c.Voice.Engine = "turbo" },
			want:   "voice.engine",
		},
		{
			name:   "fractional sample rate",
			mutate: func(c *config.Config) { c.Synthesis.SampleRate = 44100 },
			want:   "synthesis.sample_rate",
		},
		{
			name:   "non-negative threshold",
			mutate: func(c *config.Config) { c.Splice.SilenceThresholdDBFS = 3 },
			want:   "splice.silence_threshold_dbfs",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleParsesAsValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.CacheDir = filepath.Join(dir, "cache")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, want := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.CacheDir} {
		if info, err := os.Stat(want); err != nil || !info.IsDir() {
			t.Fatalf("directory %q missing: %v", want, err)
		}
	}
}
