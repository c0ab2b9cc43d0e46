package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ytget/quickdl/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Engine != DefaultEngine {
		t.Errorf("Expected engine %s, got %s", DefaultEngine, cfg.Engine)
	}

	if cfg.Destination == "" {
		t.Error("Destination should not be empty")
	}

	if cfg.Format() != model.FormatMuxedBest {
		t.Errorf("Expected default format %s, got %s", model.FormatMuxedBest, cfg.Format())
	}

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}

	if cfg.Engine != DefaultEngine {
		t.Errorf("Expected default engine, got %s", cfg.Engine)
	}

	if cfg.Path() != path {
		t.Errorf("Expected path %s, got %s", path, cfg.Path())
	}
}

func TestLoadFile_Values(t *testing.T) {
	path := writeConfig(t, `
engine: native
destination: /srv/media
default_format: audio
language: es
timeout: 45m
log:
  level: debug
  development: true
ytdlp:
  path: /opt/yt-dlp
  progress_interval: 1s
native:
  retries: 5
  ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Engine != EngineNative {
		t.Errorf("Expected engine %s, got %s", EngineNative, cfg.Engine)
	}
	if cfg.Destination != "/srv/media" {
		t.Errorf("Expected destination /srv/media, got %s", cfg.Destination)
	}
	if cfg.Format() != model.FormatAudioOnly {
		t.Errorf("Expected audio format, got %s", cfg.Format())
	}
	if cfg.Timeout != 45*time.Minute {
		t.Errorf("Expected timeout 45m, got %v", cfg.Timeout)
	}
	if !cfg.Log.Development || cfg.Log.Level != "debug" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if cfg.YTDLP.Path != "/opt/yt-dlp" || cfg.YTDLP.ProgressInterval != time.Second {
		t.Errorf("Unexpected ytdlp config: %+v", cfg.YTDLP)
	}
	if cfg.Native.Retries != 5 || cfg.Native.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Unexpected native config: %+v", cfg.Native)
	}
	// untouched keys keep their defaults
	if cfg.Native.UserAgent != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %s", cfg.Native.UserAgent)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "engine: [unterminated")

	if _, err := LoadFile(path); err == nil {
		t.Error("Expected parse error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown engine", func(c *Config) { c.Engine = "curl" }},
		{"unknown format", func(c *Config) { c.DefaultFormat = "mkv" }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"negative retries", func(c *Config) { c.Native.Retries = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvEngine:      "native",
		EnvDestination: " /data/videos ",
		EnvTimeout:     "10m",
		EnvAutoInstall: "true",
		EnvFFmpegPath:  "/usr/local/bin/ffmpeg",
		EnvLogLevel:    "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Engine != EngineNative {
		t.Errorf("Expected engine native, got %s", cfg.Engine)
	}
	if cfg.Destination != "/data/videos" {
		t.Errorf("Expected trimmed destination, got %q", cfg.Destination)
	}
	if cfg.Timeout != 10*time.Minute {
		t.Errorf("Expected timeout 10m, got %v", cfg.Timeout)
	}
	if !cfg.YTDLP.AutoInstall {
		t.Error("Expected auto install to be enabled")
	}
	if cfg.Native.FFmpegPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("Expected ffmpeg path override, got %s", cfg.Native.FFmpegPath)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Empty override should keep default level, got %s", cfg.Log.Level)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		EnvTimeout:     "soon",
		EnvAutoInstall: "maybe",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return value, true
				}
				return "", false
			}

			err := Default().applyEnv(lookup)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_FromEnvironmentPath(t *testing.T) {
	path := writeConfig(t, "engine: native\ndefault_format: video\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvEngine, "ytdlp")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Engine != EngineYTDLP {
		t.Errorf("Environment should override file engine, got %s", cfg.Engine)
	}
	if cfg.Format() != model.FormatVideoOnly {
		t.Errorf("Expected video format from file, got %s", cfg.Format())
	}
}

func TestGetLanguageOptions(t *testing.T) {
	options := Default().GetLanguageOptions()

	expectedLangs := []string{"system", "en", "es", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"es", "es"},
		{"system", "system"},
		{"", DefaultLanguage},
		{"klingon", DefaultLanguage},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Language = tt.in
		cfg.normalizeLanguage()
		if cfg.Language != tt.want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", tt.in, cfg.Language, tt.want)
		}
	}
}
