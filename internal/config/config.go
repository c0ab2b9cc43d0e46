package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ytget/quickdl/internal/model"
)

// Engine names selectable in configuration
const (
	EngineYTDLP  = "ytdlp"
	EngineNative = "native"
)

// Environment variables overriding file values
const (
	EnvConfigPath  = "QUICKDL_CONFIG"
	EnvEngine      = "QUICKDL_ENGINE"
	EnvDestination = "QUICKDL_DESTINATION"
	EnvFormat      = "QUICKDL_FORMAT"
	EnvLanguage    = "QUICKDL_LANGUAGE"
	EnvTimeout     = "QUICKDL_TIMEOUT"
	EnvLogLevel    = "QUICKDL_LOG_LEVEL"
	EnvYTDLPPath   = "QUICKDL_YTDLP_PATH"
	EnvFFmpegPath  = "QUICKDL_FFMPEG_PATH"
	EnvAutoInstall = "QUICKDL_AUTO_INSTALL"
)

// Default values
const (
	DefaultEngine           = EngineYTDLP
	DefaultLanguage         = "system"
	DefaultTimeout          = 2 * time.Hour
	DefaultLogLevel         = "info"
	DefaultProgressInterval = 250 * time.Millisecond
	DefaultNativeTimeout    = 30 * time.Second
	DefaultNativeRetries    = 3
	DefaultUserAgent        = "" // keep the extraction library's browser user agent

	AppDirName     = "quickdl"
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the read-only application configuration. It is never written back.
type Config struct {
	Engine        string        `yaml:"engine"`
	Destination   string        `yaml:"destination"`
	DefaultFormat string        `yaml:"default_format"`
	Language      string        `yaml:"language"`
	Timeout       time.Duration `yaml:"timeout"`
	Log           LogConfig     `yaml:"log"`
	YTDLP         YTDLPConfig   `yaml:"ytdlp"`
	Native        NativeConfig  `yaml:"native"`

	path string
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// YTDLPConfig configures the yt-dlp backed engine
type YTDLPConfig struct {
	Path             string        `yaml:"path"`
	AutoInstall      bool          `yaml:"auto_install"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// NativeConfig configures the pure Go engine
type NativeConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Retries        int           `yaml:"retries"`
	UserAgent      string        `yaml:"user_agent"`
	FFmpegPath     string        `yaml:"ffmpeg_path"`
}

// Default returns the built-in configuration
func Default() *Config {
	dest, err := os.UserHomeDir()
	if err != nil {
		dest = os.TempDir()
	}

	return &Config{
		Engine:        DefaultEngine,
		Destination:   dest,
		DefaultFormat: model.FormatMuxedBest.String(),
		Language:      DefaultLanguage,
		Timeout:       DefaultTimeout,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		YTDLP: YTDLPConfig{
			ProgressInterval: DefaultProgressInterval,
		},
		Native: NativeConfig{
			RequestTimeout: DefaultNativeTimeout,
			Retries:        DefaultNativeRetries,
			UserAgent:      DefaultUserAgent,
		},
	}
}

// DefaultPath returns <UserConfigDir>/quickdl/config.yaml
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ConfigFileName)
	}
	return filepath.Join(dir, AppDirName, ConfigFileName)
}

// Load reads .env, then the YAML file named by QUICKDL_CONFIG (or the default
// path), then applies environment overrides. Missing files are not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(EnvFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFileName, err)
	}

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.normalizeLanguage()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string { return c.path }

// Format returns the configured default format choice
func (c *Config) Format() model.FormatChoice {
	fc, err := model.ParseFormatChoice(c.DefaultFormat)
	if err != nil {
		return model.FormatMuxedBest
	}
	return fc
}

// Validate checks values that cannot be corrected silently
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineYTDLP, EngineNative:
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalidConfig, c.Engine)
	}

	if _, err := model.ParseFormatChoice(c.DefaultFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}

	if c.Native.Retries < 0 {
		return fmt.Errorf("%w: native.retries must not be negative", ErrInvalidConfig)
	}

	return nil
}

// applyEnv overrides fields from the environment
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvEngine, &c.Engine)
	str(EnvDestination, &c.Destination)
	str(EnvFormat, &c.DefaultFormat)
	str(EnvLanguage, &c.Language)
	str(EnvLogLevel, &c.Log.Level)
	str(EnvYTDLPPath, &c.YTDLP.Path)
	str(EnvFFmpegPath, &c.Native.FFmpegPath)

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvTimeout, err)
		}
		c.Timeout = d
	}

	if v, ok := lookup(EnvAutoInstall); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvAutoInstall, err)
		}
		c.YTDLP.AutoInstall = b
	}

	return nil
}

// GetLanguageOptions returns available language options
func (c *Config) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// normalizeLanguage falls back to the system language for unknown codes
func (c *Config) normalizeLanguage() {
	if _, ok := c.GetLanguageOptions()[c.Language]; !ok {
		c.Language = DefaultLanguage
	}
}
