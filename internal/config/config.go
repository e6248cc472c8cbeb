package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultPageSize = 8
)

type Config struct {
	APIURL   string `koanf:"api_url"`
	PageSize int    `koanf:"page_size"` // records per list page (default: 8)
	Locale   string `koanf:"locale"`    // BCP 47 tag used to collate names, e.g. "zh"

	API     APIConfig     `koanf:"api"`
	Log     LogConfig     `koanf:"log"`
	Lastfm  LastfmConfig  `koanf:"lastfm"`
	Lyrics  LyricsConfig  `koanf:"lyrics"`
	Session SessionConfig `koanf:"session"`
}

// APIConfig holds catalog API client settings.
type APIConfig struct {
	Timeout           time.Duration `koanf:"timeout"`             // per-request deadline (default: 10s)
	RequestsPerSecond float64       `koanf:"requests_per_second"` // client throttle (default: 10, negative disables)
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`       // "debug", "info", "warn", "error" (default: "info")
	File       string `koanf:"file"`        // empty means $XDG_STATE_HOME/xiamiu/xiamiu.log
	MaxSizeMB  int    `koanf:"max_size_mb"` // rotate after this size (default: 10)
	MaxBackups int    `koanf:"max_backups"` // rotated files to keep (default: 3)
}

// LastfmConfig holds Last.fm API credentials (enables similar artists when configured).
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// LyricsConfig holds lyrics lookup settings.
type LyricsConfig struct {
	LRCLib *bool `koanf:"lrclib"` // fall back to lrclib.net (default: true)
}

// SessionConfig controls credential persistence.
type SessionConfig struct {
	Remember *bool `koanf:"remember"` // keep the login token in the state database (default: true)
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order (last wins). Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		APIURL: DefaultAPIURL,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.APIURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/xiamiu/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "xiamiu", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// GetPageSize returns the list page size with the default applied.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// GetAPIConfig returns the API client configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	switch {
	case cfg.RequestsPerSecond == 0:
		cfg.RequestsPerSecond = 10
	case cfg.RequestsPerSecond < 0:
		cfg.RequestsPerSecond = 0
	}

	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}

	return cfg
}

// LRCLibEnabled reports whether lrclib.net is queried for missing lyrics.
func (c *Config) LRCLibEnabled() bool {
	return c.Lyrics.LRCLib == nil || *c.Lyrics.LRCLib
}

// RememberSession reports whether the login token is persisted.
func (c *Config) RememberSession() bool {
	return c.Session.Remember == nil || *c.Session.Remember
}
