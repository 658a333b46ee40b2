package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Unlock  UnlockConfig  `mapstructure:"unlock"`
	Ads     AdsConfig     `mapstructure:"ads"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the upstream API endpoints and credentials
type APIConfig struct {
	TMDBKey      string `mapstructure:"tmdb_key"`
	TMDBBase     string `mapstructure:"tmdb_base"`
	YTSBase      string `mapstructure:"yts_base"`
	DramaboxBase string `mapstructure:"dramabox_base"`
}

// FetchConfig holds the fallback fetcher settings
type FetchConfig struct {
	Proxies        []string `mapstructure:"proxies"` // tried in order
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

// UnlockConfig holds the share-gate timings
type UnlockConfig struct {
	SiteURL                 string `mapstructure:"site_url"`
	RevealDelaySeconds      int    `mapstructure:"reveal_delay_seconds"`
	ConfirmCountdownSeconds int    `mapstructure:"confirm_countdown_seconds"`
}

// AdsConfig holds the pre-roll ad settings. It is read-only at runtime and
// passed by value to players, never read from a global.
type AdsConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	VideoURL         string `mapstructure:"video_url"`
	ClickURL         string `mapstructure:"click_url"`
	SkipDelaySeconds int    `mapstructure:"skip_delay_seconds"`
	SkipButtonText   string `mapstructure:"skip_button_text"`
	CountdownText    string `mapstructure:"countdown_text"`
}

// StorageConfig holds the local state location
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // empty = memory-only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			TMDBBase:     "https://api.themoviedb.org/3",
			YTSBase:      "https://yts.bz/api/v2",
			DramaboxBase: "https://api.sansekai.my.id/api/dramabox",
		},
		Fetch: FetchConfig{
			Proxies: []string{
				"https://api.allorigins.win/raw?url=",
				"https://corsproxy.io/?",
				"https://proxy.cors.sh/",
			},
			TimeoutSeconds: 15,
		},
		Unlock: UnlockConfig{
			RevealDelaySeconds:      120,
			ConfirmCountdownSeconds: 8,
		},
		Ads: AdsConfig{
			Enabled:          true,
			SkipDelaySeconds: 10,
			SkipButtonText:   "Lewati Iklan",
			CountdownText:    "Lewati dalam {seconds}s",
		},
		Storage: StorageConfig{
			Dir: defaultStatePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "layar", "layar.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "layar", "layar.log")
	}
}

// defaultStatePath returns the default local state directory for the current OS
func defaultStatePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "layar", "state")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "layar", "state")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "layar")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "layar")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("LAYAR")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// IsConfigured returns true if the metadata-provider API key is set
func (c *Config) IsConfigured() bool {
	return c.API.TMDBKey != ""
}
