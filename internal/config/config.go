package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LibraryConfig holds the target layout templates and tool settings.
type LibraryConfig struct {
	// Library directory names under the destination root.
	ShowsDir  string `json:"shows_dir"`
	MoviesDir string `json:"movies_dir"`
	MusicDir  string `json:"music_dir"`

	// Naming templates. Variables: {show}, {season}, {episode}, {title}, {year}.
	SeasonFolder string `json:"season_folder"`
	Episode      string `json:"episode"`
	Movie        string `json:"movie"`

	// Operation journal settings.
	EnableLogging    bool `json:"enable_logging"`
	LogRetentionDays int  `json:"log_retention_days"`

	// Metadata lookup settings.
	TMDBAPIKey       string `json:"tmdb_api_key"`
	EnableTMDBLookup bool   `json:"enable_tmdb_lookup"`
	TMDBLanguage     string `json:"tmdb_language"`
	OMDBAPIKey       string `json:"omdb_api_key"`
	EnableOMDBLookup bool   `json:"enable_omdb_lookup"`
	LookupWorkers    int    `json:"lookup_workers"`

	// ExtraExtensions adds media extensions beyond the built-in set,
	// e.g. [".iso"].
	ExtraExtensions []string `json:"extra_extensions"`
}

// DefaultConfig returns the default configuration. The templates reproduce
// the layout media servers auto-detect without any configuration.
func DefaultConfig() *LibraryConfig {
	return &LibraryConfig{
		ShowsDir:         "Shows",
		MoviesDir:        "Movies",
		MusicDir:         "Music",
		SeasonFolder:     "Season {season}",
		Episode:          "{show} - s{season}e{episode} - {title}",
		Movie:            "{title} ({year})",
		EnableLogging:    true,
		LogRetentionDays: 30,
		TMDBLanguage:     "en-US",
		LookupWorkers:    10,
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".library-tidy", "config.json"), nil
}

// Load reads the configuration from disk, filling any missing fields with
// defaults. A missing file yields the default configuration.
func Load() (*LibraryConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*LibraryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg LibraryConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.ShowsDir == "" {
		cfg.ShowsDir = defaults.ShowsDir
	}
	if cfg.MoviesDir == "" {
		cfg.MoviesDir = defaults.MoviesDir
	}
	if cfg.MusicDir == "" {
		cfg.MusicDir = defaults.MusicDir
	}
	if cfg.SeasonFolder == "" {
		cfg.SeasonFolder = defaults.SeasonFolder
	}
	if cfg.Episode == "" {
		cfg.Episode = defaults.Episode
	}
	if cfg.Movie == "" {
		cfg.Movie = defaults.Movie
	}
	if cfg.LogRetentionDays == 0 {
		cfg.LogRetentionDays = defaults.LogRetentionDays
	}
	if cfg.TMDBLanguage == "" {
		cfg.TMDBLanguage = defaults.TMDBLanguage
	}
	if cfg.LookupWorkers == 0 {
		cfg.LookupWorkers = defaults.LookupWorkers
	}

	return &cfg, nil
}

// Save writes the configuration to disk.
func (cfg *LibraryConfig) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LookupEnabled reports whether any metadata provider is configured.
func (cfg *LibraryConfig) LookupEnabled() bool {
	if cfg.EnableTMDBLookup && cfg.TMDBAPIKey != "" {
		return true
	}
	if cfg.EnableOMDBLookup && cfg.OMDBAPIKey != "" {
		return true
	}
	return false
}
