package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileName is the configuration file searched for when no path is given.
const FileName = ".gitstats.json"

// Config is the root configuration structure.
type Config struct {
	Filters  FilterConfig   `json:"filters"`
	Output   OutputConfig   `json:"output"`
	Analysis AnalysisConfig `json:"analysis"`
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// OutputConfig holds report output defaults.
type OutputConfig struct {
	Format string `json:"format"` // console, json, csv, markdown, ci
	Top    int    `json:"top"`    // 0 = all rows
}

// AnalysisConfig holds options for running statistics.
type AnalysisConfig struct {
	Parallelism int `json:"parallelism"` // statistics computed at once by "all"
}

// ServerConfig holds HTTP service options.
type ServerConfig struct {
	Addr                   string   `json:"addr"`
	AllowedOrigins         []string `json:"allowedOrigins"` // glob patterns matched against Origin
	CloneDir               string   `json:"cloneDir"`       // empty = OS temp dir
	CloneDepth             int      `json:"cloneDepth"`     // 0 = full history
	RepoTTLMinutes         int      `json:"repoTTLMinutes"` // 0 = keep until deleted
	CleanupIntervalMinutes int      `json:"cleanupIntervalMinutes"`
	ClonesPerMinute        float64  `json:"clonesPerMinute"` // 0 = unlimited
	CloneBurst             int      `json:"cloneBurst"`
	ShutdownTimeoutSeconds int      `json:"shutdownTimeoutSeconds"`
}

// RepoTTL returns how long a cloned repository stays registered.
func (s ServerConfig) RepoTTL() time.Duration {
	return time.Duration(s.RepoTTLMinutes) * time.Minute
}

// CleanupInterval returns how often expired repositories are swept.
func (s ServerConfig) CleanupInterval() time.Duration {
	return time.Duration(s.CleanupIntervalMinutes) * time.Minute
}

// ShutdownTimeout returns the grace period for in-flight requests.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `json:"level"` // logrus level name
	JSON  bool   `json:"json"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Output: OutputConfig{
			Format: "console",
			Top:    0,
		},
		Analysis: AnalysisConfig{
			Parallelism: 3,
		},
		Server: ServerConfig{
			Addr:                   ":8000",
			AllowedOrigins:         []string{"chrome-extension://*"},
			CloneDir:               "",
			CloneDepth:             0,
			RepoTTLMinutes:         60,
			CleanupIntervalMinutes: 10,
			ClonesPerMinute:        10,
			CloneBurst:             3,
			ShutdownTimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
