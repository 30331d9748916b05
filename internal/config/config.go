package config

import "time"

type Config struct {
	Sweeps        []SweepConfig       `yaml:"sweeps"`
	Consolidation ConsolidationConfig `yaml:"consolidation"`
	Logging       LoggingConfig       `yaml:"logging"`
	Schedule      string              `yaml:"schedule"` // cron expression, empty = run once
	ConfigReload  ReloadConfig        `yaml:"configReload"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}

// SweepConfig describes one retention-swept directory.
type SweepConfig struct {
	Path          string `yaml:"path"`
	ThresholdDays *int   `yaml:"thresholdDays"` // nil = DefaultThresholdDays
}

type ConsolidationConfig struct {
	Path      string `yaml:"path"`
	Extension string `yaml:"extension"` // e.g. ".pdf"
}

type LoggingConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	Level      string `yaml:"level"` // "debug", "info", "warn", "error"
	Stderr     bool   `yaml:"stderr"`
}

type ReloadConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Method         string        `yaml:"method"` // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`
	DebounceWindow time.Duration `yaml:"debounceWindow"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":9108", empty = disabled
}

// Threshold returns the configured threshold or the default policy value.
func (s SweepConfig) Threshold() int {
	if s.ThresholdDays == nil {
		return DefaultThresholdDays
	}
	return *s.ThresholdDays
}
