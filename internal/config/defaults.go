package config

import "time"

const (
	DefaultThresholdDays = 5
	DefaultExtension     = ".pdf"

	DefaultLogFile       = "log.txt"
	DefaultLogMaxSizeMB  = 1
	DefaultLogMaxBackups = 5
	DefaultLogLevel      = "info"

	DefaultReloadMethod   = "auto"
	DefaultPollInterval   = 5 * time.Second
	DefaultDebounceWindow = 500 * time.Millisecond
)

const mediaRoot = "/home/app/backend/orgton/media"

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Sweeps: []SweepConfig{
			{Path: mediaRoot + "/brightness"},
			{Path: mediaRoot + "/example"},
		},
		Consolidation: ConsolidationConfig{
			Path: mediaRoot + "/orders",
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Consolidation.Extension == "" {
		c.Consolidation.Extension = DefaultExtension
	}

	l := &c.Logging
	if l.File == "" {
		l.File = DefaultLogFile
	}
	if l.MaxSizeMB == 0 {
		l.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = DefaultLogMaxBackups
	}
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}

	r := &c.ConfigReload
	if r.Method == "" {
		r.Method = DefaultReloadMethod
	}
	if r.PollInterval == 0 {
		r.PollInterval = DefaultPollInterval
	}
	if r.DebounceWindow == 0 {
		r.DebounceWindow = DefaultDebounceWindow
	}
}
