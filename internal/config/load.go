package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

// Load reads the YAML config at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse expands $(ENV_VAR) placeholders, unmarshals and validates data.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("schedule: invalid cron expression %q: %w", c.Schedule, err))
		}
	}

	for i, s := range c.Sweeps {
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("sweeps[%d]: path is required", i))
		}
		if s.Threshold() < 0 {
			errs = append(errs, fmt.Errorf("sweeps[%d]: thresholdDays must not be negative", i))
		}
	}

	ext := c.Consolidation.Extension
	switch {
	case !strings.HasPrefix(ext, "."):
		errs = append(errs, fmt.Errorf("consolidation: extension %q must start with a dot", ext))
	case strings.EqualFold(ext, ".zip"):
		errs = append(errs, errors.New("consolidation: extension must not be .zip"))
	}

	switch c.ConfigReload.Method {
	case "auto", "poll", "fsnotify":
	default:
		errs = append(errs, fmt.Errorf("configReload: unknown method %q", c.ConfigReload.Method))
	}

	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		errs = append(errs, errors.New("logging: maxSizeMB and maxBackups must not be negative"))
	}

	return errors.Join(errs...)
}
