package appconf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment converts the --env flag value. Unknown values map to
// Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the dashboard server.
// A negative RateLimit disables rate limiting.
type Config struct {
	Port           int
	Env            Environment
	ApiKeys        []string
	RateLimit      int
	DatasetSource  string
	DatasetTimeout time.Duration
	DBPath         string
	LogLevel       string
	S3Region       string
	S3Endpoint     string
	S3PathStyle    bool
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Port:          4000,
		Env:           Development,
		RateLimit:     100,
		DatasetSource: "merged_data.json",
		LogLevel:      "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DatasetSource == "" {
		return fmt.Errorf("dataset source is required")
	}
	if c.DatasetTimeout < 0 {
		return fmt.Errorf("dataset-timeout must be non-negative")
	}
	if c.Env == Test && c.DBPath != "" && c.DBPath != ":memory:" {
		return fmt.Errorf("test environment requires an in-memory database, got %q", c.DBPath)
	}
	return nil
}

// APIKeysEnabled reports whether requests must carry a valid ?key=.
func (c Config) APIKeysEnabled() bool {
	return len(c.ApiKeys) > 0
}

// ParseAPIKeys splits a comma separated key list, dropping blanks.
func ParseAPIKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Environment variable names, all prefixed MORTALITY_.
const (
	EnvPort           = "MORTALITY_PORT"
	EnvEnv            = "MORTALITY_ENV"
	EnvAPIKeys        = "MORTALITY_API_KEYS"
	EnvRateLimit      = "MORTALITY_RATE_LIMIT"
	EnvDatasetSource  = "MORTALITY_DATASET"
	EnvDatasetTimeout = "MORTALITY_DATASET_TIMEOUT"
	EnvDBPath         = "MORTALITY_DB"
	EnvLogLevel       = "MORTALITY_LOG_LEVEL"
	EnvS3Region       = "MORTALITY_S3_REGION"
	EnvS3Endpoint     = "MORTALITY_S3_ENDPOINT"
	EnvS3PathStyle    = "MORTALITY_S3_PATH_STYLE"
)

// ApplyEnvConfig overrides cfg with MORTALITY_* variables, except for
// settings whose flag was set explicitly (present in changed).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	if v := os.Getenv(EnvPort); v != "" && !changed["port"] {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv(EnvEnv); v != "" && !changed["env"] {
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v := os.Getenv(EnvAPIKeys); v != "" && !changed["api-keys"] {
		cfg.ApiKeys = ParseAPIKeys(v)
	}
	if v := os.Getenv(EnvRateLimit); v != "" && !changed["rate-limit"] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv(EnvDatasetSource); v != "" && !changed["dataset"] {
		cfg.DatasetSource = v
	}
	if v := os.Getenv(EnvDatasetTimeout); v != "" && !changed["dataset-timeout"] {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDatasetTimeout, err)
		}
		cfg.DatasetTimeout = d
	}
	if v := os.Getenv(EnvDBPath); v != "" && !changed["db"] {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" && !changed["log-level"] {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvS3Region); v != "" && !changed["s3-region"] {
		cfg.S3Region = v
	}
	if v := os.Getenv(EnvS3Endpoint); v != "" && !changed["s3-endpoint"] {
		cfg.S3Endpoint = v
	}
	if v := os.Getenv(EnvS3PathStyle); v != "" && !changed["s3-path-style"] {
		cfg.S3PathStyle = strings.EqualFold(v, "true")
	}
	return nil
}
