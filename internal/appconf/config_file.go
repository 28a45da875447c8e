package appconf

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the TOML configuration file layout. Pointer fields are
// optional; unset keys leave the current value alone.
type FileConfig struct {
	Server struct {
		Port      *int     `toml:"port"`
		Env       *string  `toml:"env"`
		APIKeys   []string `toml:"api_keys"`
		RateLimit *int     `toml:"rate_limit"`
		LogLevel  *string  `toml:"log_level"`
	} `toml:"server"`

	Dataset struct {
		Source  *string `toml:"source"`
		Timeout *string `toml:"timeout"`
	} `toml:"dataset"`

	Store struct {
		Path *string `toml:"path"`
	} `toml:"store"`

	S3 struct {
		Region    *string `toml:"region"`
		Endpoint  *string `toml:"endpoint"`
		PathStyle *bool   `toml:"path_style"`
	} `toml:"s3"`
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadFileConfig reads and decodes a TOML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyFileConfig copies values from fc into cfg, skipping settings whose
// flag was set explicitly.
func ApplyFileConfig(cfg *Config, fc *FileConfig, changed map[string]bool) error {
	if fc == nil {
		return nil
	}
	if fc.Server.Port != nil && !changed["port"] {
		cfg.Port = *fc.Server.Port
	}
	if fc.Server.Env != nil && !changed["env"] {
		cfg.Env = EnvFlagToEnvironment(*fc.Server.Env)
	}
	if len(fc.Server.APIKeys) > 0 && !changed["api-keys"] {
		cfg.ApiKeys = append([]string(nil), fc.Server.APIKeys...)
	}
	if fc.Server.RateLimit != nil && !changed["rate-limit"] {
		cfg.RateLimit = *fc.Server.RateLimit
	}
	if fc.Server.LogLevel != nil && !changed["log-level"] {
		cfg.LogLevel = *fc.Server.LogLevel
	}
	if fc.Dataset.Source != nil && !changed["dataset"] {
		cfg.DatasetSource = *fc.Dataset.Source
	}
	if fc.Dataset.Timeout != nil && !changed["dataset-timeout"] {
		d, err := time.ParseDuration(*fc.Dataset.Timeout)
		if err != nil {
			return fmt.Errorf("dataset.timeout: %w", err)
		}
		cfg.DatasetTimeout = d
	}
	if fc.Store.Path != nil && !changed["db"] {
		cfg.DBPath = *fc.Store.Path
	}
	if fc.S3.Region != nil && !changed["s3-region"] {
		cfg.S3Region = *fc.S3.Region
	}
	if fc.S3.Endpoint != nil && !changed["s3-endpoint"] {
		cfg.S3Endpoint = *fc.S3.Endpoint
	}
	if fc.S3.PathStyle != nil && !changed["s3-path-style"] {
		cfg.S3PathStyle = *fc.S3.PathStyle
	}
	return nil
}
