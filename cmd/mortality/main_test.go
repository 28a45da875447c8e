package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feLLpe04/Project3/internal/appconf"
)

var fixture = filepath.Join("..", "..", "testdata", "merged_data.json")

// resolveWith parses args against a fresh root command and returns the
// resolved configuration of the serve subcommand.
func resolveWith(t *testing.T, args ...string) (appconf.Config, error) {
	t.Helper()
	flags := &flagValues{config: appconf.DefaultConfig()}
	root := buildRootCmd(flags)

	var (
		cfg    appconf.Config
		resErr error
	)
	for _, c := range root.Commands() {
		if c.Name() == "serve" {
			c.RunE = func(cmd *cobra.Command, _ []string) error {
				cfg, resErr = resolveConfig(cmd, flags)
				return nil
			}
		}
	}
	root.SetArgs(append([]string{"serve"}, args...))
	require.NoError(t, root.Execute())
	return cfg, resErr
}

func TestResolveConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := resolveWith(t)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, appconf.Development, cfg.Env)
	assert.Empty(t, cfg.ApiKeys)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, "merged_data.json", cfg.DatasetSource)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolveConfigPrecedence(t *testing.T) {
	configPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "config.toml"))
	require.NoError(t, err)
	t.Chdir(t.TempDir())

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := resolveWith(t, "--config", configPath)
		require.NoError(t, err)

		assert.Equal(t, 8088, cfg.Port)
		assert.Equal(t, appconf.Production, cfg.Env)
		assert.Equal(t, []string{"alpha", "beta"}, cfg.ApiKeys)
		assert.Equal(t, 25, cfg.RateLimit)
		assert.Equal(t, "s3://mortality/merged_data.json", cfg.DatasetSource)
		assert.Equal(t, 30*time.Second, cfg.DatasetTimeout)
		assert.Equal(t, "mortality.db", cfg.DBPath)
		assert.Equal(t, "eu-west-1", cfg.S3Region)
		assert.True(t, cfg.S3PathStyle)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv(appconf.EnvPort, "9000")
		t.Setenv(appconf.EnvAPIKeys, "gamma")

		cfg, err := resolveWith(t, "--config", configPath)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, []string{"gamma"}, cfg.ApiKeys)
		assert.Equal(t, 25, cfg.RateLimit)
	})

	t.Run("flags override environment and file", func(t *testing.T) {
		t.Setenv(appconf.EnvPort, "9000")

		cfg, err := resolveWith(t, "--config", configPath, "--port", "7000", "--dataset", fixture)
		require.NoError(t, err)

		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, fixture, cfg.DatasetSource)
	})
}

func TestResolveConfigReadsDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("[server]\nport = 5050\n"), 0o600))
	t.Chdir(dir)

	cfg, err := resolveWith(t)
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Port)
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := resolveWith(t, "--env", "test", "--db", "mortality.db")
	assert.ErrorContains(t, err, "in-memory database")

	_, err = resolveWith(t, "--config", "does-not-exist.toml")
	assert.ErrorContains(t, err, "load config")
}

func TestTotalsCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"totals", "--dataset", fixture, "--log-level", "error"})
	require.NoError(t, root.Execute())

	var entry struct {
		Selection struct {
			Year  string `json:"year"`
			Cause string `json:"cause"`
		} `json:"selection"`
		Totals struct {
			Male      float64 `json:"male"`
			Female    float64 `json:"female"`
			Undefined float64 `json:"undefined"`
		} `json:"totals"`
		Chart struct {
			Tooltips []string `json:"tooltips"`
		} `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))

	assert.Equal(t, "2020", entry.Selection.Year)
	assert.Equal(t, "All causes", entry.Selection.Cause)
	assert.Equal(t, 10.0, entry.Totals.Male)
	assert.Equal(t, 5.0, entry.Totals.Female)
	assert.Equal(t, 0.0, entry.Totals.Undefined)
	assert.Equal(t, "Male: 10 (66.7%)", entry.Chart.Tooltips[0])
}

func TestImportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mortality.db")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import", "--dataset", fixture, "--db", dbPath, "--log-level", "error"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "imported 6 records into "+dbPath+"\n", out.String())
}

func TestImportCommandRequiresDB(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import", "--dataset", fixture})
	assert.ErrorContains(t, root.Execute(), "requires --db")
}
