package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/feLLpe04/Project3/internal/appconf"
	"github.com/feLLpe04/Project3/internal/logging"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = "mortality.toml"

var exampleUsage = strings.TrimSpace(`
  mortality serve --dataset merged_data.json
  mortality serve --config mortality.toml --db mortality.db
  mortality import --dataset s3://bucket/merged_data.json --db mortality.db
  mortality totals --year 2020 --cause "All causes"
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// flagValues holds the raw persistent flag values before they are merged
// with the config file and the environment.
type flagValues struct {
	configPath string
	config     appconf.Config
	apiKeys    string
	env        string
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&flagValues{config: appconf.DefaultConfig()})
}

func buildRootCmd(flags *flagValues) *cobra.Command {
	root := &cobra.Command{
		Use:           "mortality",
		Short:         "Mortality-by-sex dashboard over a JSON dataset",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "TOML config file (default ./"+defaultConfigFile+" when present)")
	pf.IntVar(&flags.config.Port, "port", flags.config.Port, "HTTP server port")
	pf.StringVar(&flags.env, "env", flags.config.Env.String(), "Environment (development|test|production)")
	pf.StringVar(&flags.apiKeys, "api-keys", "", "Comma separated API keys; empty leaves the API open")
	pf.IntVar(&flags.config.RateLimit, "rate-limit", flags.config.RateLimit, "Requests per second per client (negative disables)")
	pf.StringVar(&flags.config.DatasetSource, "dataset", flags.config.DatasetSource, "Dataset file, http(s) URL or s3://bucket/key")
	pf.DurationVar(&flags.config.DatasetTimeout, "dataset-timeout", flags.config.DatasetTimeout, "Dataset retrieval timeout (0 = none)")
	pf.StringVar(&flags.config.DBPath, "db", flags.config.DBPath, "SQLite database for imported rows (empty = no store)")
	pf.StringVar(&flags.config.LogLevel, "log-level", flags.config.LogLevel, "Log level (debug|info|warn|error)")
	pf.StringVar(&flags.config.S3Region, "s3-region", flags.config.S3Region, "AWS region for s3:// datasets")
	pf.StringVar(&flags.config.S3Endpoint, "s3-endpoint", flags.config.S3Endpoint, "Custom S3 endpoint, e.g. a MinIO URL")
	pf.BoolVar(&flags.config.S3PathStyle, "s3-path-style", flags.config.S3PathStyle, "Use path-style S3 addressing")

	root.AddCommand(newServeCmd(flags), newImportCmd(flags), newTotalsCmd(flags))
	return root
}

// resolveConfig merges defaults, the config file, MORTALITY_* variables and
// explicitly set flags, in increasing order of precedence.
func resolveConfig(cmd *cobra.Command, flags *flagValues) (appconf.Config, error) {
	cfg := flags.config
	cfg.Env = appconf.EnvFlagToEnvironment(flags.env)
	cfg.ApiKeys = appconf.ParseAPIKeys(flags.apiKeys)

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := flags.configPath
	if cfgFile == "" && appconf.FileExists(defaultConfigFile) {
		cfgFile = defaultConfigFile
	}
	if cfgFile != "" {
		fc, err := appconf.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := appconf.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := appconf.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg appconf.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewStructuredLogger(w, level), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
