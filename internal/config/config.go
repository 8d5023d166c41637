package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultNAValues are the cell texts treated as missing, matching common CSV tooling.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// Global configuration structure.
type Global struct {
	Addr            string `mapstructure:"addr" yaml:"addr"`
	DBPath          string `mapstructure:"db_path" yaml:"db_path"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// Local data mode
	UseLocalData  bool   `mapstructure:"use_local_data" yaml:"use_local_data"`
	LocalDataPath string `mapstructure:"local_data_path" yaml:"local_data_path"`
	WatchLocal    bool   `mapstructure:"watch_local" yaml:"watch_local"`

	// Loading and cleaning
	NAValues          []string `mapstructure:"na_values" yaml:"na_values"`
	PlaceholderFormat string   `mapstructure:"placeholder_format" yaml:"placeholder_format"`
	XLSXSheet         string   `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`

	// Remote CSV fetch
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`

	ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`
}

// Dir returns ~/.sunburst.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".sunburst"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sunburst/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) (string, error) {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SUNBURST")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "sunburst.db")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("use_local_data", true)
	v.SetDefault("local_data_path", "data/tickets.csv")
	v.SetDefault("watch_local", true)
	v.SetDefault("na_values", DefaultNAValues)
	v.SetDefault("placeholder_format", "Unknown %s")
	v.SetDefault("xlsx_sheet", "")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("export_dir", "exports")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
