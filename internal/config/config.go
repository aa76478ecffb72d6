package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Cohorts CohortsConfig `mapstructure:"cohorts"`
	Logging LoggingConfig `mapstructure:"logging"`
	Workers int           `mapstructure:"workers"` // Parallel classification workers, 0 = GOMAXPROCS
}

// InputConfig defines where repository records are read from
type InputConfig struct {
	Path string `mapstructure:"path"` // CSV inventory file
}

// OutputConfig defines how reports are rendered
type OutputConfig struct {
	Format        string `mapstructure:"format"`         // text, csv, json, or parquet
	Dir           string `mapstructure:"dir"`            // Output directory, empty = stdout where supported
	GroupBy       string `mapstructure:"group_by"`       // enterprise, organization, or none
	Detail        bool   `mapstructure:"detail"`         // Include per-repository rows in text output
	ProgressEvery int    `mapstructure:"progress_every"` // Log progress every N records
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format     string `mapstructure:"format"` // "json" or "text"
	OutputFile string `mapstructure:"output_file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// Output formats
const (
	FormatText    = "text"
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

// Grouping keys
const (
	GroupByEnterprise   = "enterprise"
	GroupByOrganization = "organization"
	GroupByNone         = "none"
)

// Load reads configuration from the given file (or the default search paths when empty),
// the environment, and a local .env file. The result is validated before it is returned.
func Load(configFile string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("cohorts")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// Environment variable support
	viper.SetEnvPrefix("COHORTS")
	// cohorts.thresholds.low_max -> COHORTS_COHORTS_THRESHOLDS_LOW_MAX
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Defaults are a complete configuration, so a missing file is only fatal when one was named
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("workers", 0)
	viper.SetDefault("output.format", FormatText)
	viper.SetDefault("output.dir", "")
	viper.SetDefault("output.group_by", GroupByEnterprise)
	viper.SetDefault("output.detail", false)
	viper.SetDefault("output.progress_every", 1000)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output_file", "")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)

	defaults := DefaultCohortsConfig()
	viper.SetDefault("cohorts.version", defaults.Version)
	// Per-key defaults so a config file overriding one weight keeps the rest
	for name, weight := range defaults.Weights {
		viper.SetDefault("cohorts.weights."+name, weight)
	}
	viper.SetDefault("cohorts.thresholds.clean_max", defaults.Thresholds.CleanMax)
	viper.SetDefault("cohorts.thresholds.low_max", defaults.Thresholds.LowMax)
	viper.SetDefault("cohorts.thresholds.medium_max", defaults.Thresholds.MediumMax)
	viper.SetDefault("cohorts.features.unmigratable", defaults.Features.Unmigratable)
	viper.SetDefault("cohorts.features.macos_runners", defaults.Features.MacOSRunners)
	viper.SetDefault("cohorts.features.maven_packages", defaults.Features.MavenPackages)
	viper.SetDefault("cohorts.features.codespaces", defaults.Features.Codespaces)
}

// loadDotEnv loads KEY=VALUE pairs from path into the environment if the file exists.
// Variables already set in the environment take precedence.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate checks the whole configuration and reports every problem at once
func (c *Config) Validate() error {
	var errs []error

	if err := c.Cohorts.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch c.Output.Format {
	case FormatText, FormatCSV, FormatJSON, FormatParquet:
	default:
		errs = append(errs, fmt.Errorf("output.format %q must be one of text, csv, json, parquet", c.Output.Format))
	}
	if c.Output.Format == FormatParquet && c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required for parquet output"))
	}

	switch c.Output.GroupBy {
	case GroupByEnterprise, GroupByOrganization, GroupByNone, "":
	default:
		errs = append(errs, fmt.Errorf("output.group_by %q must be one of enterprise, organization, none", c.Output.GroupBy))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Output.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("output.progress_every must be >= 0, got %d", c.Output.ProgressEvery))
	}

	return errors.Join(errs...)
}

// categoryNames is used when reporting which weights are missing.
func categoryNames() []string {
	cats := models.AllCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}
