package config

import (
	"os"
	"strconv"
	"strings"

	"fam450/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete library configuration
type Config struct {
	Tables  TableConfig
	Logging LoggingConfig
}

// TableConfig describes the grid evaluated by the table builder
type TableConfig struct {
	OverrelianceRisk float64
	SampleSizes      []int
	TolerableRates   []float64
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Published FAM 450 table parameters
var (
	DefaultSampleSizes    = []int{45, 78, 105, 132, 158}
	DefaultTolerableRates = []float64{0.05, 0.10}
)

const DefaultOverrelianceRisk = 0.10

// Default returns the configuration that reproduces the published tables
func Default() *Config {
	return &Config{
		Tables: TableConfig{
			OverrelianceRisk: DefaultOverrelianceRisk,
			SampleSizes:      append([]int(nil), DefaultSampleSizes...),
			TolerableRates:   append([]float64(nil), DefaultTolerableRates...),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := Default()

	tableConfig, err := loadTableConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load table configuration")
	}
	config.Tables = *tableConfig
	config.Logging = *loadLoggingConfig()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadFile loads a .env file into the environment and then calls Load.
// Variables already set in the environment take precedence.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to load env file "+path)
	}
	return Load()
}

func loadTableConfig() (*TableConfig, error) {
	ovr, err := getEnvFloatOrDefault("FAM450_OVERRELIANCE_RISK", DefaultOverrelianceRisk)
	if err != nil {
		return nil, err
	}

	sizes, err := getEnvIntListOrDefault("FAM450_SAMPLE_SIZES", DefaultSampleSizes)
	if err != nil {
		return nil, err
	}

	rates, err := getEnvFloatListOrDefault("FAM450_TOLERABLE_RATES", DefaultTolerableRates)
	if err != nil {
		return nil, err
	}

	return &TableConfig{
		OverrelianceRisk: ovr,
		SampleSizes:      sizes,
		TolerableRates:   rates,
	}, nil
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:  strings.ToLower(getEnvOrDefault("FAM450_LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnvOrDefault("FAM450_LOG_FORMAT", "json")),
	}
}

// Validate checks table and logging settings
func (c *Config) Validate() error {
	if err := c.Tables.Validate(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.ConfigInvalid("invalid log level: " + c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.ConfigInvalid("invalid log format: " + c.Logging.Format)
	}
	return nil
}

// Validate checks that the grid is non-empty and every value is in range
func (t TableConfig) Validate() error {
	if !(t.OverrelianceRisk > 0 && t.OverrelianceRisk < 1) {
		return errors.ConfigInvalid("risk of overreliance must be in (0, 1)")
	}
	if len(t.SampleSizes) == 0 {
		return errors.ConfigInvalid("at least one sample size is required")
	}
	for _, n := range t.SampleSizes {
		if n < 1 {
			return errors.ConfigInvalid("sample sizes must be at least 1, got " + strconv.Itoa(n))
		}
	}
	if len(t.TolerableRates) == 0 {
		return errors.ConfigInvalid("at least one tolerable deviation rate is required")
	}
	for _, r := range t.TolerableRates {
		if !(r > 0 && r < 1) {
			return errors.ConfigInvalid("tolerable deviation rates must be in (0, 1), got " + strconv.FormatFloat(r, 'g', -1, 64))
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a number: " + value)
	}
	return f, nil
}

func getEnvIntListOrDefault(key string, defaultValue []int) ([]int, error) {
	value := os.Getenv(key)
	if value == "" {
		return append([]int(nil), defaultValue...), nil
	}
	var out []int
	for _, field := range splitList(value) {
		i, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.ConfigInvalid(key + " contains a non-integer: " + field)
		}
		out = append(out, i)
	}
	return out, nil
}

func getEnvFloatListOrDefault(key string, defaultValue []float64) ([]float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return append([]float64(nil), defaultValue...), nil
	}
	var out []float64
	for _, field := range splitList(value) {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(key + " contains a non-number: " + field)
		}
		out = append(out, f)
	}
	return out, nil
}

func splitList(value string) []string {
	var fields []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
