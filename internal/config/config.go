package config

import (
	"os"
	"strconv"
	"strings"

	"goperiod/domain/core"
	"goperiod/domain/period"
	"goperiod/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Database DatabaseConfig
	Data     DataConfig
}

// AnalysisConfig holds the detection pipeline settings
type AnalysisConfig struct {
	WindowHalfLen  int
	CorrTolerance  float64
	R2Threshold    float64
	Workers        int
	ReferenceTimes []core.ReferenceTime
	Detrend        bool
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case results go to CSV files instead of Postgres.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// DataConfig holds input and output locations
type DataConfig struct {
	InputFile string
	OutputDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := period.DefaultParams()

	config := &Config{
		Analysis: AnalysisConfig{
			WindowHalfLen:  getEnvIntOrDefault("WINDOW_HALF_LEN", defaults.WindowHalfLen),
			CorrTolerance:  getEnvFloatOrDefault("CORR_TOLERANCE", defaults.CorrTolerance),
			R2Threshold:    getEnvFloatOrDefault("R2_THRESHOLD", defaults.R2Threshold),
			Workers:        getEnvIntOrDefault("WORKERS", 0),
			ReferenceTimes: parseReferenceTimes(os.Getenv("REFERENCE_TIMES")),
			Detrend:        getEnvBoolOrDefault("DETREND", false),
		},
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Data: DataConfig{
			InputFile: os.Getenv("DATA_FILE"),
			OutputDir: getEnvOrDefault("OUTPUT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Params converts the analysis section into pipeline parameters.
func (c *Config) Params() period.Params {
	return period.Params{
		WindowHalfLen: c.Analysis.WindowHalfLen,
		CorrTolerance: c.Analysis.CorrTolerance,
		R2Threshold:   c.Analysis.R2Threshold,
	}
}

func validateConfig(config *Config) error {
	if config.Analysis.WindowHalfLen < 2 {
		return errors.ConfigInvalid("WINDOW_HALF_LEN must be at least 2")
	}
	if config.Analysis.CorrTolerance <= 0 {
		return errors.ConfigInvalid("CORR_TOLERANCE must be positive")
	}
	if config.Analysis.R2Threshold < 0 || config.Analysis.R2Threshold > 1 {
		return errors.ConfigInvalid("R2_THRESHOLD must be within [0, 1]")
	}
	return nil
}

// parseReferenceTimes parses a comma-separated list of window start years,
// e.g. "1901,1931,1961". Invalid entries are dropped.
func parseReferenceTimes(value string) []core.ReferenceTime {
	if value == "" {
		return nil
	}
	var times []core.ReferenceTime
	for _, part := range strings.Split(value, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		times = append(times, core.ReferenceTime(year))
	}
	return times
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
