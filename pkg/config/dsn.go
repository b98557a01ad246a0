package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvURI       = "IOTORM_URI"
	EnvUser      = "IOTORM_USER"
	EnvPassword  = "IOTORM_PASSWORD"
	EnvSchema    = "IOTORM_SCHEMA"
	EnvLogLevel  = "IOTORM_LOG_LEVEL"
	EnvLogFormat = "IOTORM_LOG_FORMAT"
)

// Config holds connection and logging settings for the CLI and DB facade.
type Config struct {
	URI       string
	User      string
	Password  string
	Schema    string
	LogLevel  string
	LogFormat string
}

// Default returns the settings of a local IoTDB with stock credentials.
func Default() *Config {
	return &Config{
		URI:       "iotdb://127.0.0.1:6667",
		User:      "root",
		Password:  "root",
		Schema:    "root.db",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads envFile (skipped when empty or missing) into the environment, then
// overlays IOTORM_* variables on the defaults. Variables already set in the
// environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := Default()
	for env, dst := range map[string]*string{
		EnvURI:       &cfg.URI,
		EnvUser:      &cfg.User,
		EnvPassword:  &cfg.Password,
		EnvSchema:    &cfg.Schema,
		EnvLogLevel:  &cfg.LogLevel,
		EnvLogFormat: &cfg.LogFormat,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*dst = v
		}
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("%s is empty", EnvURI)
	}
	return cfg, nil
}
