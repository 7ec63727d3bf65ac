package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable the app reads.
const EnvPrefix = "SKILLCHECK_"

// Config holds the application configuration.
type Config struct {
	API APIConfig `yaml:"api" envPrefix:"API_"`
	Log LogConfig `yaml:"log" envPrefix:"LOG_"`
}

// APIConfig describes how to reach the Interview Service.
type APIConfig struct {
	BaseURL     string        `yaml:"base_url" env:"BASE_URL"`
	Token       string        `yaml:"token" env:"TOKEN"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT"`
	ConnTimeout time.Duration `yaml:"conn_timeout" env:"CONN_TIMEOUT"`
}

// LogConfig controls the diagnostic log. The terminal belongs to the UI,
// so logs always go to a file.
type LogConfig struct {
	File  string `yaml:"file" env:"FILE"`
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8000/api",
			Timeout:     60 * time.Second,
			ConnTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			File:  "skillcheck.log",
			Level: "info",
		},
	}
}

// Options selects the files Load reads. Empty fields are skipped, except
// EnvFile which defaults to ".env" in the working directory.
type Options struct {
	File    string
	EnvFile string
}

// Load builds the configuration by layering, lowest precedence first: the
// defaults, the YAML file, the dotenv file and the process environment.
// A missing dotenv file is not an error; a missing YAML file is. The
// dotenv file never overrides variables already set in the environment.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", opts.File, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	environ, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		environ = map[string]string{}
	}
	for k, v := range env.ToMap(os.Environ()) {
		environ[k] = v
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	switch {
	case c.API.BaseURL == "":
		errs = append(errs, errors.New("api.base_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("api.base_url: missing host"))
	}

	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.ConnTimeout <= 0 {
		errs = append(errs, errors.New("api.conn_timeout must be positive"))
	}
	if c.Log.File == "" {
		errs = append(errs, errors.New("log.file is required"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
