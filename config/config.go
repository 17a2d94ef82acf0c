// Package config loads yure settings from a YAML file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ka2n/yure/api"
	"github.com/morikuni/failure/v2"
	"gopkg.in/yaml.v3"
)

// ErrorCode defines error types for configuration loading
type ErrorCode string

const (
	ErrReadConfig    ErrorCode = "ReadConfig"
	ErrInvalidConfig ErrorCode = "InvalidConfig"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// Config holds all settings. Query parameters are fixed and not configurable.
type Config struct {
	// Endpoint replaces the USGS endpoint, e.g. for a mirror
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	// Timezone is an IANA zone name for event times; empty means local time
	Timezone string `yaml:"timezone"`
	// Style is the display style; empty chooses by terminal
	Style    string `yaml:"style" validate:"omitempty,oneof=raw plain ansi glamour"`
	WordWrap int    `yaml:"word_wrap" validate:"gte=20,lte=1000"`
	Addr     string `yaml:"addr" validate:"required"`
	Debug    bool   `yaml:"debug"`
}

var validate = validator.New()

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Endpoint: api.DefaultEndpoint,
		WordWrap: 100,
		Addr:     ":8080",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/yure/config.yaml or the OS equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "yure", "config.yaml")
}

// Load reads path (or DefaultPath when empty), applies YURE_* environment
// overrides and validates the result. A missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := validate.Struct(cfg); err != nil {
		return nil, failure.New(ErrInvalidConfig,
			failure.Message("Invalid configuration"),
			failure.Context{"path": path, "reason": err.Error()},
		)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return failure.New(ErrReadConfig,
			failure.Message("Failed to read configuration file"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return failure.New(ErrReadConfig,
			failure.Message("Failed to parse configuration file"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("YURE_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("YURE_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("YURE_STYLE"); v != "" {
		c.Style = v
	}
	if v := os.Getenv("YURE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("YURE_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			// Any other non-empty value enables debug, as the logger does.
			debug = true
		}
		c.Debug = debug
	}
}

// Location resolves Timezone, falling back to time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, failure.New(ErrInvalidConfig,
			failure.Message("Unknown timezone"),
			failure.Context{"timezone": c.Timezone, "cause": err.Error()},
		)
	}
	return loc, nil
}

// Query returns the fixed query aimed at the configured endpoint
func (c *Config) Query() api.Query {
	return api.DefaultQuery().WithEndpoint(c.Endpoint)
}
