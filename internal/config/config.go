package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Gallery sources
const (
	GallerySourceHTTP = "http"
	GallerySourceS3   = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Voting  VotingConfig  `yaml:"voting"`
	Gallery GalleryConfig `yaml:"gallery"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds the voting site connection settings
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// VotingConfig holds the cool-down settings
type VotingConfig struct {
	TimeLimit    int           `yaml:"time_limit"`
	ArcLength    int           `yaml:"arc_length"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// GalleryConfig selects where gallery image URLs come from
type GalleryConfig struct {
	Source string   `yaml:"source"`
	S3     S3Config `yaml:"s3"`
}

// S3Config holds S3 configuration for the bucket-backed gallery
type S3Config struct {
	Region     string        `yaml:"region"`
	Bucket     string        `yaml:"bucket"`
	Prefix     string        `yaml:"prefix"`
	AccessKey  string        `yaml:"access_key"`
	SecretKey  string        `yaml:"secret_key"`
	Endpoint   string        `yaml:"endpoint"` // S3-compatible storage
	PresignTTL time.Duration `yaml:"presign_ttl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file overrides it
func Default() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		Voting: VotingConfig{
			TimeLimit:    5,
			ArcLength:    283,
			TickInterval: time.Second,
		},
		Gallery: GalleryConfig{
			Source: GallerySourceHTTP,
			S3: S3Config{
				Region:     "us-east-1",
				PresignTTL: 15 * time.Minute,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values the client cannot run without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.BaseURL) == "" {
		return fmt.Errorf("server.base_url is required")
	}
	if c.Voting.TimeLimit <= 0 {
		return fmt.Errorf("voting.time_limit must be positive")
	}
	if c.Voting.ArcLength <= 0 {
		return fmt.Errorf("voting.arc_length must be positive")
	}
	if c.Voting.TickInterval <= 0 {
		return fmt.Errorf("voting.tick_interval must be positive")
	}

	switch c.Gallery.Source {
	case GallerySourceHTTP:
	case GallerySourceS3:
		if c.Gallery.S3.Bucket == "" {
			return fmt.Errorf("gallery.s3.bucket is required for the s3 source")
		}
	default:
		return fmt.Errorf("unknown gallery.source %q", c.Gallery.Source)
	}

	return nil
}
