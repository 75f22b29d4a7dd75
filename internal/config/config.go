package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret             string `yaml:"jwt_secret"`
		JWTAlgorithm          string `yaml:"jwt_algorithm"`
		AccessTokenTTLMinutes int    `yaml:"access_token_ttl_minutes"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file. The
// DATABASE_URL and JWT_SECRET environment variables override the file
// so deployments don't have to bake secrets into it.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that every required value is present. A missing value
// is a startup fault, never a per-request one.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.JWTAlgorithm == "" {
		return errors.New("auth.jwt_algorithm is required")
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		return errors.New("auth.access_token_ttl_minutes must be positive")
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	return nil
}
