// Package config loads shiplabel configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when no explicit path
// is given.
const DefaultPath = ".shiplabel.yaml"

// Config represents the shiplabel configuration loaded from YAML.
type Config struct {
	// Repo is the path to the local git repository
	Repo string `yaml:"repo"`

	// Mainline is the primary long-lived ref release tags are compared
	// against
	Mainline string `yaml:"mainline"`

	// GitHub configures the remote issue tracker for label sync
	GitHub GitHubConfig `yaml:"github"`
}

// GitHubConfig identifies the repository whose issues receive labels.
type GitHubConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`

	// TokenEnv names the environment variable holding the API token
	TokenEnv string `yaml:"token_env"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Repo:     ".",
		Mainline: "master",
		GitHub: GitHubConfig{
			TokenEnv: "GITHUB_TOKEN",
		},
	}
}

// Load reads configuration from a YAML file. Fields left out of the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if config.Repo == "" {
		config.Repo = "."
	}
	if config.Mainline == "" {
		config.Mainline = "master"
	}
	if config.GitHub.TokenEnv == "" {
		config.GitHub.TokenEnv = "GITHUB_TOKEN"
	}

	return config, nil
}

// LoadOrDefault loads the config file at path if it exists, falling back to
// defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Token returns the configured API token, or empty when unset.
func (c *Config) Token() string {
	return os.Getenv(c.GitHub.TokenEnv)
}
