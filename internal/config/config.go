// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// DefaultAPIURL is the backend base URL used when nothing else is configured.
const DefaultAPIURL = "http://localhost:5000/api"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	APIURL         string `json:"api_url,omitempty" validate:"omitempty,url"`        // Backend base URL
	SessionFile    string `json:"session_file,omitempty"`                            // Where the session token and user are persisted
	DownloadDir    string `json:"download_dir,omitempty"`                            // Directory CV downloads are saved to
	StrictContract bool   `json:"strict_contract,omitempty"`                         // Validate response envelopes against JSON schemas
	Verbose        bool   `json:"verbose,omitempty"`                                 // Log every request
	UserAgent      string `json:"user_agent,omitempty" validate:"omitempty,max=200"` // User agent sent to the backend
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return fmt.Errorf("config error: '%s' failed '%s' check", jsonName(ve[0].Field()), ve[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.DownloadDir != "" {
		info, err := os.Stat(c.DownloadDir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: download_dir is not a directory: %s", c.DownloadDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply environment values beneath config file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.SessionFile == "" {
		result.SessionFile = defaults.SessionFile
	}
	if result.DownloadDir == "" {
		result.DownloadDir = defaults.DownloadDir
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}

	// Bool fields: cannot distinguish unset from false, so either source enables them
	result.StrictContract = result.StrictContract || defaults.StrictContract
	result.Verbose = result.Verbose || defaults.Verbose

	if result.APIURL == "" {
		result.APIURL = DefaultAPIURL
	}

	return result
}

func jsonName(field string) string {
	switch field {
	case "APIURL":
		return "api_url"
	case "UserAgent":
		return "user_agent"
	default:
		return field
	}
}
