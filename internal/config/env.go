package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables read by NewEnvConfig.
const (
	EnvAPIURL         = "JOBBOARD_API_URL"
	EnvSessionFile    = "JOBBOARD_SESSION_FILE"
	EnvDownloadDir    = "JOBBOARD_DOWNLOAD_DIR"
	EnvStrictContract = "JOBBOARD_STRICT_CONTRACT"
	EnvVerbose        = "JOBBOARD_VERBOSE"
)

// NewEnvConfig creates a configuration from environment variables.
// The session file defaults to $XDG_CONFIG_HOME/jobboard/session.json
// and the download directory to the current directory.
func NewEnvConfig() (*Config, error) {
	cfg := &Config{
		APIURL:      os.Getenv(EnvAPIURL),
		SessionFile: os.Getenv(EnvSessionFile),
		DownloadDir: os.Getenv(EnvDownloadDir),
	}

	var err error
	if cfg.StrictContract, err = envBool(EnvStrictContract); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = envBool(EnvVerbose); err != nil {
		return nil, err
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "jobboard", "session.json")
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}

	return cfg, nil
}

func envBool(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
