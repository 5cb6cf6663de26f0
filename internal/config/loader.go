package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcuadros/go-defaults"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"enercast/internal/common/fsutil"
)

// Config holds runtime parameters for the CLI and the stand-in server.
// Values are resolved in three layers: struct defaults, then an optional
// config file, then ENERCAST_* environment variables. Environment wins.
type Config struct {
	// Service is the remote prediction service the client talks to.
	Service struct {
		BaseURL           string  `json:"base_url" yaml:"base_url" toml:"base_url" env:"ENERCAST_SERVICE_BASE_URL" default:"http://localhost:5000"`
		Enabled           bool    `json:"enabled" yaml:"enabled" toml:"enabled" env:"ENERCAST_SERVICE_ENABLED" default:"true"`
		APIKey            string  `json:"api_key" yaml:"api_key" toml:"api_key" env:"ENERCAST_SERVICE_API_KEY"`
		HealthTimeoutSec  int     `json:"health_timeout_sec" yaml:"health_timeout_sec" toml:"health_timeout_sec" env:"ENERCAST_SERVICE_HEALTH_TIMEOUT_SEC" default:"5"`
		PredictTimeoutSec int     `json:"predict_timeout_sec" yaml:"predict_timeout_sec" toml:"predict_timeout_sec" env:"ENERCAST_SERVICE_PREDICT_TIMEOUT_SEC" default:"30"`
		RequestTimeoutSec int     `json:"request_timeout_sec" yaml:"request_timeout_sec" toml:"request_timeout_sec" env:"ENERCAST_SERVICE_REQUEST_TIMEOUT_SEC" default:"10"`
		RateLimit         float64 `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit" env:"ENERCAST_SERVICE_RATE_LIMIT" default:"0"`
		RateBurst         int     `json:"rate_burst" yaml:"rate_burst" toml:"rate_burst" env:"ENERCAST_SERVICE_RATE_BURST" default:"1"`
	} `json:"service" yaml:"service" toml:"service"`

	// Server configures the embedded stand-in prediction server.
	Server struct {
		Addr         string   `json:"addr" yaml:"addr" toml:"addr" env:"ENERCAST_SERVER_ADDR" default:":8090"`
		ParamsPath   string   `json:"params_path" yaml:"params_path" toml:"params_path" env:"ENERCAST_SERVER_PARAMS_PATH"`
		AllowBuiltin bool     `json:"allow_builtin" yaml:"allow_builtin" toml:"allow_builtin" env:"ENERCAST_SERVER_ALLOW_BUILTIN" default:"true"`
		MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"ENERCAST_SERVER_MAX_BODY_BYTES" default:"1048576"`
		RateLimit    string   `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit" env:"ENERCAST_SERVER_RATE_LIMIT"`
		CORSEnabled  bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"ENERCAST_SERVER_CORS_ENABLED" default:"false"`
		CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"ENERCAST_SERVER_CORS_ORIGINS"`
	} `json:"server" yaml:"server" toml:"server"`

	Log struct {
		Level  string `json:"level" yaml:"level" toml:"level" env:"ENERCAST_LOG_LEVEL" default:"info"`
		Format string `json:"format" yaml:"format" toml:"format" env:"ENERCAST_LOG_FORMAT" default:"console"`
		File   string `json:"file" yaml:"file" toml:"file" env:"ENERCAST_LOG_FILE"`
	} `json:"log" yaml:"log" toml:"log"`
}

// Load resolves the configuration. An empty path skips the file layer and
// returns defaults plus environment overrides. Supported file extensions:
// .yaml/.yml, .json, .toml
func Load(path string) (*Config, error) {
	cfg := &Config{}
	defaults.SetDefaults(cfg)

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, err
			}
		case ".json":
			if err := json.Unmarshal(b, cfg); err != nil {
				return nil, err
			}
		case ".toml":
			if err := toml.Unmarshal(b, cfg); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unsupported config extension: %s", ext)
		}
	}

	// Environment beats both file and defaults.
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:           cfg,
		DefaultOverwrite: true,
	}); err != nil {
		return nil, err
	}

	if cfg.Server.ParamsPath != "" {
		expanded, err := fsutil.ExpandHome(cfg.Server.ParamsPath)
		if err != nil {
			return nil, fmt.Errorf("params path: %w", err)
		}
		cfg.Server.ParamsPath = expanded
	}
	if cfg.Log.File != "" {
		expanded, err := fsutil.ExpandHome(cfg.Log.File)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		cfg.Log.File = expanded
	}
	return cfg, nil
}
