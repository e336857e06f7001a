// Package config loads explain's YAML configuration and environment overrides.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/explain-go/assets"
	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/pkg/filesystem"
	"github.com/doeshing/explain-go/internal/ports"
)

// Environment variables consulted by the loader.
const (
	EnvConfigPath     = "EXPLAIN_CONFIG"
	EnvAPIKey         = "EXPLAIN_OPENAI_KEY"
	EnvModelName      = "EXPLAIN_OPENAI_MODEL_NAME"
	EnvSmartModelName = "EXPLAIN_OPENAI_SMART_MODEL_NAME"
	EnvCommandTimeout = "EXPLAIN_COMMAND_TIMEOUT_SECONDS"
)

const (
	configFileName   = "config.yaml"
	dotEnvFileName   = ".env"
	databaseFileName = "explain_history.sqlite"
)

// FileLoader loads YAML configuration from ~/.config/explain/config.yaml (overridable via EXPLAIN_CONFIG).
type FileLoader struct {
	overridePath string
	logger       ports.Logger
}

// NewFileLoader builds a new loader. An empty path selects the default location.
func NewFileLoader(path string, logger ports.Logger) *FileLoader {
	return &FileLoader{overridePath: path, logger: logger}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	l.loadDotEnv(filepath.Join(filepath.Dir(path), dotEnvFileName))

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		data = assets.DefaultConfigYAML
		if err := writeDefault(path, data); err != nil {
			return domain.Config{}, err
		}
		l.debug("wrote default config", map[string]interface{}{"path": path})
	}

	cfg := defaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return domain.Config{}, err
	}

	cfg = hydrateDefaults(cfg)
	l.debug("config loaded", map[string]interface{}{
		"path":     path,
		"model":    cfg.OpenAI.ModelName,
		"database": cfg.Storage.DatabasePath,
	})
	return cfg, nil
}

// Path returns the config file that Load reads.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), configFileName)
}

// loadDotEnv fills unset variables from a .env file next to the config.
// Variables already present in the environment win.
func (l *FileLoader) loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if l.logger != nil {
			l.logger.Warn("ignoring unreadable .env file", map[string]interface{}{"path": path, "error": err.Error()})
		}
		return
	}
	l.debug("loaded .env file", map[string]interface{}{"path": path})
}

func (l *FileLoader) debug(msg string, fields map[string]interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, fields)
	}
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return nil
}

func writeDefault(path string, raw []byte) error {
	if err := os.WriteFile(path, raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func defaultConfig() domain.Config {
	return domain.Config{
		OpenAI: domain.OpenAISettings{
			ModelName:      domain.DefaultModelName,
			SmartModelName: domain.DefaultSmartModelName,
			Temperature:    domain.DefaultTemperature,
			Seed:           domain.DefaultSeed,
		},
	}
}

func applyEnvOverrides(cfg *domain.Config) error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv(EnvModelName); v != "" {
		cfg.OpenAI.ModelName = v
	}
	if v := os.Getenv(EnvSmartModelName); v != "" {
		cfg.OpenAI.SmartModelName = v
	}
	if v := os.Getenv(EnvCommandTimeout); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", EnvCommandTimeout, err)
		}
		cfg.Execution.CommandTimeoutSeconds = seconds
	}
	return nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.OpenAI.ModelName == "" {
		cfg.OpenAI.ModelName = domain.DefaultModelName
	}
	if cfg.OpenAI.SmartModelName == "" {
		cfg.OpenAI.SmartModelName = domain.DefaultSmartModelName
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = filepath.Join(filesystem.DataDir(), databaseFileName)
	} else {
		cfg.Storage.DatabasePath = filesystem.ExpandHome(cfg.Storage.DatabasePath)
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
