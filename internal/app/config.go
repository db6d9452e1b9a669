// Package app provides application-level configuration and initialization.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/lazyvibe/texrack/internal/logging"
	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/pkg/utils"
)

const (
	appName = "texrack"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TEXRACK_"
	// ConfigFile is the configuration filename inside the config directory.
	ConfigFile = "config.yaml"

	maxConfigFileSize = 1024 * 1024
)

// Config holds the application configuration.
type Config struct {
	// DocumentsDir holds the shared projects folder.
	DocumentsDir string `koanf:"documents_dir"`
	// ProjectsFolder is the folder name under DocumentsDir.
	ProjectsFolder string `koanf:"projects_folder"`
	// DataDir is the local application-data directory (current.json).
	DataDir string `koanf:"data_dir"`
	// Log configures the zap logger.
	Log logging.Config `koanf:"log"`
	// Notify configures desktop notifications.
	Notify NotifyConfig `koanf:"notify"`
}

// NotifyConfig holds notification settings.
type NotifyConfig struct {
	Desktop bool `koanf:"desktop"`
}

// DefaultConfig returns a config with sensible defaults rooted at configDir.
func DefaultConfig(configDir string) *Config {
	documents := "~/Documents"
	if home, err := os.UserHomeDir(); err == nil {
		documents = filepath.Join(home, "Documents")
	}
	return &Config{
		DocumentsDir:   documents,
		ProjectsFolder: project.DefaultProjectsFolder,
		DataDir:        filepath.Join(configDir, "data"),
		Log:            logging.NewDefaultConfig(),
	}
}

// ConfigDir returns the texrack configuration directory.
func ConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if available, otherwise the platform default
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, appName), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, ConfigFile)
}

// LoadConfig loads configuration from configDir/config.yaml, then applies
// TEXRACK_* environment overrides.
//
//	TEXRACK_DOCUMENTS_DIR  -> documents_dir
//	TEXRACK_DATA_DIR       -> data_dir
//	TEXRACK_LOG_LEVEL      -> log.level
//	TEXRACK_NOTIFY_DESKTOP -> notify.desktop
func LoadConfig(configDir string) (*Config, error) {
	k := koanf.New(".")

	path := ConfigPath(configDir)
	content, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := DefaultConfig(configDir)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(cfg, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.ProjectsFolder, `/\`) || c.ProjectsFolder == ".." {
		return fmt.Errorf("projects_folder must be a single folder name, got %q", c.ProjectsFolder)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Roots converts the configuration into manager roots.
func (c *Config) Roots() project.Roots {
	return project.Roots{
		Documents:      c.DocumentsDir,
		ProjectsFolder: c.ProjectsFolder,
		Data:           c.DataDir,
	}
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKey maps TEXRACK_LOG_LEVEL to log.level and TEXRACK_DATA_DIR to data_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"log", "notify"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

func applyDefaults(cfg *Config, configDir string) {
	defaults := DefaultConfig(configDir)
	if cfg.DocumentsDir == "" {
		cfg.DocumentsDir = defaults.DocumentsDir
	}
	if cfg.ProjectsFolder == "" {
		cfg.ProjectsFolder = defaults.ProjectsFolder
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaults.DataDir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	cfg.DocumentsDir = absPath(cfg.DocumentsDir)
	cfg.DataDir = absPath(cfg.DataDir)
}

// absPath expands ~ and resolves relative locations against the working
// directory, so stored project paths stay valid from any directory.
func absPath(path string) string {
	expanded := utils.ExpandPath(path)
	if abs, err := filepath.Abs(expanded); err == nil {
		return abs
	}
	return expanded
}
