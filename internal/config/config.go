// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidepad/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`

	// Keys in the config file that matched no field. Reported by main once
	// the logger is up; nothing here may log while the logger is unset.
	unrecognized []string
}

// EditorConfig holds appearance and diagnostics settings. Editing behaviour
// itself is fixed.
type EditorConfig struct {
	StatusBar  bool   `toml:"status_bar"`
	ThemeFile  string `toml:"theme_file"`
	DebugState bool   `toml:"debug_state"` // Log a JSON snapshot of the state after every keystroke
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    DefaultLogLevel,
			LogFilePath: DefaultLogFileName,
		},
		Editor: EditorConfig{
			StatusBar: ShowStatusBar,
		},
	}
}

// DefaultConfigPath returns the per-user config file location, or "" when the
// user config directory is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg, so keys missing from the file keep
// their current values. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		cfg.unrecognized = append(cfg.unrecognized, key.String())
	}
	return nil
}

// UnrecognizedKeys lists config file keys that matched no setting.
func (c *Config) UnrecognizedKeys() []string {
	return c.unrecognized
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = DefaultLogLevel
	}
}

// Load builds a configuration from defaults, the config file and flags, in
// that order of precedence. An empty configFilePath selects DefaultConfigPath.
// On a file error the returned config still holds defaults plus flags.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}

	var fileErr error
	if effectivePath != "" {
		fileCfg := NewDefaultConfig()
		if fileErr = loadFromFile(effectivePath, fileCfg); fileErr == nil {
			cfg = fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, fileErr
}

// LoadConfig runs Load once; later calls return the first result.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}
