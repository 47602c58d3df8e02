// Package config handles local configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultAPIURL is the server root used when nothing else is configured.
const DefaultAPIURL = "http://localhost:8080"

var (
	mu         sync.RWMutex
	globalCfg  *Config
	configPath string
)

// Config represents the CLI configuration.
type Config struct {
	APIUrl         string            `json:"api_url"`
	LogLevel       string            `json:"log_level,omitempty"`
	LogFile        string            `json:"log_file,omitempty"`
	CustomSettings map[string]string `json:"custom,omitempty"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		APIUrl:         DefaultAPIURL,
		LogLevel:       "info",
		CustomSettings: make(map[string]string),
	}
}

// Dir returns the directory holding config, session and context files,
// creating it if needed. LQA_CONFIG_DIR overrides ~/.lqa.
func Dir() (string, error) {
	if configDir := os.Getenv("LQA_CONFIG_DIR"); configDir != "" {
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return "", fmt.Errorf("create config directory: %w", err)
		}
		return configDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}

	dir := filepath.Join(homeDir, ".lqa")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create .lqa directory: %w", err)
	}

	return dir, nil
}

// Load reads the configuration from disk, creating defaults if needed.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalCfg != nil {
		return globalCfg, nil
	}

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	configPath = filepath.Join(dir, "config.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		globalCfg = Default()
		if err := save(globalCfg); err != nil {
			return nil, fmt.Errorf("save default config: %w", err)
		}
		applyEnv(globalCfg)
		return globalCfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.CustomSettings == nil {
		cfg.CustomSettings = make(map[string]string)
	}
	if cfg.APIUrl == "" {
		cfg.APIUrl = DefaultAPIURL
	}

	globalCfg = &cfg
	applyEnv(globalCfg)

	return globalCfg, nil
}

func applyEnv(cfg *Config) {
	if apiURL := os.Getenv("LQA_API_URL"); apiURL != "" {
		cfg.APIUrl = apiURL
	}
	if level := os.Getenv("LQA_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
}

// save writes the config to disk.
func save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Save persists the current config to disk.
func Save() error {
	mu.Lock()
	defer mu.Unlock()

	if globalCfg == nil {
		return fmt.Errorf("no config loaded")
	}

	return save(globalCfg)
}

// Get retrieves a config value by key.
func Get(key string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		return "", fmt.Errorf("config not loaded")
	}

	switch key {
	case "api_url":
		return globalCfg.APIUrl, nil
	case "log.level":
		return globalCfg.LogLevel, nil
	case "log.file":
		return globalCfg.LogFile, nil
	default:
		if val, ok := globalCfg.CustomSettings[key]; ok {
			return val, nil
		}
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a config value by key.
func Set(key, value string) error {
	mu.Lock()
	defer mu.Unlock()

	if globalCfg == nil {
		return fmt.Errorf("config not loaded")
	}

	switch key {
	case "api_url":
		globalCfg.APIUrl = value
	case "log.level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log.level: %q", value)
		}
		globalCfg.LogLevel = value
	case "log.file":
		globalCfg.LogFile = value
	default:
		globalCfg.CustomSettings[key] = value
	}

	return save(globalCfg)
}

// List returns all config key-value pairs.
func List() (map[string]string, error) {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}

	result := make(map[string]string)
	result["api_url"] = globalCfg.APIUrl
	result["log.level"] = globalCfg.LogLevel
	result["log.file"] = globalCfg.LogFile

	for k, v := range globalCfg.CustomSettings {
		result[k] = v
	}

	return result, nil
}

// GetAPIUrl returns the configured API URL.
func GetAPIUrl() string {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		return DefaultAPIURL
	}

	return globalCfg.APIUrl
}
