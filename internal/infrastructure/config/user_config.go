package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.farmchain/config.json
// This file stores ONLY preferences, never tokens or secrets
type UserConfig struct {
	// Default farm ID to use when not specified via CLI
	DefaultFarmID *uint64 `json:"default_farm_id,omitempty"`

	// Engine URL the CLI talks to when not specified via flag
	EngineURL string `json:"engine_url,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".farmchain")
	configPath := filepath.Join(configDir, "config.json")

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: configPath,
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultFarm sets the default farm ID
func (h *UserConfigHandler) SetDefaultFarm(farmID uint64) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultFarmID = &farmID
	return h.Save(config)
}

// ClearDefaultFarm removes the default farm setting
func (h *UserConfigHandler) ClearDefaultFarm() error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultFarmID = nil
	return h.Save(config)
}

// SetEngineURL sets the engine URL the CLI talks to
func (h *UserConfigHandler) SetEngineURL(url string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.EngineURL = url
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
