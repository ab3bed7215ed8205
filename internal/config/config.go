package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Default values applied when a field is absent from the config file.
const (
	DefaultTheme        = "dark-purple"
	DefaultModel        = "gpt-4o-mini"
	DefaultVoiceStyle   = "professional-female"
	DefaultExportFormat = "txt"
)

// Config holds the application configuration
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	Model                string `json:"model,omitempty"`                 // Generation model identifier
	VoiceStyle           string `json:"voice_style,omitempty"`           // Voice style for synthesized replies
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for background replies
	ExportFormat         string `json:"export_format,omitempty"`         // Default conversation export format
	WelcomeShown         bool   `json:"welcome_shown,omitempty"`         // Whether welcome modal has been shown

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Theme:        DefaultTheme,
		Model:        DefaultModel,
		VoiceStyle:   DefaultVoiceStyle,
		ExportFormat: DefaultExportFormat,
		filePath:     path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Restore defaults for fields omitted from the file
	cfg.ensureInitialized()

	// Validate loaded config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills empty fields with their defaults.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from Load() before the Config
// is shared across goroutines).
func (c *Config) ensureInitialized() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.VoiceStyle == "" {
		c.VoiceStyle = DefaultVoiceStyle
	}
	if c.ExportFormat == "" {
		c.ExportFormat = DefaultExportFormat
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.ExportFormat {
	case "pdf", "json", "txt":
	default:
		return fmt.Errorf("unknown export format: %s", c.ExportFormat)
	}
	return nil
}

// Remove deletes the config file from disk, returning the removed path.
// A missing file is not an error.
func Remove() (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return path, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetModel returns the generation model identifier
func (c *Config) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel sets the generation model identifier
func (c *Config) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
}

// GetVoiceStyle returns the configured voice style
func (c *Config) GetVoiceStyle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.VoiceStyle
}

// SetVoiceStyle sets the configured voice style
func (c *Config) SetVoiceStyle(style string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.VoiceStyle = style
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetExportFormat returns the default export format
func (c *Config) GetExportFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ExportFormat
}

// SetExportFormat sets the default export format
func (c *Config) SetExportFormat(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExportFormat = format
}

// HasSeenWelcome returns whether the welcome modal has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome modal as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
