// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ddushok/mac-shout/hotkey"
)

const (
	appName        = "mac-shout"
	configFileName = "config.json"
)

// Default push-to-talk key: right option, no modifier mask.
const defaultKeyCode = 61

// HotkeyConfig is the serialized form of the push-to-talk hotkey.
type HotkeyConfig struct {
	KeyCode   uint16   `json:"key_code"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// HotKey converts the serialized hotkey to its runtime form. Unknown
// modifier names are rejected rather than silently dropped.
func (h HotkeyConfig) HotKey() (hotkey.HotKey, error) {
	var mask hotkey.Modifier
	for _, name := range h.Modifiers {
		switch name {
		case "control":
			mask |= hotkey.ModControl
		case "option":
			mask |= hotkey.ModOption
		case "shift":
			mask |= hotkey.ModShift
		case "command":
			mask |= hotkey.ModCommand
		default:
			return hotkey.HotKey{}, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return hotkey.HotKey{KeyCode: h.KeyCode, Modifiers: mask}, nil
}

// Config represents the application configuration.
type Config struct {
	Hotkey      HotkeyConfig `json:"hotkey"`
	Language    string       `json:"language"`
	Recognizer  string       `json:"recognizer"`
	ModelPath   string       `json:"model_path,omitempty"`
	APIKey      string       `json:"api_key,omitempty"`
	APIBaseURL  string       `json:"api_base_url,omitempty"`
	InputDevice string       `json:"input_device,omitempty"`
}

// RecognitionLanguage returns the configured language code; satisfies the
// coordinator's settings interface.
func (c *Config) RecognitionLanguage() string {
	return c.Language
}

// Load loads configuration from the config file.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Hotkey.KeyCode == 0 {
		cfg.Hotkey = Default().Hotkey
	}
	if cfg.Recognizer == "" {
		cfg.Recognizer = Default().Recognizer
	}

	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// DataDir returns the per-user directory for databases and models.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func configPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns the built-in configuration: bare right-option hotkey,
// English, local whisper. Callers that cannot load a config file should
// fall back to this rather than a zero Config, whose zero hotkey would
// match a plain letter key.
func Default() *Config {
	return &Config{
		Hotkey:     HotkeyConfig{KeyCode: defaultKeyCode},
		Language:   "en",
		Recognizer: "whisper-native",
	}
}
