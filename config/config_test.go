package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ddushok/mac-shout/hotkey"
)

// writeConfigFile points the user config dir at a temp dir and writes data
// as the config file there.
func writeConfigFile(t *testing.T, data string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, ".config"))

	path, err := configPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestHotkeyConfigConversion(t *testing.T) {
	tests := []struct {
		name    string
		cfg     HotkeyConfig
		want    hotkey.HotKey
		wantErr bool
	}{
		{
			"bare_right_option",
			HotkeyConfig{KeyCode: 61},
			hotkey.HotKey{KeyCode: 61},
			false,
		},
		{
			"control_shift_space",
			HotkeyConfig{KeyCode: 49, Modifiers: []string{"control", "shift"}},
			hotkey.HotKey{KeyCode: 49, Modifiers: hotkey.ModControl | hotkey.ModShift},
			false,
		},
		{
			"all_modifiers",
			HotkeyConfig{KeyCode: 1, Modifiers: []string{"control", "option", "shift", "command"}},
			hotkey.HotKey{KeyCode: 1, Modifiers: hotkey.ModControl | hotkey.ModOption | hotkey.ModShift | hotkey.ModCommand},
			false,
		},
		{
			"unknown_modifier",
			HotkeyConfig{KeyCode: 1, Modifiers: []string{"hyper"}},
			hotkey.HotKey{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.HotKey()
			if (err != nil) != tt.wantErr {
				t.Fatalf("HotKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("HotKey() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadBackfillsZeroHotkey(t *testing.T) {
	// A file that never set a hotkey must not leave keycode 0 armed; that
	// is the A key on macOS.
	writeConfigFile(t, `{"language":"de"}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Hotkey.KeyCode == 0 {
		t.Fatal("zero hotkey keycode survived Load")
	}
	if cfg.RecognitionLanguage() != "de" {
		t.Errorf("language = %q, want de", cfg.RecognitionLanguage())
	}
}

func TestLoadCorruptFileErrors(t *testing.T) {
	writeConfigFile(t, `{"hotkey": `)

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted corrupt config")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, ".config"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Hotkey.KeyCode != Default().Hotkey.KeyCode {
		t.Errorf("hotkey keycode = %d, want default %d",
			cfg.Hotkey.KeyCode, Default().Hotkey.KeyCode)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	hk, err := cfg.Hotkey.HotKey()
	if err != nil {
		t.Fatalf("default hotkey: %v", err)
	}
	if hk.KeyCode != 61 || hk.Modifiers != 0 {
		t.Errorf("default hotkey = %+v, want bare key 61", hk)
	}
	if cfg.Recognizer == "" {
		t.Error("default recognizer is empty")
	}
	if cfg.RecognitionLanguage() != "en" {
		t.Errorf("default language = %q, want en", cfg.RecognitionLanguage())
	}
}
