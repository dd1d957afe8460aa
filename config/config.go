package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds persistent settings stored at <configDir>/gamecal.json.
type Config struct {
	Theme     string `json:"theme,omitempty"`
	Locale    string `json:"locale,omitempty"` // "en" or "zh"
	Platform  string `json:"platform,omitempty"`
	ServerURL string `json:"server_url,omitempty"`
}

const filename = "gamecal.json"

// Load reads <configDir>/gamecal.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(configDir string) Config {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(configDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}
	return cfg
}

// Save writes cfg to <configDir>/gamecal.json, creating the directory if needed.
func Save(configDir string, cfg Config) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, filename), data, 0o644)
}

func defaults() Config {
	return Config{
		Theme:  "dark",
		Locale: "en",
	}
}
