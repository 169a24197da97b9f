// Package config handles global pkmt configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// Config is the global pkmt configuration.
type Config struct {
	// DefaultVault is the name of the default vault (from Vaults).
	DefaultVault string `toml:"default_vault"`

	// Vaults maps vault names to their settings.
	Vaults map[string]Vault `toml:"vaults"`

	// Inbox configures the task-inbox integration.
	Inbox Inbox `toml:"inbox"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// Vault is one configured note collection.
type Vault struct {
	// Path is the vault's root directory.
	Path string `toml:"path"`

	// Dialect is the markup the vault's notes are written in:
	// "logseq", "zk", or "obsidian".
	Dialect string `toml:"dialect"`

	// ImageDir, when set, is the directory image embeds are rewritten to
	// point at when serializing to the logseq dialect.
	ImageDir string `toml:"image_dir"`
}

// Inbox configures where open tasks are fetched from and where the filled
// notes land.
type Inbox struct {
	// URL is the JSON task endpoint.
	URL string `toml:"url"`

	// Token is sent as a bearer token when set.
	Token string `toml:"token"`

	// Dir is the vault-relative directory new inbox notes are written to.
	Dir string `toml:"dir"`

	// Template is the vault-relative path of the note template to fill.
	Template string `toml:"template"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output. Supported values
	// are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks. Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// GetVault returns the settings for a named vault. If name is empty, the
// default vault is used.
func (c *Config) GetVault(name string) (Vault, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return Vault{}, fmt.Errorf("no default vault configured")
	}
	v, ok := c.Vaults[name]
	if !ok {
		return Vault{}, fmt.Errorf("vault '%s' not found in config", name)
	}
	if v.Path == "" {
		return Vault{}, fmt.Errorf("vault '%s' has no path configured", name)
	}
	if v.Dialect != "" && !document.Dialect(v.Dialect).Valid() {
		return Vault{}, fmt.Errorf("vault '%s' has unknown dialect '%s'", name, v.Dialect)
	}
	return v, nil
}

// ListVaults returns all configured vaults with their paths.
func (c *Config) ListVaults() map[string]string {
	result := make(map[string]string, len(c.Vaults))
	for name, v := range c.Vaults {
		result[name] = v.Path
	}
	return result
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/pkmt/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "pkmt", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "pkmt", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a commented default config file if none exists.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# pkmt configuration

# Default vault name (must exist in [vaults] below)
# default_vault = "personal"

# Named vaults
# [vaults.personal]
# path = "/path/to/your/notes"
# dialect = "logseq"
# image_dir = "/path/to/your/notes/assets"

# Task inbox
# [inbox]
# url = "https://tasks.example.com/api/open"
# dir = "inbox"
# template = "templates/task.md"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
