package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/TobiasForner/pkmt-sub000/internal/atomicfile"
)

type persistedConfig struct {
	DefaultVault *string              `toml:"default_vault,omitempty"`
	Vaults       map[string]Vault     `toml:"vaults,omitempty"`
	Inbox        *persistedInbox      `toml:"inbox,omitempty"`
	UI           *persistedUISettings `toml:"ui,omitempty"`
}

type persistedInbox struct {
	URL      *string `toml:"url,omitempty"`
	Token    *string `toml:"token,omitempty"`
	Dir      *string `toml:"dir,omitempty"`
	Template *string `toml:"template,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return &trimmed
	}
	return nil
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultVault: nonEmptyPtr(cfg.DefaultVault),
	}
	if len(cfg.Vaults) > 0 {
		out.Vaults = cfg.Vaults
	}

	url := nonEmptyPtr(cfg.Inbox.URL)
	token := nonEmptyPtr(cfg.Inbox.Token)
	dir := nonEmptyPtr(cfg.Inbox.Dir)
	template := nonEmptyPtr(cfg.Inbox.Template)
	if url != nil || token != nil || dir != nil || template != nil {
		out.Inbox = &persistedInbox{URL: url, Token: token, Dir: dir, Template: template}
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{Accent: accent, CodeTheme: codeTheme}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
