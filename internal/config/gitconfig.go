package config

import (
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v6/plumbing/format/config"
)

// gitConfigPath returns the user's global git config file, honouring
// GIT_CONFIG_GLOBAL and falling back to the XDG location when ~/.gitconfig
// doesn't exist.
func gitConfigPath() string {
	if p := os.Getenv("GIT_CONFIG_GLOBAL"); p != "" {
		return p
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(homeDir, ".gitconfig")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(xdg, "git", "config")
}

// loadGitConfig decodes a git config file. A missing file yields nil.
func loadGitConfig(path string) (*format.Config, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path) //nolint:gosec // G304: path is the user's git config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewConfigError("read git config: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	cfg := format.New()
	if err := format.NewDecoder(f).Decode(cfg); err != nil {
		return nil, NewConfigError("parse git config %s: %w", path, err)
	}
	return cfg, nil
}

// gitLookup resolves "section.option" or "section.sub.section.option".
func gitLookup(cfg *format.Config, key string) (string, bool) {
	if cfg == nil {
		return "", false
	}
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return "", false
	}
	section, option := parts[0], parts[len(parts)-1]
	if !cfg.HasSection(section) {
		return "", false
	}
	sec := cfg.Section(section)

	if len(parts) == 2 {
		if !sec.HasOption(option) {
			return "", false
		}
		return sec.Option(option), true
	}

	name := strings.Join(parts[1:len(parts)-1], ".")
	if !sec.HasSubsection(name) {
		return "", false
	}
	sub := sec.Subsection(name)
	if !sub.HasOption(option) {
		return "", false
	}
	return sub.Option(option), true
}
