// Package config reads and writes repoview settings.
//
// Settings live in ~/.repoview/config.yaml under dotted keys such as
// core.pager, pager.info or color.ui. Nested mappings and literal dotted keys
// are equivalent. Keys missing from that file fall back to the user's global
// git config, so a core.pager set for git applies here too.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v6/plumbing/format/config"
	"gopkg.in/yaml.v3"
)

// Keys read by repoview.
const (
	KeyPager         = "core.pager"
	KeyPagerStrategy = "core.pagerStrategy"
	KeyColorUI       = "color.ui"
	// PagerKeyPrefix + command name toggles paging for one command.
	PagerKeyPrefix = "pager."
)

// Config is a loaded, read-only view of the settings.
type Config struct {
	values map[string]string
	git    *format.Config
}

// New returns a Config holding only the given values. It does not consult
// git config.
func New(values map[string]string) *Config {
	c := &Config{values: make(map[string]string, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

// Path returns the location of config.yaml.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".repoview", "config.yaml"), nil
}

// Load reads config.yaml and the global git config. Missing files are not
// an error.
func Load() (*Config, error) {
	data, err := ReadRaw()
	if err != nil {
		return nil, err
	}

	cfg := &Config{values: map[string]string{}}
	if data != nil {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, NewConfigError("parse config.yaml: %w", err)
		}
		if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
			flatten("", doc.Content[0], cfg.values)
		}
	}

	cfg.git, err = loadGitConfig(gitConfigPath())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadRaw returns the contents of config.yaml, or nil if it doesn't exist.
func ReadRaw() ([]byte, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is ~/.repoview/config.yaml
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config.yaml: %w", err)
	}
	return data, nil
}

// Lookup returns the value for a dotted key and whether it is set anywhere.
func (c *Config) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	if v, ok := c.values[key]; ok {
		return v, true
	}
	return gitLookup(c.git, key)
}

// GetString returns the value for key, or "" when unset.
func (c *Config) GetString(key string) string {
	v, _ := c.Lookup(key)
	return v
}

// GetBool returns the boolean value for key. ok is false when the key is
// unset or isn't a recognisable boolean.
func (c *Config) GetBool(key string) (value bool, ok bool) {
	v, found := c.Lookup(key)
	if !found {
		return false, false
	}
	return parseBool(v)
}

// parseBool accepts git's spellings of true and false.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return false, false
	}
}

// flatten records every scalar under node as a dotted key.
func flatten(prefix string, node *yaml.Node, out map[string]string) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i < len(node.Content)-1; i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			flatten(key, node.Content[i+1], out)
		}
	case yaml.AliasNode:
		if node.Alias != nil {
			flatten(prefix, node.Alias, out)
		}
	case yaml.ScalarNode:
		if prefix != "" {
			out[prefix] = node.Value
		}
	}
}

// UpdateFields sets dotted keys in config.yaml, creating the file if needed.
// Comments and formatting of existing content are preserved.
func UpdateFields(fields map[string]string) error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is ~/.repoview/config.yaml
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read config.yaml: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		data = nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return NewConfigError("parse config.yaml: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewConfigError("config.yaml has unexpected structure")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return NewConfigError("config.yaml root is not a mapping")
	}

	for fieldPath, value := range fields {
		setYAMLField(root, fieldPath, value)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal config.yaml: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0600); err != nil {
		return fmt.Errorf("write config.yaml: %w", err)
	}
	return nil
}

// setYAMLField sets a dotted path (e.g. "core.pager") in a mapping tree,
// creating intermediate mappings as needed. A literal dotted key already in
// the file is updated in place.
func setYAMLField(root *yaml.Node, path string, value string) {
	if setScalar(root, path, value) {
		return
	}

	parts := strings.Split(path, ".")
	node := root
	for _, part := range parts[:len(parts)-1] {
		node = getOrCreateMapping(node, part)
	}

	leaf := parts[len(parts)-1]
	if setScalar(node, leaf, value) {
		return
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: leaf},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: scalarTag(value)},
	)
}

// setScalar overwrites key in mapping node if present.
func setScalar(node *yaml.Node, key, value string) bool {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key && node.Content[i+1].Kind == yaml.ScalarNode {
			node.Content[i+1].Value = value
			node.Content[i+1].Tag = scalarTag(value)
			return true
		}
	}
	return false
}

func scalarTag(value string) string {
	if value == "true" || value == "false" {
		return "!!bool"
	}
	return "!!str"
}

// getOrCreateMapping finds or creates a mapping node under the given key.
func getOrCreateMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == key && parent.Content[i+1].Kind == yaml.MappingNode {
			return parent.Content[i+1]
		}
	}

	mapNode := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, mapNode)
	return mapNode
}
