// Package config loads the host configuration: where the renderer finds its
// assets, which fonts it loads, style overrides, and how element IDs are
// written.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-xframes/xframes/pkg/boundary"
	"github.com/go-xframes/xframes/pkg/element"
)

const (
	// FileName is the configuration file looked up by default.
	FileName = "xframes.yaml"
	// DefaultAssets is the assets directory used when none is configured.
	DefaultAssets = "./assets"
	// SupportedMajor is the configuration format major version understood here.
	SupportedMajor = "v1"
)

// DefaultFonts is loaded when the configuration lists no fonts.
var DefaultFonts = []FontDef{{Name: "roboto-regular", Size: 16}}

// Config represents the optional xframes.yaml configuration.
type Config struct {
	Version string         `yaml:"version,omitempty"`
	Assets  string         `yaml:"assets,omitempty"`
	Fonts   []FontDef      `yaml:"fonts,omitempty"`
	Styles  map[string]any `yaml:"styles,omitempty"`
	IDs     string         `yaml:"ids,omitempty"`
}

// FontDef names one font face and the pixel size to load it at.
type FontDef struct {
	Name string `yaml:"name" json:"name"`
	Size int    `yaml:"size" json:"size"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the file the values came from, or "" for defaults.
	Path     string
	Version  string
	Assets   string
	Fonts    []FontDef
	Styles   map[string]any
	IDFormat element.IDFormat
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads path if present. A missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Resolve loads path (if present) and resolves defaults.
func Resolve(path string) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		r.Path = path
	}
	return r, nil
}

// Resolve validates c and fills in defaults.
func (c *Config) Resolve() (*Resolved, error) {
	version := strings.TrimSpace(c.Version)
	if version != "" {
		if err := checkVersion(version); err != nil {
			return nil, err
		}
	}

	assets := strings.TrimSpace(c.Assets)
	if assets == "" {
		assets = DefaultAssets
	}

	fonts := c.Fonts
	if len(fonts) == 0 {
		fonts = DefaultFonts
	}
	for i, f := range fonts {
		if err := validateFont(f); err != nil {
			return nil, fmt.Errorf("fonts[%d]: %w", i, err)
		}
	}

	ids, err := element.ParseIDFormat(strings.TrimSpace(c.IDs))
	if err != nil {
		return nil, err
	}

	styles := c.Styles
	if styles == nil {
		styles = map[string]any{}
	}

	return &Resolved{
		Version:  version,
		Assets:   assets,
		Fonts:    append([]FontDef(nil), fonts...),
		Styles:   styles,
		IDFormat: ids,
	}, nil
}

func checkVersion(v string) error {
	canon := v
	if !strings.HasPrefix(canon, "v") {
		canon = "v" + canon
	}
	if !semver.IsValid(canon) {
		return fmt.Errorf("invalid version %q", v)
	}
	if major := semver.Major(canon); major != SupportedMajor {
		return fmt.Errorf("unsupported config version %s (want %s.x)", v, SupportedMajor)
	}
	return nil
}

func validateFont(f FontDef) error {
	switch {
	case f.Name == "":
		return errors.New("font name is required")
	case strings.ContainsAny(f.Name, `/\`) || f.Name == "." || f.Name == "..":
		return fmt.Errorf("font name %q must not be a path", f.Name)
	case f.Size <= 0:
		return fmt.Errorf("font %s: size must be positive, got %d", f.Name, f.Size)
	}
	return nil
}

// FontDefsJSON returns the renderer's font definitions document.
func (r *Resolved) FontDefsJSON() ([]byte, error) {
	return json.Marshal(struct {
		Defs []FontDef `json:"defs"`
	}{r.Fonts})
}

// StylesJSON returns the renderer's style overrides document.
func (r *Resolved) StylesJSON() ([]byte, error) {
	if len(r.Styles) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(r.Styles)
	if err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}
	return data, nil
}

// StartConfig returns the values passed to the renderer's start call.
func (r *Resolved) StartConfig() (boundary.StartConfig, error) {
	fonts, err := r.FontDefsJSON()
	if err != nil {
		return boundary.StartConfig{}, err
	}
	styles, err := r.StylesJSON()
	if err != nil {
		return boundary.StartConfig{}, err
	}
	return boundary.StartConfig{
		AssetsPath:     r.Assets,
		FontDefs:       fonts,
		StyleOverrides: styles,
	}, nil
}
