// Package theme resolves a named preset with site overrides and renders the
// result as CSS custom properties.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dario.cat/mergo"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	Luxury  = "luxury"
	Modern  = "modern"
	Rustic  = "rustic"
	Coastal = "coastal"
	Minimal = "minimal"
	Custom  = "custom"
)

type Config struct {
	Preset     string     `yaml:"preset" json:"preset"`
	Colors     Colors     `yaml:"colors" json:"colors"`
	Typography Typography `yaml:"typography" json:"typography"`
	Style      Style      `yaml:"style" json:"style"`
	DarkColors *Colors    `yaml:"darkColors,omitempty" json:"darkColors,omitempty"`
}

type Colors struct {
	Primary        string `yaml:"primary" json:"primary"`
	Secondary      string `yaml:"secondary" json:"secondary"`
	Accent         string `yaml:"accent" json:"accent"`
	Muted          string `yaml:"muted" json:"muted"`
	Background     string `yaml:"background" json:"background"`
	Foreground     string `yaml:"foreground" json:"foreground"`
	Card           string `yaml:"card,omitempty" json:"card,omitempty"`
	CardForeground string `yaml:"cardForeground,omitempty" json:"cardForeground,omitempty"`
	Border         string `yaml:"border,omitempty" json:"border,omitempty"`
	Success        string `yaml:"success,omitempty" json:"success,omitempty"`
	Warning        string `yaml:"warning,omitempty" json:"warning,omitempty"`
	Error          string `yaml:"error,omitempty" json:"error,omitempty"`
}

type Typography struct {
	HeadingFont  string  `yaml:"headingFont" json:"headingFont"`
	BodyFont     string  `yaml:"bodyFont" json:"bodyFont"`
	MonoFont     string  `yaml:"monoFont,omitempty" json:"monoFont,omitempty"`
	BaseFontSize int     `yaml:"baseFontSize,omitempty" json:"baseFontSize,omitempty"`
	LineHeight   float64 `yaml:"lineHeight,omitempty" json:"lineHeight,omitempty"`
}

type Style struct {
	BorderRadius    string `yaml:"borderRadius" json:"borderRadius"`       // none|small|medium|large|full
	ShadowIntensity string `yaml:"shadowIntensity" json:"shadowIntensity"` // none|light|medium|strong
	TransitionSpeed string `yaml:"transitionSpeed" json:"transitionSpeed"` // fast|normal|slow
}

var presets = map[string]Config{
	Luxury: {
		Colors: Colors{
			Primary: "#c9a961", Secondary: "#f5f2ed", Accent: "#a98b5f", Muted: "#e8e4dd",
			Background: "#faf8f5", Foreground: "#1a1a1a", Card: "#ffffff", CardForeground: "#1a1a1a",
			Border: "#e8e4dd", Success: "#22c55e", Warning: "#f59e0b", Error: "#ef4444",
		},
		Typography: Typography{HeadingFont: "Playfair Display", BodyFont: "Inter Variable", MonoFont: "monospace", BaseFontSize: 16, LineHeight: 1.6},
		Style:      Style{BorderRadius: "small", ShadowIntensity: "medium", TransitionSpeed: "normal"},
	},
	Modern: {
		Colors: Colors{
			Primary: "#3b82f6", Secondary: "#f8fafc", Accent: "#8b5cf6", Muted: "#f1f5f9",
			Background: "#ffffff", Foreground: "#0f172a", Card: "#ffffff", CardForeground: "#0f172a",
			Border: "#e2e8f0", Success: "#22c55e", Warning: "#f59e0b", Error: "#ef4444",
		},
		Typography: Typography{HeadingFont: "Inter Variable", BodyFont: "Inter Variable", BaseFontSize: 16, LineHeight: 1.5},
		Style:      Style{BorderRadius: "medium", ShadowIntensity: "light", TransitionSpeed: "fast"},
	},
	Rustic: {
		Colors: Colors{
			Primary: "#92400e", Secondary: "#fef3c7", Accent: "#b45309", Muted: "#fde68a",
			Background: "#fffbeb", Foreground: "#451a03", Card: "#ffffff", CardForeground: "#451a03",
			Border: "#fde68a", Success: "#15803d", Warning: "#ca8a04", Error: "#dc2626",
		},
		Typography: Typography{HeadingFont: "Merriweather", BodyFont: "Source Sans Pro", BaseFontSize: 16, LineHeight: 1.7},
		Style:      Style{BorderRadius: "small", ShadowIntensity: "medium", TransitionSpeed: "slow"},
	},
	Coastal: {
		Colors: Colors{
			Primary: "#0891b2", Secondary: "#ecfeff", Accent: "#06b6d4", Muted: "#cffafe",
			Background: "#ffffff", Foreground: "#164e63", Card: "#ffffff", CardForeground: "#164e63",
			Border: "#a5f3fc", Success: "#059669", Warning: "#d97706", Error: "#e11d48",
		},
		Typography: Typography{HeadingFont: "Montserrat", BodyFont: "Open Sans", BaseFontSize: 16, LineHeight: 1.6},
		Style:      Style{BorderRadius: "large", ShadowIntensity: "light", TransitionSpeed: "normal"},
	},
	Minimal: {
		Colors: Colors{
			Primary: "#171717", Secondary: "#fafafa", Accent: "#525252", Muted: "#f5f5f5",
			Background: "#ffffff", Foreground: "#171717", Card: "#ffffff", CardForeground: "#171717",
			Border: "#e5e5e5", Success: "#16a34a", Warning: "#ea580c", Error: "#dc2626",
		},
		Typography: Typography{HeadingFont: "Inter Variable", BodyFont: "Inter Variable", BaseFontSize: 16, LineHeight: 1.5},
		Style:      Style{BorderRadius: "none", ShadowIntensity: "none", TransitionSpeed: "fast"},
	},
}

// BorderRadiusPx and TransitionSpeed are the pixel/millisecond scales used by components.
var (
	BorderRadiusPx = map[string]string{
		"none": "0px", "small": "4px", "medium": "8px", "large": "12px", "full": "9999px",
	}
	TransitionSpeed = map[string]string{
		"fast": "150ms", "normal": "300ms", "slow": "500ms",
	}
)

// Preset returns a copy of a built-in preset. Unknown names, including custom, yield luxury.
func Preset(name string) Config {
	p, ok := presets[name]
	if !ok {
		p = presets[Luxury]
	}
	p.Preset = name
	return p
}

// Known reports whether name is a built-in preset or custom.
func Known(name string) bool {
	_, ok := presets[name]
	return ok || name == Custom
}

// Resolve fills every field left unset in cfg from its preset.
// A custom preset is returned untouched.
func Resolve(cfg Config) Config {
	if cfg.Preset == Custom {
		return cfg
	}
	if cfg.Preset == "" {
		cfg.Preset = Luxury
	}
	if !Known(cfg.Preset) {
		log.Warn().Str("preset", cfg.Preset).Msg("unknown theme preset, using luxury defaults")
	}
	p := Preset(cfg.Preset)

	out := cfg
	for _, m := range []struct{ dst, src any }{
		{&out.Colors, p.Colors},
		{&out.Typography, p.Typography},
		{&out.Style, p.Style},
	} {
		if err := mergo.Merge(m.dst, m.src); err != nil {
			log.Error().Err(err).Str("preset", cfg.Preset).Msg("theme merge failed")
		}
	}
	return out
}

// Load reads a theme YAML file. A missing file means the luxury preset with no overrides.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", path).Msg("no theme file, using luxury preset")
		return Config{Preset: Luxury}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read theme %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return cfg, nil
}
