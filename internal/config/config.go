// Package config loads tmux-easyjump configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (TMUX_EASYJUMP_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .tmux-easyjump.yaml in current directory
//  2. ~/.config/tmux-easyjump/config.yaml
//
// Configuration problems are never fatal: malformed values fall back to the
// documented defaults and the warning surfaces in the debug log.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHints is the default hint alphabet, home row first.
const DefaultHints = "asdghklqwertyuiopzxcvbnmfj;"

// Config holds all tmux-easyjump settings. It is built once at startup and
// treated as immutable for the rest of the run.
type Config struct {
	// Hints is the hint alphabet. Characters are consumed in order, so the
	// easiest keys should come first.
	Hints string `yaml:"hints"`

	// CaseSensitive disables case folding during matching.
	CaseSensitive bool `yaml:"case_sensitive"`

	// Smartsign also matches each typed character's shifted symbol.
	Smartsign bool `yaml:"smartsign"`
	// SmartsignTable overrides the built-in US-QWERTY shift map. Keys and
	// values must be single characters.
	SmartsignTable map[string]string `yaml:"smartsign_table"`

	// MotionType selects the search length: "s" = 1 character, "s2" = 2.
	MotionType string `yaml:"motion_type"`

	// VerticalBorder and HorizontalBorder are the glyphs drawn between panes.
	VerticalBorder   string `yaml:"vertical_border"`
	HorizontalBorder string `yaml:"horizontal_border"`

	// AltScreen selects the full-screen renderer backend instead of direct
	// escape sequences.
	AltScreen bool `yaml:"alt_screen"`

	// Select starts a copy-mode selection at the target after jumping.
	Select bool `yaml:"select"`

	// Debug and Perf enable log output; with both off no log I/O happens.
	Debug bool `yaml:"debug"`
	Perf  bool `yaml:"perf"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`

	// Warnings collects non-fatal fallback notices produced while loading.
	Warnings []string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Hints:            DefaultHints,
		MotionType:       "s",
		VerticalBorder:   "│",
		HorizontalBorder: "─",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			// A broken config file falls back to defaults rather than
			// blocking the jump; the key binding must keep working.
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("ignoring config file %s: %v", path, err))
		} else {
			cfg.ConfigFile = path
			mergeFile(cfg, &fileCfg)
		}
	}

	mergeEnv(cfg)
	validate(cfg)

	return cfg, nil
}

// AlphabetRunes returns the hint alphabet as runes.
func (c *Config) AlphabetRunes() []rune {
	return []rune(c.Hints)
}

// PatternLength returns how many characters the motion type reads.
func (c *Config) PatternLength() int {
	if c.MotionType == "s2" {
		return 2
	}
	return 1
}

// ShiftTable converts SmartsignTable into a rune map, or nil when no
// override is configured. Entries that are not single characters are
// dropped with a warning already recorded by validate.
func (c *Config) ShiftTable() map[rune]rune {
	if len(c.SmartsignTable) == 0 {
		return nil
	}
	table := make(map[rune]rune, len(c.SmartsignTable))
	for k, v := range c.SmartsignTable {
		kr := []rune(k)
		vr := []rune(v)
		if len(kr) != 1 || len(vr) != 1 {
			continue
		}
		table[kr[0]] = vr[0]
	}
	return table
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".tmux-easyjump.yaml"); err == nil {
		return ".tmux-easyjump.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "tmux-easyjump", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Hints != "" {
		cfg.Hints = file.Hints
	}
	if file.CaseSensitive {
		cfg.CaseSensitive = true
	}
	if file.Smartsign {
		cfg.Smartsign = true
	}
	if len(file.SmartsignTable) > 0 {
		cfg.SmartsignTable = file.SmartsignTable
	}
	if file.MotionType != "" {
		cfg.MotionType = file.MotionType
	}
	if file.VerticalBorder != "" {
		cfg.VerticalBorder = file.VerticalBorder
	}
	if file.HorizontalBorder != "" {
		cfg.HorizontalBorder = file.HorizontalBorder
	}
	if file.AltScreen {
		cfg.AltScreen = true
	}
	if file.Select {
		cfg.Select = true
	}
	if file.Debug {
		cfg.Debug = true
	}
	if file.Perf {
		cfg.Perf = true
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("TMUX_EASYJUMP_HINTS"); v != "" {
		cfg.Hints = v
	}
	if v, ok := envBool("TMUX_EASYJUMP_CASE_SENSITIVE"); ok {
		cfg.CaseSensitive = v
	}
	if v, ok := envBool("TMUX_EASYJUMP_SMARTSIGN"); ok {
		cfg.Smartsign = v
	}
	if v := os.Getenv("TMUX_EASYJUMP_MOTION_TYPE"); v != "" {
		cfg.MotionType = v
	}
	if v := os.Getenv("TMUX_EASYJUMP_VERTICAL_BORDER"); v != "" {
		cfg.VerticalBorder = v
	}
	if v := os.Getenv("TMUX_EASYJUMP_HORIZONTAL_BORDER"); v != "" {
		cfg.HorizontalBorder = v
	}
	if v, ok := envBool("TMUX_EASYJUMP_ALT_SCREEN"); ok {
		cfg.AltScreen = v
	}
	if v, ok := envBool("TMUX_EASYJUMP_SELECT"); ok {
		cfg.Select = v
	}
	if v, ok := envBool("TMUX_EASYJUMP_DEBUG"); ok {
		cfg.Debug = v
	}
	if v, ok := envBool("TMUX_EASYJUMP_PERF"); ok {
		cfg.Perf = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// validate repairs invalid settings in place, recording a warning for each.
func validate(cfg *Config) {
	if len(cfg.AlphabetRunes()) == 0 {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("empty hint alphabet, using default %q", DefaultHints))
		cfg.Hints = DefaultHints
	}
	if dup := firstDuplicate(cfg.AlphabetRunes()); dup != 0 {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("hint alphabet repeats %q, using default %q", dup, DefaultHints))
		cfg.Hints = DefaultHints
	}
	if cfg.MotionType != "s" && cfg.MotionType != "s2" {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("unknown motion type %q, using \"s\"", cfg.MotionType))
		cfg.MotionType = "s"
	}
	for k, v := range cfg.SmartsignTable {
		if len([]rune(k)) != 1 || len([]rune(v)) != 1 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("smartsign table entry %q: %q is not a single-character pair, skipped", k, v))
		}
	}
}

func firstDuplicate(rs []rune) rune {
	seen := make(map[rune]bool, len(rs))
	for _, r := range rs {
		if seen[r] {
			return r
		}
		seen[r] = true
	}
	return 0
}

func envBool(key string) (value, ok bool) {
	switch os.Getenv(key) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}
