package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Hints != DefaultHints {
		t.Errorf("Hints: got %q, want %q", cfg.Hints, DefaultHints)
	}
	if cfg.MotionType != "s" {
		t.Errorf("MotionType: got %q, want %q", cfg.MotionType, "s")
	}
	if cfg.VerticalBorder != "│" {
		t.Errorf("VerticalBorder: got %q, want %q", cfg.VerticalBorder, "│")
	}
	if cfg.HorizontalBorder != "─" {
		t.Errorf("HorizontalBorder: got %q, want %q", cfg.HorizontalBorder, "─")
	}
	if cfg.CaseSensitive || cfg.Smartsign || cfg.AltScreen || cfg.Select {
		t.Error("boolean options should default to false")
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("TMUX_EASYJUMP_HINTS", "abc")
	t.Setenv("TMUX_EASYJUMP_SMARTSIGN", "true")
	t.Setenv("TMUX_EASYJUMP_MOTION_TYPE", "s2")
	t.Setenv("TMUX_EASYJUMP_CASE_SENSITIVE", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	cfg := Defaults()
	mergeEnv(cfg)

	if cfg.Hints != "abc" {
		t.Errorf("Hints: got %q, want %q", cfg.Hints, "abc")
	}
	if !cfg.Smartsign {
		t.Error("Smartsign: got false, want true")
	}
	if cfg.MotionType != "s2" {
		t.Errorf("MotionType: got %q, want %q", cfg.MotionType, "s2")
	}
	if !cfg.CaseSensitive {
		t.Error("CaseSensitive: got false, want true")
	}
	if cfg.OTELEndpoint != "http://localhost:4318" {
		t.Errorf("OTELEndpoint: got %q, want %q", cfg.OTELEndpoint, "http://localhost:4318")
	}
}

func TestMergeEnv_FalseOverridesFileValue(t *testing.T) {
	t.Setenv("TMUX_EASYJUMP_SMARTSIGN", "false")

	cfg := Defaults()
	cfg.Smartsign = true // as if set by the config file
	mergeEnv(cfg)

	if cfg.Smartsign {
		t.Error("Smartsign: env false should override file true")
	}
}

func TestValidate_EmptyAlphabet(t *testing.T) {
	cfg := Defaults()
	cfg.Hints = ""
	validate(cfg)

	if cfg.Hints != DefaultHints {
		t.Errorf("Hints: got %q, want default", cfg.Hints)
	}
	if len(cfg.Warnings) == 0 {
		t.Error("expected a warning for empty alphabet")
	}
}

func TestValidate_DuplicateAlphabet(t *testing.T) {
	cfg := Defaults()
	cfg.Hints = "asda"
	validate(cfg)

	if cfg.Hints != DefaultHints {
		t.Errorf("Hints: got %q, want default", cfg.Hints)
	}
	if len(cfg.Warnings) == 0 {
		t.Error("expected a warning for duplicate alphabet character")
	}
}

func TestValidate_UnknownMotionType(t *testing.T) {
	cfg := Defaults()
	cfg.MotionType = "w"
	validate(cfg)

	if cfg.MotionType != "s" {
		t.Errorf("MotionType: got %q, want %q", cfg.MotionType, "s")
	}
	if len(cfg.Warnings) == 0 {
		t.Error("expected a warning for unknown motion type")
	}
}

func TestValidate_Clean(t *testing.T) {
	cfg := Defaults()
	cfg.MotionType = "s2"
	validate(cfg)

	if len(cfg.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", cfg.Warnings)
	}
}

func TestPatternLength(t *testing.T) {
	cfg := Defaults()
	if got := cfg.PatternLength(); got != 1 {
		t.Errorf("motion s: got %d, want 1", got)
	}
	cfg.MotionType = "s2"
	if got := cfg.PatternLength(); got != 2 {
		t.Errorf("motion s2: got %d, want 2", got)
	}
}

func TestShiftTable(t *testing.T) {
	cfg := Defaults()
	if cfg.ShiftTable() != nil {
		t.Error("no override: want nil table")
	}

	cfg.SmartsignTable = map[string]string{
		"3":  "£",  // UK layout override
		"ab": "c",  // invalid key, dropped
		"4":  "$$", // invalid value, dropped
	}
	table := cfg.ShiftTable()
	if len(table) != 1 {
		t.Fatalf("got %d entries, want 1", len(table))
	}
	if table['3'] != '£' {
		t.Errorf("table['3']: got %q, want %q", table['3'], '£')
	}
}

func TestMergeFile(t *testing.T) {
	cfg := Defaults()
	mergeFile(cfg, &Config{
		Hints:      "qwerty",
		Smartsign:  true,
		MotionType: "s2",
	})

	if cfg.Hints != "qwerty" {
		t.Errorf("Hints: got %q, want %q", cfg.Hints, "qwerty")
	}
	if !cfg.Smartsign {
		t.Error("Smartsign: got false, want true")
	}
	if cfg.MotionType != "s2" {
		t.Errorf("MotionType: got %q, want %q", cfg.MotionType, "s2")
	}
	// Untouched fields keep their defaults.
	if cfg.VerticalBorder != "│" {
		t.Errorf("VerticalBorder: got %q, want %q", cfg.VerticalBorder, "│")
	}
}
