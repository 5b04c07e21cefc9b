package config

import (
	"errors"
	"flag"
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.QuitKey != 'c' || cfg.App.DirectoryKey != 'd' {
		t.Fatalf("unexpected default keys %q %q", cfg.App.QuitKey, cfg.App.DirectoryKey)
	}
	if cfg.App.MenuPath != "" || len(cfg.App.Script) != 0 {
		t.Fatalf("expected no menu file and no script, got %+v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"TREEMENU_MENU=/env/menu.toml",
		"TREEMENU_QUIT_KEY=x",
		"TREEMENU_TRACE=true",
		"TREEMENU_WIDTH=100",
		"broken",
	}
	cfg, err := LoadArgs([]string{"-menu", "/flag/menu.toml", "-script", "down, enter,,esc"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.MenuPath != "/flag/menu.toml" {
		t.Fatalf("expected flag to win, got %q", cfg.App.MenuPath)
	}
	if cfg.App.QuitKey != 'x' {
		t.Fatalf("expected quit key from environment, got %q", cfg.App.QuitKey)
	}
	if !cfg.Logging.Trace || cfg.App.Width != 100 {
		t.Fatalf("expected trace and width from environment, got %+v %+v", cfg.Logging, cfg.App)
	}
	if got := strings.Join(cfg.App.Script, "|"); got != "down|enter|esc" {
		t.Fatalf("unexpected script %q", got)
	}
	if cfg.Flags["menu"] != "/flag/menu.toml" {
		t.Fatalf("expected flags map to record menu, got %v", cfg.Flags)
	}
}

func TestLoadArgsRejectsBadKeys(t *testing.T) {
	for _, args := range [][]string{
		{"-quit-key", "ab"},
		{"-quit-key", "1"},
		{"-dir-key", "é"},
		{"-quit-key", "m"},
		{"-quit-key", "H"},
		{"-dir-key", "i"},
		{"-dir-key", "j"},
		{"-width", "-3"},
		{"-unknown"},
	} {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestDirKeyCanBeDisabled(t *testing.T) {
	cfg, err := LoadArgs([]string{"-dir-key", ""}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DirectoryKey != 0 {
		t.Fatalf("expected directory key disabled, got %q", cfg.App.DirectoryKey)
	}
}

func TestValidateRejectsClashingKeys(t *testing.T) {
	cfg, err := LoadArgs([]string{"-quit-key", "Q", "-dir-key", "q"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected clash to be rejected")
	}
	cfg, err = LoadArgs([]string{"-quit-key", ""}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing quit key to be rejected")
	}
}

func TestHelpCarriesUsage(t *testing.T) {
	_, err := LoadArgs([]string{"-h"}, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) || !strings.Contains(usageErr.Usage, "-quit-key") {
		t.Fatalf("expected usage text listing flags, got %v", err)
	}
}
