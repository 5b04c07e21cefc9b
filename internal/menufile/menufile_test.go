package menufile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/treemenu/internal/actions"
	"github.com/atomicstack/treemenu/internal/menu"
)

const sample = `
title = "Home"
args = ["profile", 2]

[[item]]
caption = "Settings"
tag = "cfg"

  [[item.item]]
  caption = "Volume"
  action = "message"
  text = "Volume set"

  [[item.item]]
  caption = "Empty"
  menu = true

[[item]]
caption = "Exit"
action = "quit"
`

func TestParseAndBuild(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Title != "Home" {
		t.Fatalf("unexpected title %q", f.Title)
	}
	root := menu.NewNode(f.Title)
	count, err := f.Build(root, actions.New(nil))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 entries, got %d", count)
	}
	if args := root.Args(); len(args) != 2 || args[0] != "profile" {
		t.Fatalf("unexpected root args %v", args)
	}
	settings, err := root.ChildByTag("cfg")
	if err != nil {
		t.Fatalf("lookup by tag: %v", err)
	}
	node, ok := settings.(*menu.Node)
	if !ok || node.Len() != 2 {
		t.Fatalf("expected Settings menu with 2 entries, got %T", settings)
	}
	volume, _ := node.Child(0)
	if volume.Directory() != "Home/Settings/Volume.item" {
		t.Fatalf("unexpected directory %q", volume.Directory())
	}
	empty, _ := node.Child(1)
	if _, ok := empty.(*menu.Node); !ok {
		t.Fatalf("expected menu = true to build a sub-menu")
	}
	if _, err := node.ChildByTag("Empty"); err != nil {
		t.Fatalf("expected sub-menu tagged with caption: %v", err)
	}
}

func TestParseDefaultsTitle(t *testing.T) {
	f, err := Parse([]byte(`[[item]]
caption = "Only"`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", f.Title)
	}
}

func TestParseRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "[[item]]\ncaption = \"a\"\nicon = \"x\"",
		"missing caption": "[[item]]\naction = \"quit\"",
		"menu action":     "[[item]]\ncaption = \"a\"\naction = \"quit\"\nmenu = true",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if _, err := Parse([]byte("title = ")); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestBuildRejectsUnknownAction(t *testing.T) {
	f, err := Parse([]byte("[[item]]\ncaption = \"a\"\naction = \"fly\""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = f.Build(menu.NewNode(f.Title), actions.New(nil))
	if !errors.Is(err, actions.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Items) != 2 {
		t.Fatalf("expected 2 top-level entries, got %d", len(f.Items))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultTreeBuilds(t *testing.T) {
	root := menu.NewNode(DefaultTitle)
	count, err := Default().Build(root, actions.New(nil))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if root.Len() != 3 || count < 10 {
		t.Fatalf("unexpected default tree: %d top-level, %d total", root.Len(), count)
	}
}
