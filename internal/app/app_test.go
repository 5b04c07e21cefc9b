package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/treemenu/internal/logging"
	"github.com/atomicstack/treemenu/internal/terminal"
	"github.com/atomicstack/treemenu/internal/testutil"
)

type closingVirtual struct {
	*terminal.Virtual
	closed   bool
	closeErr error
	// panicOnRead makes ReadKey panic once the queued keys are spent.
	panicOnRead bool
}

func (c *closingVirtual) Close() error {
	c.closed = true
	return c.closeErr
}

func (c *closingVirtual) ReadKey() (terminal.KeyEvent, error) {
	if c.panicOnRead && c.Pending() == 0 {
		panic("read exploded")
	}
	return c.Virtual.ReadKey()
}

func useConsole(t *testing.T, fake *closingVirtual) {
	t.Helper()
	orig := openConsoleFn
	openConsoleFn = func() (console, error) { return fake, nil }
	t.Cleanup(func() { openConsoleFn = orig })
}

func setup(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "treemenu.log"))
}

func TestRunScriptPrintsFinalScreen(t *testing.T) {
	setup(t)
	var out strings.Builder
	orig := scriptOutput
	scriptOutput = &out
	t.Cleanup(func() { scriptOutput = orig })

	cfg := Config{QuitKey: 'c', DirectoryKey: 'd', Script: []string{"down", "enter", "down"}, Width: 60}
	if err := Run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	screen := out.String()
	if !strings.Contains(screen, "Current directory: Main/Settings/>") {
		t.Fatalf("expected Settings breadcrumb, got:\n%s", screen)
	}
	if !strings.Contains(screen, "> (#1) - Volume") {
		t.Fatalf("expected Volume selected, got:\n%s", screen)
	}
}

func TestRunScriptMatchesGolden(t *testing.T) {
	setup(t)
	var out strings.Builder
	orig := scriptOutput
	scriptOutput = &out
	t.Cleanup(func() { scriptOutput = orig })

	cfg := Config{QuitKey: 'c', DirectoryKey: 'd', Script: []string{"down"}, Width: 100}
	if err := Run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	testutil.AssertGolden(t, "script_default.golden", out.String())
}

func TestRunScriptRejectsBadKeys(t *testing.T) {
	setup(t)
	cfg := Config{QuitKey: 'c', Script: []string{"down", "warp"}}
	if err := Run(cfg); err == nil || !strings.Contains(err.Error(), "script") {
		t.Fatalf("expected script error, got %v", err)
	}
}

func TestRunLoadsMenuFile(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "menu.toml")
	data := "title = \"Ops\"\n[[item]]\ncaption = \"Deploy\"\naction = \"message\"\ntext = \"shipping\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out strings.Builder
	orig := scriptOutput
	scriptOutput = &out
	t.Cleanup(func() { scriptOutput = orig })

	cfg := Config{MenuPath: path, QuitKey: 'c', Script: []string{"down"}}
	if err := Run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Current directory: Ops/>") || !strings.Contains(out.String(), "Deploy") {
		t.Fatalf("expected menu file tree, got:\n%s", out.String())
	}
}

func TestRunReportsMissingMenuFile(t *testing.T) {
	setup(t)
	cfg := Config{MenuPath: filepath.Join(t.TempDir(), "nope.toml"), QuitKey: 'c', Script: []string{"down"}}
	if err := Run(cfg); err == nil {
		t.Fatalf("expected error for missing menu file")
	}
}

func TestRunUsesConsoleAndClosesIt(t *testing.T) {
	setup(t)
	keys := make([]terminal.KeyEvent, 0, 2)
	for _, name := range []string{"down", "ctrl+c"} {
		ev, _ := terminal.ParseKey(name)
		keys = append(keys, ev)
	}
	fake := &closingVirtual{Virtual: terminal.NewVirtual(80, keys...)}
	useConsole(t, fake)

	if err := Run(Config{QuitKey: 'c', DirectoryKey: 'd'}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !fake.closed {
		t.Fatalf("expected console closed")
	}
	if fake.Pending() != 0 {
		t.Fatalf("expected every key consumed, %d left", fake.Pending())
	}
}

func TestRunClosesConsoleWhenMenuPanics(t *testing.T) {
	setup(t)
	fake := &closingVirtual{Virtual: terminal.NewVirtual(80), panicOnRead: true}
	useConsole(t, fake)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = Run(Config{QuitKey: 'c'})
	}()
	if !fake.closed {
		t.Fatalf("expected console closed after panic")
	}
}

func TestRunReportsRestoreFailure(t *testing.T) {
	setup(t)
	quit, _ := terminal.ParseKey("ctrl+c")
	restore := errors.New("tcsetattr failed")
	fake := &closingVirtual{Virtual: terminal.NewVirtual(80, quit), closeErr: restore}
	useConsole(t, fake)

	if err := Run(Config{QuitKey: 'c'}); !errors.Is(err, restore) {
		t.Fatalf("expected restore error, got %v", err)
	}
}

func TestRunSurfacesConsoleErrors(t *testing.T) {
	setup(t)
	orig := openConsoleFn
	openConsoleFn = func() (console, error) { return nil, terminal.ErrNotTerminal }
	t.Cleanup(func() { openConsoleFn = orig })

	if err := Run(Config{QuitKey: 'c'}); !errors.Is(err, terminal.ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}
