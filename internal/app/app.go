package app

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/treemenu/internal/actions"
	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/atomicstack/treemenu/internal/menufile"
	"github.com/atomicstack/treemenu/internal/terminal"
	"github.com/atomicstack/treemenu/internal/theme"
)

const builtinSource = "builtin"

// Config describes user-provided application options.
type Config struct {
	MenuPath     string
	QuitKey      rune
	DirectoryKey rune
	// Script replays these key names on an off-screen terminal instead of
	// opening the console.
	Script     []string
	Width      int
	Monochrome bool
	Verbose    bool
}

// console is a Surface that owns the real terminal until closed.
type console interface {
	terminal.Surface
	Close() error
}

var (
	openConsoleFn           = func() (console, error) { return terminal.OpenConsole() }
	scriptOutput  io.Writer = os.Stdout
)

// Run loads the menu tree and drives it until the user quits. The console
// is restored on every exit path, panics included.
func Run(cfg Config) (err error) {
	file, source, err := loadTree(cfg.MenuPath)
	if err != nil {
		return err
	}
	if len(cfg.Script) > 0 {
		return runScript(cfg, file, source, scriptOutput)
	}
	console, err := openConsoleFn()
	if err != nil {
		return fmt.Errorf("open console: %w", err)
	}
	defer func() {
		if closeErr := console.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("restore terminal: %w", closeErr)
		}
	}()
	_, err = runMenu(console, cfg, file, source)
	return err
}

func loadTree(path string) (*menufile.File, string, error) {
	if path == "" {
		return menufile.Default(), builtinSource, nil
	}
	file, err := menufile.Load(path)
	if err != nil {
		return nil, path, err
	}
	return file, path, nil
}

func runMenu(surface terminal.Surface, cfg Config, file *menufile.File, source string) (*menu.Menu, error) {
	palette := theme.Default()
	if cfg.Monochrome {
		palette = theme.Monochrome()
	}
	m := menu.New(surface, file.Title,
		menu.WithKeyMap(menu.KeyMap{Quit: cfg.QuitKey, Directory: cfg.DirectoryKey}),
		menu.WithPalette(palette),
	)
	count, err := file.Build(m.Node, actions.New(palette, actions.WithVerbose(cfg.Verbose)))
	if err != nil {
		return m, fmt.Errorf("build menu: %w", err)
	}
	events.App.TreeLoaded(source, count)
	return m, m.Run()
}

// runScript replays the configured keys on a virtual screen and prints what
// is left on it once the keys run out or the menu quits.
func runScript(cfg Config, file *menufile.File, source string, out io.Writer) error {
	keys := make([]terminal.KeyEvent, 0, len(cfg.Script))
	for _, name := range cfg.Script {
		ev, err := terminal.ParseKey(name)
		if err != nil {
			return fmt.Errorf("script: %w", err)
		}
		keys = append(keys, ev)
	}
	screen := terminal.NewVirtual(cfg.Width, keys...)
	if _, err := runMenu(screen, cfg, file, source); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, screen.Screen())
	return err
}
