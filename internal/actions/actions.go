// Package actions provides the leaf actions a menu file can bind by name.
package actions

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/atomicstack/treemenu/internal/logging"
	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/atomicstack/treemenu/internal/prompt"
	"github.com/atomicstack/treemenu/internal/terminal"
	"github.com/atomicstack/treemenu/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// ErrUnknownKind is returned by Build for an unregistered action kind.
var ErrUnknownKind = errors.New("unknown action kind")

const maxSearchResults = 10

var (
	runCommandFn = runShell
	askFn        = prompt.Ask
)

// Spec describes a leaf action.
type Spec struct {
	// Kind selects the action: message, exec, rename, search, tree or quit.
	Kind    string
	Text    string
	Command string
	// Target is the tag of the sibling a rename applies to. Empty renames
	// the enclosing menu.
	Target string
}

// Builder turns specs into menu actions sharing one palette.
type Builder struct {
	palette *theme.Palette
	verbose bool
}

// Option customises a Builder.
type Option func(*Builder)

// WithVerbose echoes each exec command before its output.
func WithVerbose(verbose bool) Option {
	return func(b *Builder) { b.verbose = verbose }
}

// New returns a Builder drawing with p, or the default palette when p is nil.
func New(p *theme.Palette, opts ...Option) *Builder {
	if p == nil {
		p = theme.Default()
	}
	b := &Builder{palette: p}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type factory func(b *Builder, spec Spec) (menu.Action, error)

var registry = map[string]factory{
	"message": (*Builder).message,
	"exec":    (*Builder).execute,
	"rename":  (*Builder).rename,
	"search":  (*Builder).search,
	"tree":    (*Builder).tree,
	"quit":    (*Builder).quit,
}

// Kinds lists the registered action kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Build resolves spec into an action. An empty kind yields a nil action,
// which still fires the entry's hooks.
func (b *Builder) Build(spec Spec) (menu.Action, error) {
	kind := strings.ToLower(strings.TrimSpace(spec.Kind))
	if kind == "" {
		return nil, nil
	}
	build, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%q: %w", spec.Kind, ErrUnknownKind)
	}
	return build(b, spec)
}

func (b *Builder) message(spec Spec) (menu.Action, error) {
	text := spec.Text
	return func(ev menu.ActionEvent) {
		b.print(ev, b.palette.Info, text)
	}, nil
}

func (b *Builder) execute(spec Spec) (menu.Action, error) {
	command := strings.TrimSpace(spec.Command)
	if command == "" {
		return nil, fmt.Errorf("exec action requires a command")
	}
	return func(ev menu.ActionEvent) {
		dir := ev.Source.Directory()
		if b.verbose {
			b.print(ev, b.palette.Banner, "$ "+command)
		}
		out, err := runCommandFn(command)
		if text := strings.TrimRight(out, "\n"); text != "" {
			b.print(ev, b.palette.Info, text)
		}
		if err != nil {
			b.fail(ev, fmt.Errorf("%s: %w", command, err))
			return
		}
		events.Action.Success(dir, command)
	}, nil
}

func (b *Builder) rename(spec Spec) (menu.Action, error) {
	target := strings.TrimSpace(spec.Target)
	return func(ev menu.ActionEvent) {
		entry, err := renameTarget(ev.Source, target)
		if err != nil {
			b.fail(ev, err)
			return
		}
		if ev.Term == nil {
			return
		}
		old := entry.Caption()
		form := prompt.NewForm(
			fmt.Sprintf("Rename %s", old),
			prompt.WithInitial(old),
			prompt.WithValidator(func(v string) string {
				if v == "" {
					return "Caption required"
				}
				return ""
			}),
		)
		caption, err := askFn(ev.Term, b.palette, form)
		if errors.Is(err, prompt.ErrCanceled) {
			b.print(ev, b.palette.Banner, "Rename canceled")
			return
		}
		if err != nil {
			b.fail(ev, fmt.Errorf("rename %s: %w", old, err))
			return
		}
		entry.SetCaption(caption)
		info := fmt.Sprintf("Renamed %s to %s", old, caption)
		events.Action.Success(ev.Source.Directory(), info)
		b.print(ev, b.palette.Info, info)
	}, nil
}

func renameTarget(source menu.Entry, tag string) (menu.Entry, error) {
	parent := source.Parent()
	if parent == nil {
		return nil, fmt.Errorf("rename: %s is not attached to a menu", source.Caption())
	}
	if tag == "" {
		return parent, nil
	}
	return parent.ChildByTag(tag)
}

func (b *Builder) search(spec Spec) (menu.Action, error) {
	initial := spec.Text
	return func(ev menu.ActionEvent) {
		if ev.Term == nil || ev.Source.Parent() == nil {
			return
		}
		form := prompt.NewForm("Search", prompt.WithInitial(initial), prompt.WithPlaceholder("caption"))
		query, err := askFn(ev.Term, b.palette, form)
		if errors.Is(err, prompt.ErrCanceled) {
			return
		}
		if err != nil {
			b.fail(ev, fmt.Errorf("search: %w", err))
			return
		}
		matches := menu.Search(ev.Source.Parent().Root(), query)
		if len(matches) == 0 {
			b.print(ev, b.palette.Banner, fmt.Sprintf("No matches for %q", query))
			return
		}
		lines := make([]string, 0, maxSearchResults)
		for i, m := range matches {
			if i == maxSearchResults {
				break
			}
			lines = append(lines, m.Directory)
		}
		b.print(ev, b.palette.Info, lines...)
	}, nil
}

func (b *Builder) tree(spec Spec) (menu.Action, error) {
	return func(ev menu.ActionEvent) {
		parent := ev.Source.Parent()
		if parent == nil {
			return
		}
		b.print(ev, b.palette.Info, menu.Listing(parent.Root())...)
	}, nil
}

func (b *Builder) quit(spec Spec) (menu.Action, error) {
	return func(ev menu.ActionEvent) {
		if parent := ev.Source.Parent(); parent != nil {
			parent.Stop()
		}
	}, nil
}

// print writes each line below the cursor in color, leaving the cursor on
// the following row.
func (b *Builder) print(ev menu.ActionEvent, color terminal.Color, lines ...string) {
	if ev.Term == nil {
		return
	}
	width := ev.Term.Width() - 1
	for _, text := range lines {
		for _, line := range strings.Split(text, "\n") {
			ev.Term.SetForeground(color)
			ev.Term.Write(ansi.Truncate(line, max(width, 0), ""))
			ev.Term.ResetColor()
			ev.Term.Write("\n")
		}
	}
}

func (b *Builder) fail(ev menu.ActionEvent, err error) {
	events.Action.Error(ev.Source.Directory(), err)
	logging.Error(err)
	b.print(ev, b.palette.Error, err.Error())
}

func runShell(command string) (string, error) {
	out, err := exec.Command("sh", "-c", command).CombinedOutput() //nolint:gosec
	return string(out), err
}
