// Package menufile loads menu trees from TOML.
//
// A file names the root caption and lists entries as arrays of tables:
//
//	title = "Main"
//
//	[[item]]
//	caption = "Settings"
//
//	  [[item.item]]
//	  caption = "Volume"
//	  action = "message"
//	  text = "Volume set to 11"
//
// An entry with nested items, or with menu = true, becomes a sub-menu whose
// tag defaults to its caption. Anything else is a leaf bound to the named
// action.
package menufile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/treemenu/internal/actions"
	"github.com/atomicstack/treemenu/internal/menu"
)

// DefaultTitle is used when a file omits title.
const DefaultTitle = "Main"

// ErrInvalid wraps every structural problem found in a menu file.
var ErrInvalid = errors.New("invalid menu file")

// File is the decoded form of a menu file.
type File struct {
	Title string  `toml:"title"`
	Args  []any   `toml:"args"`
	Items []Entry `toml:"item"`
}

// Entry is one item or sub-menu.
type Entry struct {
	Caption string  `toml:"caption"`
	Tag     string  `toml:"tag"`
	Menu    bool    `toml:"menu"`
	Action  string  `toml:"action"`
	Text    string  `toml:"text"`
	Command string  `toml:"command"`
	Target  string  `toml:"target"`
	Args    []any   `toml:"args"`
	Items   []Entry `toml:"item"`
}

// IsMenu reports whether e describes a sub-menu.
func (e Entry) IsMenu() bool {
	return e.Menu || len(e.Items) > 0
}

// Load reads and parses path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes TOML data and checks its structure. Unknown keys are
// rejected so typos do not silently drop entries.
func Parse(data []byte) (*File, error) {
	var f File
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalid)
	}
	if strings.TrimSpace(f.Title) == "" {
		f.Title = DefaultTitle
	}
	if err := validate(f.Items, f.Title); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(entries []Entry, dir string) error {
	for i, e := range entries {
		caption := strings.TrimSpace(e.Caption)
		if caption == "" {
			return fmt.Errorf("%s: entry %d has no caption: %w", dir, i+1, ErrInvalid)
		}
		path := dir + menu.PathSeparator + caption
		if e.IsMenu() {
			if e.Action != "" {
				return fmt.Errorf("%s: a menu cannot have an action: %w", path, ErrInvalid)
			}
			if err := validate(e.Items, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build adds f's entries to root, binding leaf actions through b. It
// returns the number of entries added below root.
func (f *File) Build(root *menu.Node, b *actions.Builder) (int, error) {
	root.SetArgs(f.Args...)
	return build(root, f.Items, b)
}

func build(parent *menu.Node, entries []Entry, b *actions.Builder) (int, error) {
	count := 0
	for _, e := range entries {
		caption := strings.TrimSpace(e.Caption)
		var entry menu.Entry
		if e.IsMenu() {
			node := menu.NewNode(caption)
			node.SetTag(caption)
			node.SetArgs(e.Args...)
			n, err := build(node, e.Items, b)
			if err != nil {
				return count, err
			}
			count += n
			entry = node
		} else {
			action, err := b.Build(actions.Spec{
				Kind:    e.Action,
				Text:    e.Text,
				Command: e.Command,
				Target:  e.Target,
			})
			if err != nil {
				return count, fmt.Errorf("%s%s%s: %w", parent.Directory(), menu.PathSeparator, caption, err)
			}
			entry = menu.NewItem(caption, action)
		}
		if e.Tag != "" {
			entry.SetTag(e.Tag)
		}
		if !parent.AddChild(entry) {
			return count, fmt.Errorf("%s: rejected %q: %w", parent.Directory(), caption, ErrInvalid)
		}
		count++
	}
	return count, nil
}

// Default is the tree shown when no menu file is given.
func Default() *File {
	return &File{
		Title: DefaultTitle,
		Items: []Entry{
			{
				Caption: "Settings",
				Items: []Entry{
					{Caption: "Volume", Action: "message", Text: "Volume set to 11"},
					{Caption: "Brightness", Action: "message", Text: "Brightness set to 70%"},
					{Caption: "Audio", Items: []Entry{
						{Caption: "Mute", Action: "message", Text: "Muted"},
						{Caption: "Unmute", Action: "message", Text: "Unmuted"},
					}},
					{Caption: "Rename this menu", Action: "rename"},
				},
			},
			{
				Caption: "Tools",
				Items: []Entry{
					{Caption: "Search", Action: "search"},
					{Caption: "Show tree", Action: "tree"},
					{Caption: "Date", Action: "exec", Command: "date"},
				},
			},
			{Caption: "Exit", Action: "quit"},
		},
	}
}
