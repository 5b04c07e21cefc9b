package menu

import "github.com/atomicstack/treemenu/internal/terminal"

// Item is a leaf entry bound to an optional action.
type Item struct {
	entry
	action Action
}

// NewItem creates a detached leaf.
func NewItem(caption string, action Action) *Item {
	return &Item{entry: entry{caption: caption}, action: action}
}

// SetAction replaces the action run on dispatch.
func (i *Item) SetAction(action Action) { i.action = action }

// IsValid implements Entry.
func (i *Item) IsValid(siblings []Entry) bool { return i.valid(i, siblings) }

// Directory implements Entry. Leaves carry LeafSuffix.
func (i *Item) Directory() string { return i.directory() + LeafSuffix }

// PerformAction implements Entry. The hooks fire even when no action is set.
func (i *Item) PerformAction(input terminal.KeyEvent, args ...any) {
	i.perform(ActionEvent{Input: input, Args: args, lines: -1})
}

func (i *Item) perform(ev ActionEvent) {
	ev.Source = i
	if ev.Term == nil {
		ev.Term = i.surface()
	}
	i.fire(ev, i.action)
}
