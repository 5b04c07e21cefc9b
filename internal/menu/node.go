package menu

import (
	"fmt"

	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/terminal"
)

// Node is a sub-menu: an entry holding an ordered list of children.
type Node struct {
	entry
	children []Entry
	selected int
	args     []any

	// lastActionEndRow is the cursor row left behind by the last dispatched
	// action, or -1 when nothing needs erasing.
	lastActionEndRow int
}

// NewNode creates a detached sub-menu. Children failing validation are
// dropped.
func NewNode(caption string, children ...Entry) *Node {
	n := &Node{entry: entry{caption: caption}, selected: unselected, lastActionEndRow: -1}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

// IsValid implements Entry.
func (n *Node) IsValid(siblings []Entry) bool { return n.valid(n, siblings) }

// Directory implements Entry.
func (n *Node) Directory() string { return n.directory() }

// Len reports the number of children.
func (n *Node) Len() int { return len(n.children) }

// Children returns a copy of the child list.
func (n *Node) Children() []Entry {
	out := make([]Entry, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the child at index.
func (n *Node) Child(index int) (Entry, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("%s: index %d of %d: %w", n.directory(), index, len(n.children), ErrNotFound)
	}
	return n.children[index], nil
}

// ChildByTag returns the first child whose tag equals tag.
func (n *Node) ChildByTag(tag any) (Entry, error) {
	if idx := n.indexOfTag(tag); idx >= 0 {
		return n.children[idx], nil
	}
	return nil, fmt.Errorf("%s: tag %v: %w", n.directory(), tag, ErrNotFound)
}

// SetChild replaces the child at index.
func (n *Node) SetChild(index int, child Entry) error {
	if index < 0 || index >= len(n.children) {
		return fmt.Errorf("%s: index %d of %d: %w", n.directory(), index, len(n.children), ErrNotFound)
	}
	return n.replace(index, child)
}

// SetChildByTag replaces the first child whose tag equals tag.
func (n *Node) SetChildByTag(tag any, child Entry) error {
	idx := n.indexOfTag(tag)
	if idx < 0 {
		return fmt.Errorf("%s: tag %v: %w", n.directory(), tag, ErrNotFound)
	}
	return n.replace(idx, child)
}

func (n *Node) replace(index int, child Entry) error {
	siblings := make([]Entry, 0, len(n.children)-1)
	siblings = append(siblings, n.children[:index]...)
	siblings = append(siblings, n.children[index+1:]...)
	if !n.acceptable(child, siblings) {
		return fmt.Errorf("%s: replacing index %d: %w", n.directory(), index, ErrRejected)
	}
	old := n.children[index]
	n.children[index] = child
	n.attach(child)
	if old != child {
		n.detachIfGone(old)
	}
	return nil
}

func (n *Node) indexOfTag(tag any) int {
	for i, child := range n.children {
		if sameTag(child.Tag(), tag) {
			return i
		}
	}
	return -1
}

// AddChild appends child and makes n its parent. It reports false when child
// is nil, would create a cycle, or fails its own IsValid check.
func (n *Node) AddChild(child Entry) bool {
	if !n.acceptable(child, n.children) {
		caption := "<nil>"
		if !isNil(child) {
			caption = child.Caption()
		}
		events.Menu.Rejected(n.directory(), caption)
		return false
	}
	n.attach(child)
	n.children = append(n.children, child)
	return true
}

// AddItem appends a new leaf with the given caption, action and tag.
func (n *Node) AddItem(caption string, action Action, tag any) bool {
	item := NewItem(caption, action)
	item.SetTag(tag)
	return n.AddChild(item)
}

// AddMenu appends a new, empty sub-menu tagged with its caption.
func (n *Node) AddMenu(caption string) (*Node, bool) {
	child := NewNode(caption)
	child.SetTag(caption)
	if !n.AddChild(child) {
		return nil, false
	}
	return child, true
}

// RemoveChild removes the first occurrence of child. The selection keeps
// pointing at the same entry when possible and is clamped to the shorter
// list otherwise.
func (n *Node) RemoveChild(child Entry) bool {
	if isNil(child) {
		return false
	}
	idx := -1
	for i, c := range n.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	if idx < n.selected {
		n.selected--
	}
	if n.selected >= len(n.children) {
		n.selected = len(n.children) - 1
	}
	n.detachIfGone(child)
	return true
}

// Clear removes every child and drops the selection.
func (n *Node) Clear() {
	old := n.children
	n.children = nil
	n.selected = unselected
	for _, child := range old {
		n.detachIfGone(child)
	}
}

// SelectedIndex is the selected position, or -1 when nothing is selected.
func (n *Node) SelectedIndex() int { return n.selected }

// SelectedItem returns the selected child. The second result is false when
// nothing is selected.
func (n *Node) SelectedItem() (Entry, bool) {
	if n.selected < 0 || n.selected >= len(n.children) {
		return nil, false
	}
	return n.children[n.selected], true
}

// Select moves the selection to index; -1 clears it.
func (n *Node) Select(index int) error {
	if index < unselected || index >= len(n.children) {
		return fmt.Errorf("%s: select %d of %d: %w", n.directory(), index, len(n.children), ErrNotFound)
	}
	n.selected = index
	return nil
}

// Args returns a copy of the values forwarded to dispatched actions.
func (n *Node) Args() []any {
	return append([]any(nil), n.args...)
}

// SetArgs replaces the values forwarded to dispatched actions.
func (n *Node) SetArgs(args ...any) {
	n.args = append([]any(nil), args...)
}

// Root walks parent links up to the top of the tree.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Running reports whether n belongs to a session whose loop is active.
func (n *Node) Running() bool {
	return n.session != nil && n.session.running
}

// Stop ends the session. Non-root nodes forward the request to their parent
// so the whole tree stops, not just the local loop.
func (n *Node) Stop() {
	if n.parent != nil {
		n.parent.Stop()
		return
	}
	if n.session != nil {
		n.session.stop()
	}
}

// PerformAction implements Entry by opening this sub-menu.
func (n *Node) PerformAction(input terminal.KeyEvent, args ...any) {
	lines := -1
	if n.parent != nil {
		lines = n.parent.Len()
	}
	n.perform(ActionEvent{Input: input, Args: args, lines: lines})
}

func (n *Node) perform(ev ActionEvent) {
	ev.Source = n
	if ev.Term == nil {
		ev.Term = n.surface()
	}
	n.fire(ev, func(ev ActionEvent) {
		n.DisplayMenu(ev.lines)
	})
}

func (n *Node) acceptable(child Entry, siblings []Entry) bool {
	if isNil(child) {
		return false
	}
	if other, ok := child.(*Node); ok {
		for p := n; p != nil; p = p.parent {
			if p == other {
				return false
			}
		}
	}
	return child.IsValid(siblings)
}

func (n *Node) attach(child Entry) {
	child.core().parent = n
	bind(child, n.session)
}

// detachIfGone clears the back-reference of an entry no longer listed.
func (n *Node) detachIfGone(child Entry) {
	for _, c := range n.children {
		if c == child {
			return
		}
	}
	if child.core().parent == n {
		child.core().parent = nil
		bind(child, nil)
	}
}

// bind points e and its whole subtree at session.
func bind(e Entry, session *Session) {
	e.core().session = session
	if node, ok := e.(*Node); ok {
		for _, child := range node.children {
			bind(child, session)
		}
	}
}

func isNil(e Entry) bool {
	if e == nil {
		return true
	}
	switch v := e.(type) {
	case *Item:
		return v == nil
	case *Node:
		return v == nil
	}
	return false
}
