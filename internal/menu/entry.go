package menu

import (
	"errors"
	"reflect"
	"strings"

	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/terminal"
)

const (
	// PathSeparator joins captions in directories and breadcrumbs.
	PathSeparator = "/"
	// LeafSuffix marks the directory of a leaf item.
	LeafSuffix = ".item"

	unselected = -1
)

var (
	// ErrNotFound is returned when a position or tag addresses no child.
	ErrNotFound = errors.New("menu entry not found")
	// ErrRejected is returned when an entry fails validation on replacement.
	ErrRejected = errors.New("menu entry rejected")
)

// ActionEvent is handed to actions and hooks.
type ActionEvent struct {
	// Source is the entry being performed.
	Source Entry
	Input  terminal.KeyEvent
	Args   []any
	// Term is the session surface, or nil when the entry is detached.
	Term terminal.Surface

	// lines is the item count of the dispatching menu, forwarded to a
	// sub-menu so its first frame erases the longer list.
	lines int
}

// Action runs when a leaf is dispatched.
type Action func(ActionEvent)

// Hook observes an entry immediately before or after its action.
type Hook func(ActionEvent)

// Validator decides whether entry may join a node that already holds
// siblings.
type Validator func(entry Entry, siblings []Entry) bool

// Entry is the contract shared by leaves and sub-menus.
type Entry interface {
	Caption() string
	SetCaption(string)
	Tag() any
	SetTag(any)
	Parent() *Node
	// PerformAction fires the performing hook, the entry's action and the
	// performed hook, in that order.
	PerformAction(input terminal.KeyEvent, args ...any)
	IsValid(siblings []Entry) bool
	// Directory is the root-to-self caption path.
	Directory() string
	OnPerforming(Hook)
	OnPerformed(Hook)
	SetValidator(Validator)

	core() *entry
	perform(ActionEvent)
}

// entry holds the state common to Item and Node.
type entry struct {
	caption    string
	tag        any
	parent     *Node
	session    *Session
	performing Hook
	performed  Hook
	validator  Validator
}

func (e *entry) Caption() string          { return e.caption }
func (e *entry) SetCaption(caption string) { e.caption = caption }
func (e *entry) Tag() any                 { return e.tag }
func (e *entry) SetTag(tag any)           { e.tag = tag }
func (e *entry) Parent() *Node            { return e.parent }
func (e *entry) core() *entry             { return e }

// OnPerforming replaces the hook fired before the action.
func (e *entry) OnPerforming(h Hook) { e.performing = h }

// OnPerformed replaces the hook fired after the action.
func (e *entry) OnPerformed(h Hook) { e.performed = h }

// SetValidator installs the predicate consulted by IsValid. A nil validator
// accepts everything.
func (e *entry) SetValidator(v Validator) { e.validator = v }

func (e *entry) valid(self Entry, siblings []Entry) bool {
	if e.validator == nil {
		return true
	}
	return e.validator(self, siblings)
}

// path lists captions from the root down to e.
func (e *entry) path() []string {
	parts := []string{e.caption}
	for p := e.parent; p != nil; p = p.parent {
		parts = append(parts, p.caption)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

func (e *entry) directory() string {
	return strings.Join(e.path(), PathSeparator)
}

func (e *entry) surface() terminal.Surface {
	if e.session == nil {
		return nil
	}
	return e.session.term
}

// fire runs around the action body so both hooks see the same event.
func (e *entry) fire(ev ActionEvent, body func(ActionEvent)) {
	dir := e.directory()
	events.Action.Performing(dir, len(ev.Args))
	if e.performing != nil {
		e.performing(ev)
	}
	if body != nil {
		body(ev)
	}
	if e.performed != nil {
		e.performed(ev)
	}
	events.Action.Performed(dir)
}

// sameTag compares tags without panicking on uncomparable values. Nil tags
// never match.
func sameTag(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
