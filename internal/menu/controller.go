package menu

import (
	"errors"

	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/terminal"
)

// ErrRunning is returned by Run when the session loop is already active.
var ErrRunning = errors.New("menu already running")

// Menu is the root of a tree together with the session that drives it.
type Menu struct {
	*Node
	session *Session
}

// New creates an empty root menu drawing on term.
func New(term terminal.Surface, caption string, opts ...Option) *Menu {
	s := newSession(term, opts...)
	root := NewNode(caption)
	bind(root, s)
	return &Menu{Node: root, session: s}
}

// Anchor is the screen position redraws start from. It is captured by Run.
func (m *Menu) Anchor() terminal.Position { return m.session.anchor }

// Run anchors the menu one row below the cursor and blocks until the session
// is stopped, by the quit key, an action calling Stop, or the key source
// running dry. Escape at the top level redraws the root instead of exiting.
func (m *Menu) Run() error {
	s := m.session
	if s.running {
		return ErrRunning
	}
	s.err = nil
	s.running = true
	cur := s.term.CursorPosition()
	s.anchor = terminal.Position{Row: cur.Row + 1}
	events.Session.Start(m.caption, s.anchor.Row, s.anchor.Col)

	for s.running {
		cmd, _ := m.DisplayMenu(m.Len())
		if cmd == CommandQuit {
			break
		}
	}

	s.running = false
	s.term.SetCursorVisible(true)
	events.Session.Stop(m.caption, s.err)
	return s.err
}
