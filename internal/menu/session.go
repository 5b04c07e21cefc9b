package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/treemenu/internal/logging"
	"github.com/atomicstack/treemenu/internal/terminal"
	"github.com/atomicstack/treemenu/internal/theme"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultMarker   = "> "
	directoryLabel  = "Current directory: "
	directoryMarker = ">"
	ellipsis        = "…"
)

// Session is the state shared by every node of one running tree: the
// running flag, the anchor row redraws start from, and the collaborators
// used to draw.
type Session struct {
	term    terminal.Surface
	keys    KeyMap
	palette *theme.Palette
	marker  string
	banner  string

	running bool
	anchor  terminal.Position
	err     error
}

// Option customises a Session.
type Option func(*Session)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(s *Session) { s.keys = keys }
}

// WithPalette replaces the default colors.
func WithPalette(p *theme.Palette) Option {
	return func(s *Session) {
		if p != nil {
			s.palette = p
		}
	}
}

// WithMarker replaces the selection marker.
func WithMarker(marker string) Option {
	return func(s *Session) {
		if marker != "" {
			s.marker = marker
		}
	}
}

// WithBanner replaces the instruction line drawn above the breadcrumb.
func WithBanner(banner string) Option {
	return func(s *Session) { s.banner = banner }
}

func newSession(term terminal.Surface, opts ...Option) *Session {
	s := &Session{
		term:    term,
		keys:    DefaultKeyMap(),
		palette: theme.Default(),
		marker:  defaultMarker,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.banner == "" {
		s.banner = defaultBanner(s.keys)
	}
	return s
}

func defaultBanner(keys KeyMap) string {
	parts := []string{"↑/↓ move", "enter select", "esc back"}
	if keys.Quit != 0 {
		parts = append(parts, fmt.Sprintf("ctrl+%c quit", keys.Quit))
	}
	if keys.Directory != 0 {
		parts = append(parts, fmt.Sprintf("ctrl+%c directory", keys.Directory))
	}
	return strings.Join(parts, "  ")
}

func (s *Session) stop() {
	s.running = false
}

// fail records the first fatal error and stops the session.
func (s *Session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
	logging.Error(err)
	s.running = false
}

// clearLine blanks row and leaves the cursor at its first column.
func (s *Session) clearLine(row int) {
	start := terminal.Position{Row: row}
	s.term.SetCursorPosition(start)
	s.term.Write(strings.Repeat(" ", s.term.Width()))
	s.term.SetCursorPosition(start)
}

// fit truncates text so it never wraps past the window edge.
func (s *Session) fit(text string, used int) string {
	avail := s.term.Width() - used - 1
	if avail <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= avail {
		return text
	}
	return truncate.StringWithTail(text, uint(avail), ellipsis)
}
