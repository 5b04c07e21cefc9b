package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	// cursor reports arriving later than this many reads are given up on
	maxReportReads = 8
)

// ErrNotTerminal is returned by OpenConsole when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Console is a Surface backed by the process terminal in raw mode.
type Console struct {
	in       *os.File
	out      *os.File
	inFd     int
	outFd    int
	oldState *term.State
	renderer *lipgloss.Renderer

	pending []byte
	buf     []byte
	pos     Position
	fg      Color
	bg      Color
}

// OpenConsole switches stdin to raw mode and returns a console surface.
// Close must be called to restore the terminal.
func OpenConsole() (*Console, error) {
	return openConsole(os.Stdin, os.Stdout)
}

func openConsole(in, out *os.File) (*Console, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, ErrNotTerminal
	}
	old, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	c := &Console{
		in:       in,
		out:      out,
		inFd:     inFd,
		outFd:    int(out.Fd()),
		oldState: old,
		renderer: lipgloss.NewRenderer(out),
		buf:      make([]byte, 256),
	}
	c.pos = c.CursorPosition()
	return c, nil
}

// Close resets colors, shows the cursor and restores the terminal mode.
func (c *Console) Close() error {
	c.emit(ansi.ResetStyle + ansi.ShowCursor)
	if c.oldState == nil {
		return nil
	}
	err := term.Restore(c.inFd, c.oldState)
	c.oldState = nil
	return err
}

// ReadKey implements Surface.
func (c *Console) ReadKey() (KeyEvent, error) {
	for {
		if len(c.pending) > 0 {
			ev, n := decodeKey(c.pending)
			if n > 0 {
				c.pending = c.pending[n:]
				if ev.Key == KeyNone {
					continue
				}
				return ev, nil
			}
		}
		incomplete := len(c.pending) > 0
		if err := c.fill(); err != nil {
			if incomplete && errors.Is(err, io.EOF) {
				// flush whatever partial sequence is left as a bare Escape
				c.pending = nil
				return KeyEvent{Key: KeyEscape}, nil
			}
			return KeyEvent{}, err
		}
	}
}

func (c *Console) fill() error {
	n, err := c.in.Read(c.buf)
	if n > 0 {
		c.pending = append(c.pending, c.buf[:n]...)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return io.EOF
	}
	return nil
}

// CursorPosition asks the terminal for a cursor position report. Key
// presses that arrive ahead of the report stay queued for ReadKey. If the
// terminal never answers, the locally tracked position is returned.
func (c *Console) CursorPosition() Position {
	c.emit(ansi.RequestCursorPositionReport)
	for i := 0; i < maxReportReads; i++ {
		if pos, start, length, ok := parseCursorReport(c.pending); ok {
			c.pending = append(c.pending[:start:start], c.pending[start+length:]...)
			c.pos = pos
			return pos
		}
		if err := c.fill(); err != nil {
			break
		}
	}
	return c.pos
}

// SetCursorPosition implements Surface.
func (c *Console) SetCursorPosition(p Position) {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Col < 0 {
		p.Col = 0
	}
	c.emit(ansi.SetCursorPosition(p.Col+1, p.Row+1))
	c.pos = p
}

// Width implements Surface.
func (c *Console) Width() int {
	width, _, err := term.GetSize(c.outFd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Write implements Surface. Newlines return the carriage as well, since the
// terminal is in raw mode.
func (c *Console) Write(text string) {
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
			c.pos.Row++
			c.pos.Col = 0
		}
		if line == "" {
			continue
		}
		b.WriteString(c.styled(line))
		c.pos.Col += ansi.StringWidth(line)
	}
	c.emit(b.String())
}

func (c *Console) styled(text string) string {
	if c.fg == nil && c.bg == nil {
		return text
	}
	style := c.renderer.NewStyle()
	if c.fg != nil {
		style = style.Foreground(c.fg)
	}
	if c.bg != nil {
		style = style.Background(c.bg)
	}
	return style.Render(text)
}

// SetForeground implements Surface.
func (c *Console) SetForeground(color Color) { c.fg = color }

// SetBackground implements Surface.
func (c *Console) SetBackground(color Color) { c.bg = color }

// ResetColor implements Surface.
func (c *Console) ResetColor() {
	c.fg = nil
	c.bg = nil
}

// SetCursorVisible implements Surface.
func (c *Console) SetCursorVisible(visible bool) {
	if visible {
		c.emit(ansi.ShowCursor)
		return
	}
	c.emit(ansi.HideCursor)
}

func (c *Console) emit(seq string) {
	if _, err := io.WriteString(c.out, seq); err != nil {
		fmt.Fprintf(os.Stderr, "terminal write failed: %v\n", err)
	}
}
