package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Cell is one character on a Virtual screen with the colors it was written
// with. The cell to the right of a wide character holds a zero Rune.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// Virtual is an in-memory Surface. Keys are served from a queue; once the
// queue is drained ReadKey returns io.EOF.
type Virtual struct {
	width   int
	rows    [][]Cell
	pos     Position
	fg      Color
	bg      Color
	visible bool
	keys    []KeyEvent

	// OnKey, when set, runs after each key is handed out. Tests use it to
	// capture intermediate frames.
	OnKey func(KeyEvent)
}

// NewVirtual creates a screen of the given width with the cursor at the
// origin.
func NewVirtual(width int, keys ...KeyEvent) *Virtual {
	if width <= 0 {
		width = defaultWidth
	}
	return &Virtual{width: width, visible: true, keys: append([]KeyEvent(nil), keys...)}
}

// Push queues more keys.
func (v *Virtual) Push(keys ...KeyEvent) {
	v.keys = append(v.keys, keys...)
}

// Pending reports how many queued keys have not been read.
func (v *Virtual) Pending() int {
	return len(v.keys)
}

// ReadKey implements Surface.
func (v *Virtual) ReadKey() (KeyEvent, error) {
	if len(v.keys) == 0 {
		return KeyEvent{}, io.EOF
	}
	ev := v.keys[0]
	v.keys = v.keys[1:]
	if v.OnKey != nil {
		v.OnKey(ev)
	}
	return ev, nil
}

// CursorPosition implements Surface.
func (v *Virtual) CursorPosition() Position { return v.pos }

// SetCursorPosition implements Surface.
func (v *Virtual) SetCursorPosition(p Position) {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Col < 0 {
		p.Col = 0
	}
	v.pos = p
}

// Width implements Surface.
func (v *Virtual) Width() int { return v.width }

// Write implements Surface. Runes advance the cursor by their display width,
// as on the console. Text past the right edge wraps onto the next row and
// zero-width runes are dropped.
func (v *Virtual) Write(text string) {
	for _, r := range text {
		if r == '\n' {
			v.pos.Row++
			v.pos.Col = 0
			continue
		}
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if v.pos.Col+w > v.width {
			v.pos.Row++
			v.pos.Col = 0
		}
		v.set(v.pos, Cell{Rune: r, Fg: v.fg, Bg: v.bg})
		for i := 1; i < w; i++ {
			v.set(Position{Row: v.pos.Row, Col: v.pos.Col + i}, Cell{Fg: v.fg, Bg: v.bg})
		}
		v.pos.Col += w
	}
}

func (v *Virtual) set(p Position, cell Cell) {
	for len(v.rows) <= p.Row {
		v.rows = append(v.rows, nil)
	}
	row := v.rows[p.Row]
	for len(row) <= p.Col {
		row = append(row, Cell{Rune: ' '})
	}
	row[p.Col] = cell
	v.rows[p.Row] = row
}

// SetForeground implements Surface.
func (v *Virtual) SetForeground(c Color) { v.fg = c }

// SetBackground implements Surface.
func (v *Virtual) SetBackground(c Color) { v.bg = c }

// ResetColor implements Surface.
func (v *Virtual) ResetColor() {
	v.fg = nil
	v.bg = nil
}

// SetCursorVisible implements Surface.
func (v *Virtual) SetCursorVisible(visible bool) { v.visible = visible }

// CursorVisible reports the last visibility set.
func (v *Virtual) CursorVisible() bool { return v.visible }

// Line returns the text of a row without trailing blanks.
func (v *Virtual) Line(row int) string {
	if row < 0 || row >= len(v.rows) {
		return ""
	}
	var b strings.Builder
	for _, cell := range v.rows[row] {
		if cell.Rune != 0 {
			b.WriteRune(cell.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// CellAt returns the cell at p; unwritten cells are blank.
func (v *Virtual) CellAt(p Position) Cell {
	if p.Row < 0 || p.Row >= len(v.rows) || p.Col < 0 || p.Col >= len(v.rows[p.Row]) {
		return Cell{Rune: ' '}
	}
	return v.rows[p.Row][p.Col]
}

// Lines returns every row, trimmed, with trailing empty rows removed.
func (v *Virtual) Lines() []string {
	lines := make([]string, len(v.rows))
	for i := range v.rows {
		lines[i] = v.Line(i)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Screen joins Lines with newlines.
func (v *Virtual) Screen() string {
	return strings.Join(v.Lines(), "\n")
}
