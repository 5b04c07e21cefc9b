// Package prompt reads a single line of text below the menu. Editing is
// handled by a bubbles textinput model; keys come from the menu's terminal
// surface so the prompt works on the raw console and on virtual screens.
package prompt

import (
	"errors"
	"strings"
	"unicode"

	"github.com/atomicstack/treemenu/internal/terminal"
	"github.com/atomicstack/treemenu/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// ErrCanceled is returned by Ask when the user leaves the prompt with Escape
// or Ctrl+C.
var ErrCanceled = errors.New("prompt canceled")

const defaultCharLimit = 64

// Form is a one-line input with optional validation.
type Form struct {
	input    textinput.Model
	title    string
	help     string
	err      string
	validate func(string) string
	done     bool
	canceled bool
}

// Option customises a Form.
type Option func(*Form)

// WithInitial pre-fills the input and moves the cursor to its end.
func WithInitial(value string) Option {
	return func(f *Form) {
		f.input.SetValue(value)
		f.input.CursorEnd()
	}
}

// WithPlaceholder shows text while the input is empty.
func WithPlaceholder(text string) Option {
	return func(f *Form) { f.input.Placeholder = text }
}

// WithValidator rejects submissions for which fn returns a message.
func WithValidator(fn func(string) string) Option {
	return func(f *Form) { f.validate = fn }
}

// WithHelp replaces the hint drawn under the input.
func WithHelp(help string) Option {
	return func(f *Form) { f.help = help }
}

// NewForm creates a focused form titled title.
func NewForm(title string, opts ...Option) *Form {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = defaultCharLimit
	ti.Cursor.SetMode(cursor.CursorHide)
	ti.Focus()
	f := &Form{
		input: ti,
		title: title,
		help:  "Press Enter to confirm. Esc to cancel.",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Value() string  { return strings.TrimSpace(f.input.Value()) }
func (f *Form) Title() string  { return f.title }
func (f *Form) Help() string   { return f.help }
func (f *Form) Error() string  { return f.err }
func (f *Form) Done() bool     { return f.done }
func (f *Form) Canceled() bool { return f.canceled }

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd { return nil }

// Update implements tea.Model. It returns tea.Quit once the form is
// submitted or canceled.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, cmd
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		f.canceled = true
		return f, tea.Quit
	case tea.KeyEnter:
		if f.validate != nil {
			if problem := f.validate(f.Value()); problem != "" {
				f.err = problem
				return f, nil
			}
		}
		f.err = ""
		f.done = true
		return f, tea.Quit
	case tea.KeyCtrlU:
		f.input.SetValue("")
		f.input.CursorStart()
		f.err = ""
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.err = ""
	return f, cmd
}

// View implements tea.Model.
func (f *Form) View() string {
	lines := []string{f.title, f.InputView()}
	if f.err != "" {
		lines = append(lines, f.err)
	}
	lines = append(lines, f.help)
	return strings.Join(lines, "\n")
}

// InputView is the input line without styling.
func (f *Form) InputView() string {
	return ansi.Strip(f.input.View())
}

// cursorColumn is where the terminal cursor belongs on the input line.
func (f *Form) cursorColumn() int {
	value := []rune(f.input.Value())
	pos := f.input.Position()
	if pos > len(value) {
		pos = len(value)
	}
	return ansi.StringWidth(f.input.Prompt) + ansi.StringWidth(string(value[:pos]))
}

// Ask draws f from the cursor position and feeds it keys from term until it
// is submitted or canceled. The cursor is left on the row below the prompt.
func Ask(term terminal.Surface, palette *theme.Palette, f *Form) (string, error) {
	if palette == nil {
		palette = theme.Default()
	}
	start := term.CursorPosition()
	start.Col = 0
	drawn := 0
	for {
		drawn = draw(term, palette, f, start, drawn)
		ev, err := term.ReadKey()
		if err != nil {
			finish(term, start, drawn)
			return "", err
		}
		msg, ok := KeyMsg(ev)
		if !ok {
			continue
		}
		if quit := step(f, msg); quit {
			break
		}
	}
	finish(term, start, drawn)
	if f.canceled {
		return "", ErrCanceled
	}
	return f.Value(), nil
}

// step runs one update and any command it returns, reporting whether the
// form asked to quit.
func step(f *Form, msg tea.Msg) bool {
	_, cmd := f.Update(msg)
	for cmd != nil {
		out := cmd()
		if _, ok := out.(tea.QuitMsg); ok {
			return true
		}
		if out == nil {
			return false
		}
		_, cmd = f.Update(out)
	}
	return false
}

func draw(term terminal.Surface, p *theme.Palette, f *Form, start terminal.Position, previous int) int {
	lines := strings.Split(f.View(), "\n")
	width := term.Width()
	for i := 0; i < max(len(lines), previous); i++ {
		row := terminal.Position{Row: start.Row + i}
		term.SetCursorPosition(row)
		term.Write(strings.Repeat(" ", width))
		term.SetCursorPosition(row)
		if i >= len(lines) {
			continue
		}
		switch {
		case i == 0:
			term.SetForeground(p.DirectoryLabel)
		case f.err != "" && i == 2:
			term.SetForeground(p.Error)
		case i == len(lines)-1:
			term.SetForeground(p.Banner)
		}
		term.Write(clip(lines[i], width-1))
		term.ResetColor()
	}
	term.SetCursorPosition(terminal.Position{Row: start.Row + 1, Col: min(f.cursorColumn(), width-1)})
	term.SetCursorVisible(true)
	return len(lines)
}

func finish(term terminal.Surface, start terminal.Position, drawn int) {
	term.SetCursorPosition(terminal.Position{Row: start.Row + drawn})
}

func clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "")
}

// KeyMsg converts a surface key event into the bubbletea message textinput
// understands. Events with no equivalent report false.
func KeyMsg(ev terminal.KeyEvent) (tea.KeyMsg, bool) {
	alt := ev.Mod&terminal.ModAlt != 0
	switch ev.Key {
	case terminal.KeyRune:
		if ev.Mod&terminal.ModCtrl != 0 {
			r := unicode.ToLower(ev.Rune)
			if r < 'a' || r > 'z' {
				return tea.KeyMsg{}, false
			}
			return tea.KeyMsg{Type: tea.KeyType(r - 'a' + 1), Alt: alt}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ev.Rune}, Alt: alt}, true
	case terminal.KeyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: alt}, true
	case terminal.KeyEscape:
		return tea.KeyMsg{Type: tea.KeyEsc, Alt: alt}, true
	case terminal.KeyBackspace:
		return tea.KeyMsg{Type: tea.KeyBackspace, Alt: alt}, true
	case terminal.KeyTab:
		return tea.KeyMsg{Type: tea.KeyTab, Alt: alt}, true
	case terminal.KeyLeft:
		return tea.KeyMsg{Type: tea.KeyLeft, Alt: alt}, true
	case terminal.KeyRight:
		return tea.KeyMsg{Type: tea.KeyRight, Alt: alt}, true
	case terminal.KeyUp:
		return tea.KeyMsg{Type: tea.KeyUp, Alt: alt}, true
	case terminal.KeyDown:
		return tea.KeyMsg{Type: tea.KeyDown, Alt: alt}, true
	case terminal.KeyHome:
		return tea.KeyMsg{Type: tea.KeyHome, Alt: alt}, true
	case terminal.KeyEnd:
		return tea.KeyMsg{Type: tea.KeyEnd, Alt: alt}, true
	}
	return tea.KeyMsg{}, false
}
