package terminal

import "github.com/charmbracelet/lipgloss"

// Color is any Lip Gloss terminal color. A nil Color means the terminal
// default.
type Color = lipgloss.TerminalColor

// Position addresses a cell on screen.
type Position struct {
	Row int
	Col int
}

// Surface is everything the menu needs from a terminal.
type Surface interface {
	// ReadKey blocks until a single key press is available.
	ReadKey() (KeyEvent, error)
	CursorPosition() Position
	SetCursorPosition(Position)
	// Width reports the window width in cells.
	Width() int
	Write(text string)
	SetForeground(Color)
	SetBackground(Color)
	ResetColor()
	SetCursorVisible(bool)
}
