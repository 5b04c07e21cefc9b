package menu

import "github.com/atomicstack/treemenu/internal/terminal"

// Command is the logical meaning of a key press inside a menu loop.
type Command int

const (
	CommandUnknown Command = iota
	CommandUp
	CommandDown
	CommandEnter
	CommandBack
	CommandQuit
	CommandDir
)

var commandNames = [...]string{
	CommandUnknown: "unknown",
	CommandUp:      "up",
	CommandDown:    "down",
	CommandEnter:   "enter",
	CommandBack:    "back",
	CommandQuit:    "quit",
	CommandDir:     "dir",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// KeyMap holds the letters that, combined with Ctrl, quit the session and
// reprint the directory. A zero Directory disables the directory command.
type KeyMap struct {
	Quit      rune
	Directory rune
}

// DefaultKeyMap quits on Ctrl+C and reprints the directory on Ctrl+D.
func DefaultKeyMap() KeyMap {
	return KeyMap{Quit: 'c', Directory: 'd'}
}

// Translate maps a key press to a Command.
func (k KeyMap) Translate(ev terminal.KeyEvent) Command {
	switch {
	case ev.Key == terminal.KeyEscape:
		return CommandBack
	case k.Directory != 0 && ev.Ctrl(k.Directory):
		return CommandDir
	case k.Quit != 0 && ev.Ctrl(k.Quit):
		return CommandQuit
	case ev.Key == terminal.KeyEnter:
		return CommandEnter
	case ev.Key == terminal.KeyDown:
		return CommandDown
	case ev.Key == terminal.KeyUp:
		return CommandUp
	}
	return CommandUnknown
}
