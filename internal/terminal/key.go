package terminal

import (
	"fmt"
	"strings"
	"unicode"
)

// Key identifies a physical key.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // printable character or Ctrl+letter, see KeyEvent.Rune
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyBackspace
	KeyHome
	KeyEnd
)

// Modifier flags.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// KeyEvent is a single decoded key press.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

var keyNames = map[Key]string{
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyHome:      "home",
	KeyEnd:       "end",
}

// Ctrl reports whether the event is Ctrl plus the given letter, ignoring case.
func (k KeyEvent) Ctrl(r rune) bool {
	return k.Key == KeyRune && k.Mod&ModCtrl != 0 && unicode.ToLower(k.Rune) == unicode.ToLower(r)
}

// String renders the event in the same notation ParseKey accepts.
func (k KeyEvent) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	switch k.Key {
	case KeyRune:
		b.WriteRune(k.Rune)
	case KeyNone:
		b.WriteString("none")
	default:
		b.WriteString(keyNames[k.Key])
	}
	return b.String()
}

// ParseKey turns names such as "down", "enter" or "ctrl+c" into key events.
func ParseKey(name string) (KeyEvent, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return KeyEvent{}, fmt.Errorf("empty key name")
	}
	var ev KeyEvent
	for {
		switch {
		case strings.HasPrefix(trimmed, "ctrl+"):
			ev.Mod |= ModCtrl
			trimmed = strings.TrimPrefix(trimmed, "ctrl+")
			continue
		case strings.HasPrefix(trimmed, "alt+"):
			ev.Mod |= ModAlt
			trimmed = strings.TrimPrefix(trimmed, "alt+")
			continue
		case strings.HasPrefix(trimmed, "shift+"):
			ev.Mod |= ModShift
			trimmed = strings.TrimPrefix(trimmed, "shift+")
			continue
		}
		break
	}
	if trimmed == "escape" {
		trimmed = "esc"
	}
	for key, keyName := range keyNames {
		if keyName == trimmed {
			ev.Key = key
			return ev, nil
		}
	}
	runes := []rune(trimmed)
	if len(runes) != 1 {
		return KeyEvent{}, fmt.Errorf("unknown key %q", name)
	}
	ev.Key = KeyRune
	ev.Rune = runes[0]
	return ev, nil
}
