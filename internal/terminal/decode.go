package terminal

import "unicode/utf8"

// csiKeys maps the final byte of a CSI or SS3 sequence to a key.
var csiKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// decodeKey decodes the first key in data. It returns the number of bytes
// consumed; zero means data holds an incomplete sequence. Unknown but well
// formed sequences are consumed and reported as KeyNone.
func decodeKey(data []byte) (KeyEvent, int) {
	if len(data) == 0 {
		return KeyEvent{}, 0
	}
	b := data[0]
	switch {
	case b == 0x1b:
		return decodeEscape(data)
	case b == '\r' || b == '\n':
		return KeyEvent{Key: KeyEnter}, 1
	case b == '\t':
		return KeyEvent{Key: KeyTab}, 1
	case b == 0x7f || b == 0x08:
		return KeyEvent{Key: KeyBackspace}, 1
	case b >= 0x01 && b <= 0x1a:
		return KeyEvent{Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}, 1
	case b < 0x20:
		return KeyEvent{Key: KeyNone}, 1
	case b < utf8.RuneSelf:
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, 1
	}
	if !utf8.FullRune(data) {
		return KeyEvent{}, 0
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyNone}, size
	}
	return KeyEvent{Key: KeyRune, Rune: r}, size
}

func decodeEscape(data []byte) (KeyEvent, int) {
	// a lone ESC in a read is the Escape key
	if len(data) == 1 {
		return KeyEvent{Key: KeyEscape}, 1
	}
	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		if len(data) < 3 {
			return KeyEvent{}, 0
		}
		if key, ok := csiKeys[data[2]]; ok {
			return KeyEvent{Key: key}, 3
		}
		return KeyEvent{Key: KeyNone}, 3
	case 0x1b:
		return KeyEvent{Key: KeyEscape, Mod: ModAlt}, 2
	}
	ev, n := decodeKey(data[1:])
	if n == 0 {
		return KeyEvent{}, 0
	}
	ev.Mod |= ModAlt
	return ev, n + 1
}

func decodeCSI(data []byte) (KeyEvent, int) {
	end := 2
	for end < len(data) {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f {
			// not a parameter or intermediate byte; drop the introducer
			return KeyEvent{Key: KeyNone}, end
		}
		end++
	}
	if end >= len(data) {
		return KeyEvent{}, 0
	}
	final := data[end]
	params := data[2:end]
	consumed := end + 1
	key, ok := csiKeys[final]
	if !ok {
		if final == '~' {
			switch string(params) {
			case "1", "7":
				return KeyEvent{Key: KeyHome}, consumed
			case "4", "8":
				return KeyEvent{Key: KeyEnd}, consumed
			}
		}
		return KeyEvent{Key: KeyNone}, consumed
	}
	return KeyEvent{Key: key, Mod: csiModifier(params)}, consumed
}

// csiModifier reads the xterm modifier parameter from "1;5" style params.
func csiModifier(params []byte) Modifier {
	sep := -1
	for i, b := range params {
		if b == ';' {
			sep = i
		}
	}
	if sep < 0 || sep == len(params)-1 {
		return ModNone
	}
	value := 0
	for _, b := range params[sep+1:] {
		if b < '0' || b > '9' {
			return ModNone
		}
		value = value*10 + int(b-'0')
	}
	if value < 2 {
		return ModNone
	}
	bits := value - 1
	var mod Modifier
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// parseCursorReport looks for a "ESC [ row ; col R" report in data. It
// returns the zero based position, the offset the report starts at and its
// length.
func parseCursorReport(data []byte) (Position, int, int, bool) {
	for start := 0; start+1 < len(data); start++ {
		if data[start] != 0x1b || data[start+1] != '[' {
			continue
		}
		row, col, field := 0, 0, 0
		digits := 0
		for i := start + 2; i < len(data); i++ {
			b := data[i]
			switch {
			case b >= '0' && b <= '9':
				if field == 0 {
					row = row*10 + int(b-'0')
				} else {
					col = col*10 + int(b-'0')
				}
				digits++
			case b == ';' && field == 0 && digits > 0:
				field = 1
				digits = 0
			case b == 'R' && field == 1 && digits > 0:
				return Position{Row: row - 1, Col: col - 1}, start, i - start + 1, true
			default:
				i = len(data)
			}
		}
	}
	return Position{}, 0, 0, false
}
