package prompt

import (
	"errors"
	"testing"

	"github.com/atomicstack/treemenu/internal/terminal"
	tea "github.com/charmbracelet/bubbletea"
)

func typed(text string) []terminal.KeyEvent {
	var out []terminal.KeyEvent
	for _, r := range text {
		out = append(out, terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
	}
	return out
}

func TestAskReturnsTypedValue(t *testing.T) {
	keys := append(typed("hello"), terminal.KeyEvent{Key: terminal.KeyEnter})
	screen := terminal.NewVirtual(80, keys...)
	got, err := Ask(screen, nil, NewForm("Name"))
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if screen.Line(0) != "Name" {
		t.Fatalf("expected title on first row, got %q", screen.Line(0))
	}
	if screen.CursorPosition().Row != 3 {
		t.Fatalf("expected cursor below the prompt, got %+v", screen.CursorPosition())
	}
}

func TestAskEditsInitialValue(t *testing.T) {
	keys := []terminal.KeyEvent{
		{Key: terminal.KeyBackspace},
		{Key: terminal.KeyBackspace},
	}
	keys = append(keys, typed("xy")...)
	keys = append(keys, terminal.KeyEvent{Key: terminal.KeyEnter})
	screen := terminal.NewVirtual(80, keys...)
	got, err := Ask(screen, nil, NewForm("Rename", WithInitial("Settings")))
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "Settinxy" {
		t.Fatalf("expected edited value, got %q", got)
	}
}

func TestAskCanceledByEscape(t *testing.T) {
	keys := append(typed("abc"), terminal.KeyEvent{Key: terminal.KeyEscape})
	screen := terminal.NewVirtual(80, keys...)
	_, err := Ask(screen, nil, NewForm("Name"))
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}

func TestAskSurfacesReadErrors(t *testing.T) {
	screen := terminal.NewVirtual(80, typed("ab")...)
	if _, err := Ask(screen, nil, NewForm("Name")); err == nil {
		t.Fatalf("expected error once keys run out")
	}
}

func TestValidatorBlocksSubmit(t *testing.T) {
	var seen string
	keys := []terminal.KeyEvent{{Key: terminal.KeyEnter}}
	keys = append(keys, typed("ok")...)
	keys = append(keys, terminal.KeyEvent{Key: terminal.KeyEnter})
	screen := terminal.NewVirtual(80, keys...)
	screen.OnKey = func(ev terminal.KeyEvent) {
		if ev.Rune == 'o' {
			seen = screen.Line(2)
		}
	}
	form := NewForm("Name", WithValidator(func(v string) string {
		if v == "" {
			return "Name required"
		}
		return ""
	}))
	got, err := Ask(screen, nil, form)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if seen != "Name required" {
		t.Fatalf("expected validation message, got %q", seen)
	}
	if got != "ok" {
		t.Fatalf("expected ok, got %q", got)
	}
}

func TestFormUpdateQuitsOnEnter(t *testing.T) {
	form := NewForm("Name", WithInitial("x"))
	_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !form.Done() || form.Canceled() {
		t.Fatalf("expected form done")
	}
}

func TestFormCtrlUClears(t *testing.T) {
	form := NewForm("Name", WithInitial("abc"))
	form.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if form.Value() != "" {
		t.Fatalf("expected cleared value, got %q", form.Value())
	}
}

func TestKeyMsgConversion(t *testing.T) {
	msg, ok := KeyMsg(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'u', Mod: terminal.ModCtrl})
	if !ok || msg.Type != tea.KeyCtrlU {
		t.Fatalf("expected ctrl+u, got %v %v", msg, ok)
	}
	msg, ok = KeyMsg(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'é'})
	if !ok || msg.Type != tea.KeyRunes || string(msg.Runes) != "é" {
		t.Fatalf("expected rune message, got %v", msg)
	}
	if _, ok := KeyMsg(terminal.KeyEvent{Key: terminal.KeyNone}); ok {
		t.Fatalf("expected no message for KeyNone")
	}
}
