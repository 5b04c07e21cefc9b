package menu

import (
	"testing"

	"github.com/atomicstack/treemenu/internal/terminal"
)

// Layout of a session started with the cursor on row 0.
const (
	bannerRow     = 1
	breadcrumbRow = 3
	firstItemRow  = 5
)

func keys(t *testing.T, names ...string) []terminal.KeyEvent {
	t.Helper()
	out := make([]terminal.KeyEvent, 0, len(names))
	for _, name := range names {
		ev, err := terminal.ParseKey(name)
		if err != nil {
			t.Fatalf("parse key %q: %v", name, err)
		}
		out = append(out, ev)
	}
	return out
}

func newTestMenu(t *testing.T, names ...string) (*Menu, *terminal.Virtual) {
	t.Helper()
	screen := terminal.NewVirtual(80, keys(t, names...)...)
	return New(screen, "Main"), screen
}

func run(t *testing.T, m *Menu) {
	t.Helper()
	if err := m.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

// settingsTree builds Main -> [Settings -> [Volume], Exit].
func settingsTree(m *Menu) (settings *Node, volume, exit *Item) {
	settings, _ = m.AddMenu("Settings")
	volume = NewItem("Volume", nil)
	settings.AddChild(volume)
	exit = NewItem("Exit", nil)
	m.AddChild(exit)
	return settings, volume, exit
}
