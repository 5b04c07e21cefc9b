package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/terminal"
	"github.com/charmbracelet/x/ansi"
)

// DisplayMenu runs the redraw/key loop for n until the user goes back or the
// session stops. previousLines is how many item rows the caller had on
// screen, so stale rows below a shorter list get erased. It returns the
// terminating command (CommandBack or CommandQuit) and the item count of the
// last dispatched sub-menu, or -1.
func (n *Node) DisplayMenu(previousLines int) (Command, int) {
	s := n.session
	if s == nil || !s.running {
		return CommandQuit, -1
	}
	dir := n.directory()
	events.Menu.Display(dir, len(n.children), previousLines)

	cmd, count := CommandUnknown, -1
	for {
		row := n.printHeader()
		stale := previousLines
		if count > stale {
			stale = count
		}
		n.printItems(row, stale)
		key, err := s.term.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.stop()
			} else {
				s.fail(fmt.Errorf("read key: %w", err))
			}
			cmd, count = CommandQuit, -1
			break
		}
		cmd, count = n.apply(key)
		if cmd == CommandQuit || cmd == CommandBack {
			break
		}
	}
	n.clearPerformedLines()
	events.Menu.Exit(dir, cmd.String())
	return cmd, count
}

// apply performs the state transition for one key press.
func (n *Node) apply(key terminal.KeyEvent) (Command, int) {
	s := n.session
	cmd := s.keys.Translate(key)
	events.Menu.Key(n.directory(), key.String(), cmd.String())
	count := -1
	switch cmd {
	case CommandEnter:
		if n.selected != unselected {
			count = n.dispatch(n.selected, key, n.args)
		}
	case CommandQuit:
		n.Stop()
	case CommandUp:
		n.moveUp()
	case CommandDown:
		n.moveDown()
	case CommandDir:
		n.printDirectory()
	}
	if !s.running {
		cmd = CommandQuit
	}
	return cmd, count
}

func (n *Node) moveUp() {
	last := len(n.children) - 1
	if last < 0 {
		n.selected = unselected
		return
	}
	if n.selected <= 0 {
		n.selected = last
	} else {
		n.selected--
	}
	events.Menu.Cursor(n.directory(), n.selected)
}

func (n *Node) moveDown() {
	last := len(n.children) - 1
	if last < 0 {
		n.selected = unselected
		return
	}
	if n.selected >= last {
		n.selected = 0
	} else {
		n.selected++
	}
	events.Menu.Cursor(n.directory(), n.selected)
}

// dispatch performs the child at index and records where its output ended.
// It returns the child's item count when the child is a sub-menu, else -1.
func (n *Node) dispatch(index int, key terminal.KeyEvent, args []any) int {
	s := n.session
	child := n.children[index]
	n.clearPerformedLines()
	events.Menu.Dispatch(n.directory(), index, child.Caption())

	s.term.SetCursorVisible(true)
	func() {
		defer s.term.SetCursorVisible(false)
		child.perform(ActionEvent{
			Input: key,
			Args:  append([]any(nil), args...),
			Term:  s.term,
			lines: len(n.children),
		})
	}()
	n.lastActionEndRow = s.term.CursorPosition().Row

	if node, ok := child.(*Node); ok {
		return node.Len()
	}
	return -1
}

// clearPerformedLines erases from the cursor row down to the row the last
// action finished on, then puts the cursor back.
func (n *Node) clearPerformedLines() {
	if n.lastActionEndRow < 0 {
		return
	}
	s := n.session
	cur := s.term.CursorPosition()
	for row := cur.Row; row <= n.lastActionEndRow; row++ {
		s.clearLine(row)
	}
	s.term.SetCursorPosition(terminal.Position{Row: cur.Row})
	n.lastActionEndRow = -1
}

// printHeader draws the banner and breadcrumb from the anchor and returns the
// first row of the item list.
func (n *Node) printHeader() int {
	s := n.session
	t := s.term
	row := s.anchor.Row

	s.clearLine(row)
	t.SetForeground(s.palette.Banner)
	t.Write(s.fit(s.banner, 0))
	t.ResetColor()
	row++

	s.clearLine(row)
	row++

	n.printBreadcrumb(row)
	row++

	s.clearLine(row)
	row++
	return row
}

// printBreadcrumb draws "Current directory: root/child/>" on row, the root
// segment in one highlight and the rest in another.
func (n *Node) printBreadcrumb(row int) {
	s := n.session
	t := s.term
	p := s.palette

	s.clearLine(row)
	t.SetForeground(p.DirectoryLabel)
	t.Write(directoryLabel)
	t.ResetColor()
	used := ansi.StringWidth(directoryLabel)
	for i, segment := range n.path() {
		text := s.fit(segment, used+ansi.StringWidth(PathSeparator+directoryMarker))
		t.SetForeground(p.DirectoryText)
		if i == 0 {
			t.SetBackground(p.RootSegment)
		} else {
			t.SetBackground(p.Segment)
		}
		t.Write(text)
		t.ResetColor()
		t.Write(PathSeparator)
		used += ansi.StringWidth(text) + ansi.StringWidth(PathSeparator)
	}
	t.Write(directoryMarker)
}

// printItems draws max(stale, len(children)) rows starting at row. Rows past
// the end of the list are blanked.
func (n *Node) printItems(row, stale int) {
	s := n.session
	t := s.term
	p := s.palette
	t.SetCursorVisible(false)

	total := len(n.children)
	if stale > total {
		total = stale
	}
	markerWidth := ansi.StringWidth(s.marker)
	pad := strings.Repeat(" ", markerWidth)
	for i := 0; i < total; i++ {
		s.clearLine(row + i)
		selected := i == n.selected
		if selected {
			t.SetBackground(p.SelectedItemBack)
			t.SetForeground(p.SelectedItem)
			t.Write(s.marker)
		}
		if i < len(n.children) {
			if !selected {
				t.SetForeground(p.Item)
			}
			label := fmt.Sprintf("(#%d) - %s ", i+1, n.children[i].Caption())
			t.Write(s.fit(label, markerWidth))
			if !selected {
				t.Write(pad)
			}
		}
		t.ResetColor()
	}
	t.SetCursorPosition(terminal.Position{Row: row + total})
}

// printDirectory reprints the full directory below the list. The row counts
// as action output so the next dispatch or exit erases it.
func (n *Node) printDirectory() {
	s := n.session
	t := s.term
	dir := n.directory()
	events.Menu.Directory(dir)
	start := t.CursorPosition()
	s.clearLine(start.Row)
	t.SetForeground(s.palette.DirectoryLabel)
	t.Write(directoryLabel)
	t.ResetColor()
	t.Write(s.fit(dir+PathSeparator+directoryMarker, ansi.StringWidth(directoryLabel)))
	if start.Row > n.lastActionEndRow {
		n.lastActionEndRow = start.Row
	}
	t.SetCursorPosition(start)
}
