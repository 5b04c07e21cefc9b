package theme

import "github.com/charmbracelet/lipgloss"

// Palette lists the colors the menu renderer switches between while drawing.
type Palette struct {
	Banner           lipgloss.TerminalColor
	DirectoryLabel   lipgloss.TerminalColor
	DirectoryText    lipgloss.TerminalColor
	RootSegment      lipgloss.TerminalColor
	Segment          lipgloss.TerminalColor
	Item             lipgloss.TerminalColor
	SelectedItem     lipgloss.TerminalColor
	SelectedItemBack lipgloss.TerminalColor
	Info             lipgloss.TerminalColor
	Error            lipgloss.TerminalColor
}

var defaultPalette = Palette{
	Banner:           lipgloss.Color("245"),
	DirectoryLabel:   lipgloss.Color("196"),
	DirectoryText:    lipgloss.Color("255"),
	RootSegment:      lipgloss.Color("34"),
	Segment:          lipgloss.Color("33"),
	Item:             lipgloss.Color("249"),
	SelectedItem:     lipgloss.Color("0"),
	SelectedItemBack: lipgloss.Color("255"),
	Info:             lipgloss.Color("249"),
	Error:            lipgloss.Color("196"),
}

// Default exposes the standard palette.
func Default() *Palette {
	p := defaultPalette
	return &p
}

// Monochrome leaves every color at the terminal default except the selected
// row, which is drawn black on white from the basic ANSI set.
func Monochrome() *Palette {
	return &Palette{
		SelectedItem:     lipgloss.Color("0"),
		SelectedItemBack: lipgloss.Color("7"),
	}
}
