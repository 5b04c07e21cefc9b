package menu

import (
	"strings"
	"testing"
)

func searchTree() *Node {
	root := NewNode("Main")
	settings, _ := root.AddMenu("Settings")
	settings.AddItem("Volume", nil, nil)
	settings.AddItem("Brightness", nil, nil)
	root.AddItem("Exit", nil, nil)
	return root
}

func TestSearchRanksCaptions(t *testing.T) {
	matches := Search(searchTree(), "vol")
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}
	if matches[0].Directory != "Main/Settings/Volume.item" {
		t.Fatalf("unexpected best match %q", matches[0].Directory)
	}
	for _, m := range matches {
		if m.Entry.Caption() == "Main" {
			t.Fatalf("root should not be searched")
		}
	}
}

func TestSearchEmptyOrMissing(t *testing.T) {
	if got := Search(searchTree(), "  "); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
	if got := Search(searchTree(), "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
	if got := Search(nil, "x"); got != nil {
		t.Fatalf("expected nil for nil root")
	}
}

func TestWalkSkipsPrunedChildren(t *testing.T) {
	var seen []string
	Walk(searchTree(), func(e Entry, depth int) bool {
		seen = append(seen, e.Caption())
		return e.Caption() != "Settings"
	})
	if got := strings.Join(seen, ","); got != "Main,Settings,Exit" {
		t.Fatalf("unexpected walk order %s", got)
	}
}

func TestListingIndentsChildren(t *testing.T) {
	lines := Listing(searchTree())
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "1") || !strings.Contains(lines[0], "menu (2)") {
		t.Fatalf("unexpected menu line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  1") || !strings.Contains(lines[1], "Volume") {
		t.Fatalf("unexpected child line %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "2") || !strings.HasSuffix(lines[3], "item") {
		t.Fatalf("unexpected last line %q", lines[3])
	}
}
