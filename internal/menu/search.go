package menu

import (
	"sort"
	"strconv"
	"strings"

	"github.com/atomicstack/treemenu/internal/format/table"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is one search hit.
type Match struct {
	Entry     Entry
	Directory string
	Distance  int
}

// Walk visits root and every descendant depth first, in list order. depth
// is 0 for root. Returning false from fn skips the entry's children.
func Walk(root Entry, fn func(e Entry, depth int) bool) {
	walk(root, 0, fn)
}

func walk(e Entry, depth int, fn func(Entry, int) bool) {
	if isNil(e) || !fn(e, depth) {
		return
	}
	if node, ok := e.(*Node); ok {
		for _, child := range node.children {
			walk(child, depth+1, fn)
		}
	}
}

// Search fuzzy-matches query against every caption below root. Closer
// matches come first; ties keep tree order. An empty query matches nothing.
func Search(root *Node, query string) []Match {
	query = strings.TrimSpace(query)
	if root == nil || query == "" {
		return nil
	}
	var entries []Entry
	Walk(root, func(e Entry, depth int) bool {
		if depth > 0 {
			entries = append(entries, e)
		}
		return true
	})
	captions := make([]string, len(entries))
	for i, e := range entries {
		captions[i] = e.Caption()
	}
	ranks := fuzzy.RankFindNormalizedFold(query, captions)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	matches := make([]Match, 0, len(ranks))
	for _, rank := range ranks {
		e := entries[rank.OriginalIndex]
		matches = append(matches, Match{Entry: e, Directory: e.Directory(), Distance: rank.Distance})
	}
	return matches
}

// Listing renders the tree below root as aligned lines of ordinal, caption
// and kind, children indented under their menu.
func Listing(root *Node) []string {
	if root == nil {
		return nil
	}
	var rows [][]string
	Walk(root, func(e Entry, depth int) bool {
		if depth == 0 {
			return true
		}
		ordinal := strconv.Itoa(indexIn(e.Parent(), e) + 1)
		kind := "item"
		if node, ok := e.(*Node); ok {
			kind = "menu (" + strconv.Itoa(node.Len()) + ")"
		}
		indent := strings.Repeat("  ", depth-1)
		rows = append(rows, []string{indent + ordinal, e.Caption(), kind})
		return true
	})
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
}

func indexIn(parent *Node, e Entry) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.children {
		if c == e {
			return i
		}
	}
	return -1
}
