// Package menu implements a hierarchical terminal menu that redraws in place.
//
// A tree is built from Items (leaves bound to an Action) and Nodes (sub-menus
// holding an ordered list of entries). A Menu is the root Node plus the
// Session that owns the running flag and the screen anchor.
//
// Navigation runs as nested blocking loops, one per open sub-menu:
//
//   - Node.DisplayMenu resets the cursor to the anchor, draws the banner, the
//     breadcrumb and the item list, then blocks on a single key press.
//   - The key is translated through the session KeyMap into a Command. Up and
//     Down move the selection cyclically, Enter dispatches the selected
//     entry, Escape returns Back to the caller and Ctrl+quit key stops the
//     whole session.
//   - Dispatching a Node recurses into its own DisplayMenu. When it returns,
//     the parent loop redraws enough lines to erase the longer child list.
//   - Once the session stops, every pending loop frame returns CommandQuit so
//     the stack unwinds in one pass.
//
// Everything runs on the caller's goroutine. A Session must not be shared
// between goroutines.
package menu
