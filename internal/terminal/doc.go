// Package terminal defines the surface the menu renders onto and reads keys
// from, along with two implementations:
//
//   - Console drives the real terminal on stdin/stdout in raw mode. Cursor
//     movement, visibility and position reports are emitted as ANSI
//     sequences, colored text goes through a Lip Gloss renderer bound to the
//     output descriptor.
//   - Virtual keeps an in-memory grid of cells and a queue of scripted keys.
//     Tests use it to drive the menu deterministically and to inspect what
//     ended up on screen.
//
// Coordinates are zero based. Writing "\n" moves the cursor to column zero of
// the next row on both implementations.
package terminal
