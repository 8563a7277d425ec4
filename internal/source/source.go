// Package source abstracts what the grid shows: snippets, windows, or apps
// all look the same to the overlay.
package source

import "errors"

// Item is one selectable entry. Immutable once handed out; the grid keeps
// only indices into the source.
type Item struct {
	Label string
	Badge string // short status marker drawn next to the label
}

// ErrNotRemovable is returned by Remove on sources whose items cannot be
// deleted from the overlay.
var ErrNotRemovable = errors.New("items of this source cannot be removed")

type Source interface {
	// Title labels the overlay footer.
	Title() string
	Count() int
	At(i int) Item
	// Activate delivers item i to its destination (paste, raise, switch).
	Activate(i int) error
	// Remove deletes item i from the backing store, persisting the change.
	Remove(i int) error
	Removable() bool
}
