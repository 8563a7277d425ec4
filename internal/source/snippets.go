package source

import (
	"fmt"

	"gridmux/internal/paste"
	"gridmux/internal/store"
	"gridmux/internal/tmux"
)

// Snippets adapts the JSON snippet store. Activation pastes into the pane
// that had focus before the overlay opened.
type Snippets struct {
	Store      *store.Store
	Injector   *paste.Injector
	TargetPane string
}

func NewSnippets(st *store.Store, t *tmux.Tmux, pane string) *Snippets {
	return &Snippets{Store: st, Injector: &paste.Injector{Tmux: t}, TargetPane: pane}
}

func (s *Snippets) Title() string { return "snippets" }

func (s *Snippets) Count() int { return s.Store.Len() }

func (s *Snippets) At(i int) Item {
	sn := s.Store.Snippets[i]
	badge := ""
	if len(sn.Body) > 60 || sn.Body != sn.Title {
		badge = fmt.Sprintf("%dc", len(sn.Body))
	}
	return Item{Label: sn.Title, Badge: badge}
}

func (s *Snippets) Activate(i int) error {
	if i < 0 || i >= s.Store.Len() {
		return fmt.Errorf("snippet %d out of range", i)
	}
	return s.Injector.Paste(s.TargetPane, s.Store.Snippets[i].Body)
}

// Remove deletes and persists. A failed write keeps the in-memory entry
// removed so the session is consistent with what the user saw; the error
// surfaces as a toast.
func (s *Snippets) Remove(i int) error {
	s.Store.Remove(i)
	if err := s.Store.Save(); err != nil {
		return fmt.Errorf("save snippets: %w", err)
	}
	return nil
}

func (s *Snippets) Removable() bool { return true }

// Add appends a snippet and persists it.
func (s *Snippets) Add(title, body string) error {
	s.Store.Add(title, body)
	if err := s.Store.Save(); err != nil {
		return fmt.Errorf("save snippets: %w", err)
	}
	return nil
}
