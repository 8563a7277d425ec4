package source

import (
	"fmt"

	"gridmux/internal/tmux"
)

// Windows lists the windows of one tmux session, snapshotted when the
// overlay opens.
type Windows struct {
	Tmux    *tmux.Tmux
	Session string
	List    []tmux.Window
}

// LoadWindows snapshots the window list for the current session.
func LoadWindows(t *tmux.Tmux) (*Windows, error) {
	session, err := t.CurrentSession()
	if err != nil || session == "" {
		return nil, fmt.Errorf("no current session")
	}
	wins, err := t.ListWindows(session)
	if err != nil {
		return nil, err
	}
	if len(wins) == 0 {
		return nil, fmt.Errorf("session %q has no windows", session)
	}
	return &Windows{Tmux: t, Session: session, List: wins}, nil
}

func (w *Windows) Title() string { return "windows · " + w.Session }

func (w *Windows) Count() int { return len(w.List) }

func (w *Windows) At(i int) Item {
	win := w.List[i]
	badge := fmt.Sprintf(":%d", win.Index)
	if win.Active {
		badge = "●" + badge
	}
	return Item{Label: win.Title, Badge: badge}
}

func (w *Windows) Activate(i int) error {
	if i < 0 || i >= len(w.List) {
		return fmt.Errorf("window %d out of range", i)
	}
	return w.Tmux.SelectWindow(w.List[i].ID)
}

func (w *Windows) Remove(int) error { return ErrNotRemovable }

func (w *Windows) Removable() bool { return false }
