package source

import (
	"fmt"

	"gridmux/internal/apps"
	"gridmux/internal/config"
	"gridmux/internal/tmux"
)

// Apps lists pinned entries and running sessions.
type Apps struct {
	Tmux *tmux.Tmux
	List []apps.App
}

func LoadApps(cfg *config.Config, t *tmux.Tmux) (*Apps, error) {
	list := apps.Enumerate(cfg.Pinned, t)
	if len(list) == 0 {
		return nil, fmt.Errorf("no pinned apps or running sessions")
	}
	return &Apps{Tmux: t, List: list}, nil
}

func (a *Apps) Title() string { return "apps" }

func (a *Apps) Count() int { return len(a.List) }

func (a *Apps) At(i int) Item {
	app := a.List[i]
	badge := ""
	switch {
	case app.Running && app.Pinned:
		badge = "●"
	case app.Running:
		badge = fmt.Sprintf("● %dw", app.Windows)
	case app.Pinned:
		badge = "○"
	}
	return Item{Label: app.Name, Badge: badge}
}

func (a *Apps) Activate(i int) error {
	if i < 0 || i >= len(a.List) {
		return fmt.Errorf("app %d out of range", i)
	}
	return apps.Activate(a.List[i], a.Tmux)
}

func (a *Apps) Remove(int) error { return ErrNotRemovable }

func (a *Apps) Removable() bool { return false }
