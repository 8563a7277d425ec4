package apps

import (
	"sort"
	"strings"

	"gridmux/internal/config"
	"gridmux/internal/tmux"
)

// App is one launchable entry: either a pinned config entry, a running tmux
// session, or both.
type App struct {
	Name    string
	Path    string // start directory for pinned entries
	Pinned  bool
	Running bool
	Windows int
}

// Enumerate merges pinned entries with running sessions, de-duplicated by
// name. When both exist the pinned entry wins and is marked running, so the
// start directory from config is preserved.
func Enumerate(pinned []config.PinnedApp, t *tmux.Tmux) []App {
	byName := make(map[string]*App)
	var order []string

	for _, p := range pinned {
		key := strings.ToLower(p.Name)
		if _, ok := byName[key]; ok {
			continue
		}
		byName[key] = &App{Name: p.Name, Path: p.Path, Pinned: true}
		order = append(order, key)
	}

	sessions, _ := t.ListSessions()
	for _, s := range sessions {
		key := strings.ToLower(s.Name)
		if a, ok := byName[key]; ok {
			a.Running = true
			a.Windows = s.Windows
			continue
		}
		byName[key] = &App{Name: s.Name, Running: true, Windows: s.Windows}
		order = append(order, key)
	}

	// Pinned entries keep config order up front; running-only sessions
	// follow alphabetically.
	var apps []App
	for _, key := range order {
		if byName[key].Pinned {
			apps = append(apps, *byName[key])
		}
	}
	var running []App
	for _, key := range order {
		if !byName[key].Pinned {
			running = append(running, *byName[key])
		}
	}
	sort.Slice(running, func(i, j int) bool {
		return strings.ToLower(running[i].Name) < strings.ToLower(running[j].Name)
	})
	return append(apps, running...)
}

// Activate switches to the app's session, creating it first when needed.
func Activate(a App, t *tmux.Tmux) error {
	if !t.HasSession(a.Name) {
		if err := t.NewSession(a.Name, a.Path); err != nil {
			return err
		}
	}
	return t.SwitchClient(a.Name)
}
