package tmux

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridmux/internal/shell"
)

type Tmux struct {
	Cmd shell.Commander
}

func New() *Tmux {
	return &Tmux{Cmd: &shell.ExecCommander{}}
}

func (t *Tmux) IsInsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

func (t *Tmux) HasSession(name string) bool {
	_, err := t.Cmd.Run("tmux", "has-session", "-t", name)
	return err == nil
}

func (t *Tmux) NewSession(name, path string) error {
	args := []string{"new-session", "-d", "-s", name}
	if path != "" {
		args = append(args, "-c", path)
	}
	_, err := t.Cmd.Run("tmux", args...)
	return err
}

func (t *Tmux) SwitchClient(name string) error {
	_, err := t.Cmd.Run("tmux", "switch-client", "-t", name)
	return err
}

type Session struct {
	Name     string
	Windows  int
	Attached bool
}

func (t *Tmux) ListSessions() ([]Session, error) {
	out, err := t.Cmd.Run("tmux", "list-sessions", "-F", "#{session_name}\t#{session_windows}\t#{session_attached}")
	if err != nil {
		return []Session{}, nil
	}
	var sessions []Session
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		s := Session{Name: parts[0]}
		if len(parts) > 1 {
			s.Windows, _ = strconv.Atoi(parts[1])
		}
		if len(parts) > 2 {
			s.Attached = parts[2] == "1"
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Window is one window of a session, with enough identity to raise it.
type Window struct {
	ID     string // tmux window id, e.g. "@3"
	Index  int
	Title  string
	Active bool
	Panes  int
}

// CurrentSession names the session the client is attached to.
func (t *Tmux) CurrentSession() (string, error) {
	out, err := t.Cmd.Run("tmux", "display-message", "-p", "#{session_name}")
	if err != nil {
		return "", fmt.Errorf("tmux display-message: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListWindows enumerates the windows of a session in index order.
func (t *Tmux) ListWindows(session string) ([]Window, error) {
	out, err := t.Cmd.Run("tmux", "list-windows", "-t", session, "-F",
		"#{window_id}\t#{window_index}\t#{window_name}\t#{window_active}\t#{window_panes}")
	if err != nil {
		return nil, fmt.Errorf("tmux list-windows: %w", err)
	}
	var windows []Window
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}
		idx, _ := strconv.Atoi(parts[1])
		panes, _ := strconv.Atoi(parts[4])
		windows = append(windows, Window{
			ID:     parts[0],
			Index:  idx,
			Title:  parts[2],
			Active: parts[3] == "1",
			Panes:  panes,
		})
	}
	return windows, nil
}

// SelectWindow raises a window by id.
func (t *Tmux) SelectWindow(id string) error {
	_, err := t.Cmd.Run("tmux", "select-window", "-t", id)
	return err
}

// CurrentPane snapshots the focused pane id so a later paste can target the
// pane that had focus before the overlay opened.
func (t *Tmux) CurrentPane() (string, error) {
	out, err := t.Cmd.Run("tmux", "display-message", "-p", "#{pane_id}")
	if err != nil {
		return "", fmt.Errorf("tmux display-message: %w", err)
	}
	pane := strings.TrimSpace(string(out))
	if pane == "" {
		return "", fmt.Errorf("no focused pane")
	}
	return pane, nil
}

// PasteInto loads text into a tmux buffer and pastes it into the target
// pane, synthesizing the paste the way a user keystroke would.
func (t *Tmux) PasteInto(pane, text string) error {
	if _, err := t.Cmd.Run("tmux", "set-buffer", "-b", "gridmux", text); err != nil {
		return fmt.Errorf("tmux set-buffer: %w", err)
	}
	if _, err := t.Cmd.Run("tmux", "paste-buffer", "-d", "-b", "gridmux", "-t", pane); err != nil {
		return fmt.Errorf("tmux paste-buffer: %w", err)
	}
	return nil
}

// BindPopupKey installs a prefix binding that opens a command in a centered
// popup, closing it when the command exits.
func (t *Tmux) BindPopupKey(key, command string) error {
	_, err := t.Cmd.Run("tmux", "bind-key", key,
		"display-popup", "-E", "-w", "80%", "-h", "70%", command)
	if err != nil {
		return fmt.Errorf("tmux bind-key %s: %w", key, err)
	}
	return nil
}
