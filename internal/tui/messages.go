package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridmux/internal/tui/theme"
)

type toastType int

const (
	toastSuccess toastType = iota
	toastError
	toastWarning
	toastInfo
)

const toastDuration = 2 * time.Second

type toast struct {
	message   string
	kind      toastType
	expiresAt time.Time
}

func (t *toast) expired(now time.Time) bool {
	return now.After(t.expiresAt)
}

type toastExpiredMsg struct{}

func toastExpireCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (t *toast) render() string {
	var style lipgloss.Style
	var icon string

	switch t.kind {
	case toastSuccess:
		style = theme.ToastSuccessStyle
		icon = "✓ "
	case toastError:
		style = theme.ToastErrorStyle
		icon = "✗ "
	case toastWarning:
		style = theme.ToastWarningStyle
		icon = "! "
	case toastInfo:
		style = theme.ToastInfoStyle
		icon = "· "
	}

	return style.Render(icon + t.message)
}

// animTickMsg wakes the model to fire due animation steps.
type animTickMsg struct{}
