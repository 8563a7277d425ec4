package paste

import (
	"fmt"

	"github.com/atotto/clipboard"

	"gridmux/internal/tmux"
)

// Injector places text on the system clipboard and synthesizes a paste into
// a target pane. The caller decides which pane: restoring prior focus is the
// overlay's responsibility, not ours.
type Injector struct {
	Tmux *tmux.Tmux
}

func (in *Injector) Paste(pane, text string) error {
	// Clipboard write is best effort: a headless box without a clipboard
	// provider can still paste through tmux.
	_ = clipboard.WriteAll(text)

	if pane == "" {
		return fmt.Errorf("no target pane")
	}
	return in.Tmux.PasteInto(pane, text)
}
