package apps

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gridmux/internal/config"
	"gridmux/internal/tmux"
)

type fakeCommander struct {
	sessions string
	has      map[string]bool
	calls    [][]string
}

func (f *fakeCommander) Run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if len(args) == 0 {
		return nil, nil
	}
	switch args[0] {
	case "list-sessions":
		return []byte(f.sessions), nil
	case "has-session":
		if f.has[args[len(args)-1]] {
			return nil, nil
		}
		return nil, fmt.Errorf("no such session")
	}
	return nil, nil
}

func (f *fakeCommander) called(sub string) bool {
	for _, c := range f.calls {
		if len(c) > 1 && c[1] == sub {
			return true
		}
	}
	return false
}

func TestEnumerateDedupesPreferringPinned(t *testing.T) {
	f := &fakeCommander{sessions: "Notes\t2\t0\nzebra\t1\t0\napi\t4\t1\n"}
	tm := &tmux.Tmux{Cmd: f}

	pinned := []config.PinnedApp{
		{Name: "notes", Path: "~/notes"},
		{Name: "blog", Path: "~/blog"},
	}
	list := Enumerate(pinned, tm)
	require.Len(t, list, 4)

	// Pinned entries first, in config order; the running session merged in.
	require.Equal(t, "notes", list[0].Name)
	require.True(t, list[0].Pinned)
	require.True(t, list[0].Running, "case-insensitive match against the session")
	require.Equal(t, 2, list[0].Windows)
	require.Equal(t, "~/notes", list[0].Path, "config start directory survives the merge")

	require.Equal(t, "blog", list[1].Name)
	require.False(t, list[1].Running)

	// Running-only sessions follow, alphabetically.
	require.Equal(t, "api", list[2].Name)
	require.Equal(t, "zebra", list[3].Name)
	require.False(t, list[2].Pinned)
}

func TestEnumerateIgnoresDuplicatePins(t *testing.T) {
	f := &fakeCommander{}
	tm := &tmux.Tmux{Cmd: f}

	pinned := []config.PinnedApp{
		{Name: "notes", Path: "~/a"},
		{Name: "Notes", Path: "~/b"},
	}
	list := Enumerate(pinned, tm)
	require.Len(t, list, 1)
	require.Equal(t, "~/a", list[0].Path, "first pin wins")
}

func TestActivateExistingSession(t *testing.T) {
	f := &fakeCommander{has: map[string]bool{"notes": true}}
	tm := &tmux.Tmux{Cmd: f}

	require.NoError(t, Activate(App{Name: "notes"}, tm))
	require.False(t, f.called("new-session"))
	require.True(t, f.called("switch-client"))
}

func TestActivateCreatesMissingSession(t *testing.T) {
	f := &fakeCommander{has: map[string]bool{}}
	tm := &tmux.Tmux{Cmd: f}

	require.NoError(t, Activate(App{Name: "blog", Path: "~/blog"}, tm))
	require.True(t, f.called("new-session"))
	require.True(t, f.called("switch-client"))
}
