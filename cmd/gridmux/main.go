package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridmux/internal/anim"
	"gridmux/internal/config"
	"gridmux/internal/deps"
	"gridmux/internal/source"
	"gridmux/internal/store"
	"gridmux/internal/tmux"
	"gridmux/internal/tui"
)

var version = "dev"

var addFlag bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridmux",
	Short: "Chorded grid picker for tmux: snippets, windows, apps",
	Long: `gridmux pops a full-screen grid over the terminal. Each cell is reached
by a two-key chord: a column letter then a row letter. One picker per
subcommand; bind them to tmux popups with "gridmux bind".`,
}

func init() {
	rootCmd.Version = version
	snipsCmd.Flags().BoolVar(&addFlag, "add", false, "Open the new-snippet dialog directly")
	rootCmd.AddCommand(snipsCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(bindCmd)
}

func ensureDeps() error {
	missing := deps.Check()
	if len(missing) == 0 {
		return nil
	}
	for _, dep := range missing {
		fmt.Fprintf(os.Stderr, "Missing dependency: %s (%s)\n", dep.Name, deps.InstallHint(dep))
	}
	return fmt.Errorf("missing required dependencies")
}

func loadServices() (*config.Config, *tmux.Tmux, error) {
	if err := ensureDeps(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, tmux.New(), nil
}

var snipsCmd = &cobra.Command{
	Use:   "snips",
	Short: "Pick a snippet and paste it into the focused pane",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := loadServices()
		if err != nil {
			return err
		}

		// Snapshot the pane that has focus now; by the time the overlay
		// closes, the popup owns focus and the answer would be wrong.
		pane := ""
		if t.IsInsideTmux() {
			pane, _ = t.CurrentPane()
		}

		st, err := store.Load()
		if err != nil {
			return err
		}
		src := source.NewSnippets(st, t, pane)

		gc, err := cfg.Grid(true)
		if err != nil {
			return err
		}
		return runPicker(tui.Deps{
			Src:        src,
			Grid:       gc,
			Chords:     cfg.Chords(),
			OnAdd:      func(body string) error { return src.Add("", body) },
			StartInAdd: addFlag,
			Warning:    st.Warning,
		}, src)
	},
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Pick a window of the current tmux session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := loadServices()
		if err != nil {
			return err
		}
		if !t.IsInsideTmux() {
			return fmt.Errorf("not inside tmux")
		}
		src, err := source.LoadWindows(t)
		if err != nil {
			return err
		}
		gc, err := cfg.Grid(false)
		if err != nil {
			return err
		}
		return runPicker(tui.Deps{Src: src, Grid: gc, Chords: cfg.Chords()}, src)
	},
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Pick a pinned app or running session to switch to",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := loadServices()
		if err != nil {
			return err
		}
		src, err := source.LoadApps(cfg, t)
		if err != nil {
			return err
		}
		gc, err := cfg.Grid(false)
		if err != nil {
			return err
		}
		return runPicker(tui.Deps{Src: src, Grid: gc, Chords: cfg.Chords()}, src)
	},
}

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Register tmux popup keybindings for the configured pickers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := loadServices()
		if err != nil {
			return err
		}
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		for _, b := range cfg.Bindings {
			if err := t.BindPopupKey(b.Key, exe+" "+b.Picker); err != nil {
				return fmt.Errorf("bind %s: %w", b.Key, err)
			}
			fmt.Printf("prefix+%s -> gridmux %s\n", b.Key, b.Picker)
		}
		return nil
	},
}

// runPicker opens the overlay and performs activation only after it has
// fully closed, so the payload lands in the window that regains focus.
func runPicker(d tui.Deps, src source.Source) error {
	d.Clock = anim.RealClock()
	idx, err := tui.Run(d)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}
	return src.Activate(idx)
}
