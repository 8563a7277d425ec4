package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"gridmux/internal/grid"
)

const (
	defaultColumns = "jkl"
	defaultRows    = "asdfg"
	defaultPerPage = 14
)

// PinnedApp is one configured entry for the apps picker, analogous to a
// dock-pinned application: a name plus the directory its session starts in.
type PinnedApp struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// Binding ties a tmux prefix key to a picker for `gridmux bind`.
type Binding struct {
	Key    string `mapstructure:"key"`
	Picker string `mapstructure:"picker"`
}

type Config struct {
	Columns    string      `mapstructure:"columns"`
	Rows       string      `mapstructure:"rows"`
	PerPage    int         `mapstructure:"per_page"`
	DeleteKey  string      `mapstructure:"delete_key"`
	NextKey    string      `mapstructure:"next_page_key"`
	PrevKey    string      `mapstructure:"prev_page_key"`
	Pinned     []PinnedApp `mapstructure:"pinned"`
	Bindings   []Binding   `mapstructure:"bindings"`
}

func defaultConfig() *Config {
	return &Config{
		Columns:   defaultColumns,
		Rows:      defaultRows,
		PerPage:   defaultPerPage,
		DeleteKey: "x",
		NextKey:   "]",
		PrevKey:   "[",
		Bindings: []Binding{
			{Key: "v", Picker: "snips"},
			{Key: "w", Picker: "windows"},
			{Key: "a", Picker: "apps"},
		},
	}
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "gridmux"))
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gridmux"))
	v.SetConfigType("yaml")

	v.SetDefault("columns", defaultColumns)
	v.SetDefault("rows", defaultRows)
	v.SetDefault("per_page", defaultPerPage)
	v.SetDefault("delete_key", "x")
	v.SetDefault("next_page_key", "]")
	v.SetDefault("prev_page_key", "[")

	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, cfg.validate()
	}

	// fallback to TOML if yaml missing
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, cfg.validate()
	}

	return cfg, cfg.validate()
}

// Grid builds the immutable grid config for one picker. The snippet picker
// reserves the top-left cell for "add new"; the others use every cell.
func (c *Config) Grid(reserveAdd bool) (grid.Config, error) {
	gc := grid.Config{
		Columns: splitKeys(c.Columns),
		Rows:    splitKeys(c.Rows),
		PerPage: c.PerPage,
	}
	if reserveAdd {
		gc.Reserved = &grid.Cell{Row: 0, Col: 0}
		gc.ReservedTag = "+ new"
	}
	if err := gc.Validate(); err != nil {
		return grid.Config{}, err
	}
	return gc, nil
}

// Chords assembles the control-key layer from config.
func (c *Config) Chords() grid.Chords {
	ch := grid.DefaultChords()
	if c.DeleteKey != "" {
		ch.Delete = []string{c.DeleteKey}
	}
	if c.NextKey != "" {
		ch.PageNext = []string{c.NextKey, "right"}
	}
	if c.PrevKey != "" {
		ch.PagePrev = []string{c.PrevKey, "left"}
	}
	return ch
}

// validate fails fast on a sizing violation so it never surfaces at render
// time.
func (c *Config) validate() error {
	if _, err := c.Grid(true); err != nil {
		return err
	}
	for _, k := range append(splitKeys(c.Columns), splitKeys(c.Rows)...) {
		if k == c.DeleteKey || k == c.NextKey || k == c.PrevKey {
			return fmt.Errorf("%w: control key %q collides with a grid letter", grid.ErrInvalidConfig, k)
		}
	}
	return nil
}

// splitKeys accepts either "jkl" or "j,k,l".
func splitKeys(s string) []string {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.Contains(s, ",") {
		var keys []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				keys = append(keys, p)
			}
		}
		return keys
	}
	keys := make([]string, 0, len(s))
	for _, r := range s {
		keys = append(keys, string(r))
	}
	return keys
}
