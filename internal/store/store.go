package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snippet is one saved clipboard entry. Title is what the grid shows; Body
// is what gets pasted.
type Snippet struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Store persists snippets as a small JSON file under the user config dir.
// There is a single mutator (the UI event loop), so writes are synchronous
// and unguarded.
type Store struct {
	Snippets []Snippet `json:"snippets"`
	path     string

	// Warning is set when the on-disk file could not be decoded and the
	// store recovered by starting empty. Corruption is never fatal.
	Warning string `json:"-"`
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridmux")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gridmux")
}

// DefaultPath is the fixed per-user snippet file.
func DefaultPath() string {
	return filepath.Join(configDir(), "snippets.json")
}

func Load() (*Store, error) {
	return LoadPath(DefaultPath())
}

func LoadPath(path string) (*Store, error) {
	s := &Store{path: path, Snippets: []Snippet{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		// Corrupt store: warn and start over rather than crash.
		return &Store{
			path:     path,
			Snippets: []Snippet{},
			Warning:  fmt.Sprintf("snippet store unreadable, starting empty: %v", err),
		}, nil
	}
	s.path = path

	// Entries that decoded but carry no body are dropped, not kept as
	// unactivatable ghosts.
	kept := s.Snippets[:0]
	for _, sn := range s.Snippets {
		if sn.Body == "" {
			continue
		}
		if sn.Title == "" {
			sn.Title = firstLine(sn.Body)
		}
		kept = append(kept, sn)
	}
	s.Snippets = kept
	return s, nil
}

// Save writes atomically: marshal to a temp file in the same directory, then
// rename over the target. A failed write leaves the previous file intact and
// the in-memory state untouched.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".snippets-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

func (s *Store) Add(title, body string) {
	if title == "" {
		title = firstLine(body)
	}
	s.Snippets = append(s.Snippets, Snippet{Title: title, Body: body})
}

// Remove deletes by index. Out-of-range indices are ignored.
func (s *Store) Remove(i int) {
	if i < 0 || i >= len(s.Snippets) {
		return
	}
	s.Snippets = append(s.Snippets[:i], s.Snippets[i+1:]...)
}

func (s *Store) Len() int { return len(s.Snippets) }

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
