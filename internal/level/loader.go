package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Loader reads levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	return &Loader{fsys: campaignFS, root: "campaign"}
}

// NewLoader returns a loader over a directory of level files.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: "."}
}

// LoadAll loads every level file, sorted by ID. Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		lvl, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking %s: %w", l.root, err)
	}

	slices.SortFunc(levels, func(a, b Level) int { return a.ID - b.ID })
	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("level: reading %s: %w", p, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("level: parsing %s: %w", p, err)
	}
	lvl.Path = p
	return lvl, nil
}

// Load returns the level with the given ID.
func (l *Loader) Load(id int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}
