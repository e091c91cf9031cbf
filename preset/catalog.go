package preset

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/afero"

	"github.com/amonks/routine/internal/ids"
	internalstrings "github.com/amonks/routine/internal/strings"
)

// Catalog is a directory of preset files named <id>.toml or <id>.yaml.
type Catalog struct {
	fs     afero.Fs
	dir    string
	logger *log.Logger
}

// CatalogOptions configures a Catalog.
type CatalogOptions struct {
	// Logger receives warnings about unreadable preset files. Defaults to stderr.
	Logger *log.Logger

	// Fs holds the preset files. Defaults to the OS filesystem.
	Fs afero.Fs
}

// NewCatalog returns a catalog rooted at dir.
func NewCatalog(dir string, opts CatalogOptions) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "preset: ", log.LstdFlags)
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Catalog{fs: fs, dir: dir, logger: logger}
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string {
	return c.dir
}

type entry struct {
	preset Preset
	path   string
}

// List returns every readable preset sorted by name. Files that fail to
// decode or validate are logged and skipped. A missing directory is empty.
func (c *Catalog) List() ([]Preset, error) {
	entries, err := c.entries()
	if err != nil {
		return nil, err
	}
	presets := make([]Preset, len(entries))
	for i, e := range entries {
		presets[i] = e.preset
	}
	return presets, nil
}

func (c *Catalog) entries() ([]entry, error) {
	dirEntries, err := afero.ReadDir(c.fs, c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preset dir: %w", err)
	}

	var entries []entry
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, dirEntry.Name())
		format, err := FormatOf(path)
		if err != nil {
			continue
		}
		p, err := c.readFile(path, format)
		if err != nil {
			c.logger.Printf("skip %s: %v", path, err)
			continue
		}
		entries = append(entries, entry{preset: p, path: path})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].preset, entries[j].preset
		if !strings.EqualFold(a.Name, b.Name) {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return a.ID < b.ID
	})
	return entries, nil
}

func (c *Catalog) readFile(path string, format Format) (Preset, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return Preset{}, err
	}
	p, err := Unmarshal(data, format)
	if err != nil {
		return Preset{}, err
	}
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := Validate(p); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Load finds a preset by exact id, then by case-insensitive name, then by
// unique id prefix.
func (c *Catalog) Load(idOrName string) (Preset, error) {
	e, err := c.find(idOrName)
	if err != nil {
		return Preset{}, err
	}
	return e.preset, nil
}

func (c *Catalog) find(idOrName string) (entry, error) {
	entries, err := c.entries()
	if err != nil {
		return entry{}, err
	}
	needle := strings.TrimSpace(idOrName)

	for _, e := range entries {
		if e.preset.ID == needle {
			return e, nil
		}
	}
	for _, e := range entries {
		if strings.EqualFold(internalstrings.NormalizeWhitespace(e.preset.Name), internalstrings.NormalizeWhitespace(needle)) {
			return e, nil
		}
	}

	presetIDs := make([]string, len(entries))
	for i, e := range entries {
		presetIDs[i] = e.preset.ID
	}
	match, found, ambiguous := ids.MatchPrefix(presetIDs, needle)
	if ambiguous {
		return entry{}, fmt.Errorf("%w: %q", ErrAmbiguousPreset, idOrName)
	}
	if found {
		for _, e := range entries {
			if e.preset.ID == match {
				return e, nil
			}
		}
	}
	return entry{}, fmt.Errorf("%w: %q", ErrPresetNotFound, idOrName)
}

// Save validates p and writes it as <id>.<format>, replacing any file for the
// same id in the other format. It returns the written path.
func (c *Catalog) Save(p Preset, format Format) (string, error) {
	if err := Validate(p); err != nil {
		return "", err
	}
	data, err := Marshal(p, format)
	if err != nil {
		return "", err
	}
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create preset dir: %w", err)
	}

	path := filepath.Join(c.dir, p.ID+format.Ext())
	if err := c.writeFile(path, data); err != nil {
		return "", fmt.Errorf("write preset: %w", err)
	}

	for _, other := range []Format{FormatTOML, FormatYAML} {
		if other == format {
			continue
		}
		stale := filepath.Join(c.dir, p.ID+other.Ext())
		if err := c.fs.Remove(stale); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("remove stale preset: %w", err)
		}
	}
	return path, nil
}

// writeFile replaces path atomically on the OS filesystem and with a plain
// write elsewhere.
func (c *Catalog) writeFile(path string, data []byte) error {
	if _, ok := c.fs.(*afero.OsFs); ok {
		return atomic.WriteFile(path, bytes.NewReader(data))
	}
	return afero.WriteFile(c.fs, path, data, 0o644)
}

// Delete removes the preset matching idOrName and returns it.
func (c *Catalog) Delete(idOrName string) (Preset, error) {
	e, err := c.find(idOrName)
	if err != nil {
		return Preset{}, err
	}
	if err := c.fs.Remove(e.path); err != nil {
		return Preset{}, fmt.Errorf("delete preset: %w", err)
	}
	return e.preset, nil
}
