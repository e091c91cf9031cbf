package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Dir stores each key as <dir>/<key>.json.
type Dir struct {
	fs  afero.Fs
	dir string
}

// NewDir returns a Dir on the OS filesystem.
func NewDir(dir string) *Dir {
	return NewDirFs(afero.NewOsFs(), dir)
}

// NewDirFs returns a Dir on fs.
func NewDirFs(fs afero.Fs, dir string) *Dir {
	return &Dir{fs: fs, dir: dir}
}

// Path returns the file that holds key.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.dir, key+".json")
}

// Get reads the document for key.
func (d *Dir) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(d.fs, d.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the document for key through a temp file and a rename so a
// crash never leaves a half-written document behind.
func (d *Dir) Set(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := d.fs.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := afero.TempFile(d.fs, d.dir, key+".json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	_, err = tmp.Write(data)
	if err1 := tmp.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		d.fs.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := d.fs.Rename(name, d.Path(key)); err != nil {
		d.fs.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (d *Dir) Close() error {
	return nil
}
