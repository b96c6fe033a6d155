package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/brightlane/sitecms/internal/domain/entities"
	"github.com/brightlane/sitecms/internal/ports"
)

const fileExt = ".json"

// FileRepository stores each collection as a JSON file in one directory
type FileRepository struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileRepository creates the data directory if needed
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileRepository{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

var _ ports.CollectionRepository = (*FileRepository)(nil)

// Path returns the file backing the named collection
func (r *FileRepository) Path(name string) string {
	return filepath.Join(r.dir, name+fileExt)
}

func (r *FileRepository) lock(name string) func() {
	r.mu.Lock()
	l, ok := r.locks[name]
	if !ok {
		l = &sync.Mutex{}
		r.locks[name] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (r *FileRepository) Load(ctx context.Context, name string, defaults []byte) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := r.lock(name)
	defer unlock()

	return r.load(name, defaults)
}

func (r *FileRepository) Save(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := r.lock(name)
	defer unlock()

	return r.save(name, data)
}

func (r *FileRepository) Mutate(ctx context.Context, name string, defaults []byte, fn ports.MutateFunc) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := r.lock(name)
	defer unlock()

	current, err := r.load(name, defaults)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	return r.save(name, next)
}

// Ping checks that the data directory is still there
func (r *FileRepository) Ping(ctx context.Context) error {
	st, err := os.Stat(r.dir)
	if err != nil {
		return &entities.StorageError{Collection: r.dir, Op: "stat", Err: err}
	}
	if !st.IsDir() {
		return &entities.StorageError{Collection: r.dir, Op: "stat", Err: errors.New("not a directory")}
	}
	return nil
}

func (r *FileRepository) load(name string, defaults []byte) ([]byte, error) {
	path := r.Path(name)

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, &entities.StorageError{Collection: name, Op: "read", Err: err}
	}

	if err := r.save(name, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (r *FileRepository) save(name string, data []byte) error {
	if err := writeFileAtomic(r.Path(name), data, 0o644); err != nil {
		return &entities.StorageError{Collection: name, Op: "write", Err: err}
	}
	return nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid collection name %q", name)
	}
	return nil
}

// writeFileAtomic writes into a temporary file in the destination directory
// and renames it over path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	didRename := false
	defer func() {
		if !didRename {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	// https://www.joeshaw.org/dont-defer-close-on-writable-files/
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return err
	}
	didRename = true

	// best effort: persist the rename itself
	if d, _ := os.Open(dir); d != nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
