package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/alecthomas/assert"

	"github.com/brightlane/sitecms/internal/domain/entities"
)

func newTestRepo(t *testing.T) (*FileRepository, string) {
	dir := filepath.Join(t.TempDir(), "data")
	r, err := NewFileRepository(dir)
	assert.NoError(t, err)
	return r, dir
}

func TestNewFileRepositoryCreatesDir(t *testing.T) {
	_, dir := newTestRepo(t)
	st, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestLoadSeedsDefaults(t *testing.T) {
	r, dir := newTestRepo(t)
	ctx := context.Background()
	defaults := []byte(`[{"id": 1}]`)

	got, err := r.Load(ctx, "services", defaults)
	assert.NoError(t, err)
	assert.Equal(t, defaults, got)

	onDisk, err := os.ReadFile(filepath.Join(dir, "services.json"))
	assert.NoError(t, err)
	assert.Equal(t, defaults, onDisk)

	// second load reads the file, not the defaults
	again, err := r.Load(ctx, "services", []byte(`[]`))
	assert.NoError(t, err)
	assert.Equal(t, defaults, again)
}

func TestSaveOverwrites(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	assert.NoError(t, r.Save(ctx, "blogs", []byte(`[{"id": 1}]`)))
	assert.NoError(t, r.Save(ctx, "blogs", []byte(`[]`)))

	got, err := r.Load(ctx, "blogs", []byte(`[{"id": 9}]`))
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	r, dir := newTestRepo(t)
	assert.NoError(t, r.Save(context.Background(), "blogs", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "blogs.json", entries[0].Name())
}

func TestMutateAbortsOnError(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	assert.NoError(t, r.Save(ctx, "blogs", []byte(`["keep"]`)))

	boom := errors.New("boom")
	err := r.Mutate(ctx, "blogs", nil, func(current []byte) ([]byte, error) {
		assert.Equal(t, []byte(`["keep"]`), current)
		return []byte(`["lost"]`), boom
	})
	assert.Equal(t, boom, err)

	got, err := r.Load(ctx, "blogs", nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`["keep"]`), got)
}

func TestMutateSerializesWriters(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Mutate(ctx, "counter", []byte("0"), func(current []byte) ([]byte, error) {
				n, err := strconv.Atoi(string(current))
				if err != nil {
					return nil, err
				}
				return []byte(strconv.Itoa(n + 1)), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := r.Load(ctx, "counter", nil)
	assert.NoError(t, err)
	assert.Equal(t, strconv.Itoa(writers), string(got))
}

func TestLoadReadErrorIsStorageError(t *testing.T) {
	r, dir := newTestRepo(t)
	// a directory where the file should be cannot be read as a file
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "blogs.json"), 0o755))

	_, err := r.Load(context.Background(), "blogs", []byte(`[]`))
	var storageErr *entities.StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "blogs", storageErr.Collection)
	assert.Equal(t, "read", storageErr.Op)
}

func TestInvalidCollectionName(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"", "..", "../etc", `a\b`} {
		_, err := r.Load(ctx, name, nil)
		assert.Error(t, err, name)
	}
}

func TestCancelledContext(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Load(ctx, "blogs", []byte(`[]`))
	assert.Equal(t, context.Canceled, err)
}

func TestPing(t *testing.T) {
	r, dir := newTestRepo(t)
	assert.NoError(t, r.Ping(context.Background()))

	assert.NoError(t, os.RemoveAll(dir))
	assert.Error(t, r.Ping(context.Background()))
}
