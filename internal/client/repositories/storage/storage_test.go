package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend interface {
	Repository
	Updater
}

func setupSQLite(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), db
}

func backends(t *testing.T) map[string]func(t *testing.T) backend {
	return map[string]func(t *testing.T) backend{
		"sqlite": func(t *testing.T) backend {
			r, _ := setupSQLite(t)
			return r
		},
		"file": func(t *testing.T) backend {
			r, err := NewFileRepository(filepath.Join(t.TempDir(), "kv"))
			require.NoError(t, err)
			return r
		},
		"memory": func(t *testing.T) backend {
			return NewMemoryRepository()
		},
	}
}

func TestRepository_Contract(t *testing.T) {
	for name, mk := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("missing key reads as nil", func(t *testing.T) {
				r := mk(t)
				v, err := r.Get(ctx, "accounts")
				require.NoError(t, err)
				assert.Nil(t, v)
			})

			t.Run("set then get", func(t *testing.T) {
				r := mk(t)
				require.NoError(t, r.Set(ctx, "accounts", []byte(`[]`)))
				v, err := r.Get(ctx, "accounts")
				require.NoError(t, err)
				assert.Equal(t, []byte(`[]`), v)
			})

			t.Run("set overwrites", func(t *testing.T) {
				r := mk(t)
				require.NoError(t, r.Set(ctx, "currentUser", []byte("a@x.com")))
				require.NoError(t, r.Set(ctx, "currentUser", []byte("b@x.com")))
				v, err := r.Get(ctx, "currentUser")
				require.NoError(t, err)
				assert.Equal(t, []byte("b@x.com"), v)
			})

			t.Run("delete is idempotent", func(t *testing.T) {
				r := mk(t)
				require.NoError(t, r.Set(ctx, "currentUser", []byte("a@x.com")))
				require.NoError(t, r.Delete(ctx, "currentUser"))
				require.NoError(t, r.Delete(ctx, "currentUser"))
				v, err := r.Get(ctx, "currentUser")
				require.NoError(t, err)
				assert.Nil(t, v)
			})

			t.Run("list and clear", func(t *testing.T) {
				r := mk(t)
				require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
				require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

				m, err := r.List(ctx)
				require.NoError(t, err)
				assert.Len(t, m, 2)
				assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])

				require.NoError(t, r.Clear(ctx))
				m, err = r.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, m)
			})

			t.Run("update sees old value", func(t *testing.T) {
				r := mk(t)
				require.NoError(t, r.Set(ctx, "n", []byte("1")))
				require.NoError(t, r.Update(ctx, "n", func(old []byte) ([]byte, error) {
					return append(old, '2'), nil
				}))
				v, err := r.Get(ctx, "n")
				require.NoError(t, err)
				assert.Equal(t, []byte("12"), v)
			})

			t.Run("update of missing key gets nil", func(t *testing.T) {
				r := mk(t)
				var seen []byte = []byte("sentinel")
				require.NoError(t, r.Update(ctx, "fresh", func(old []byte) ([]byte, error) {
					seen = old
					return []byte("v"), nil
				}))
				assert.Nil(t, seen)
			})

			t.Run("update error leaves value untouched", func(t *testing.T) {
				r := mk(t)
				require.NoError(t, r.Set(ctx, "k", []byte("keep")))
				boom := errors.New("boom")
				err := r.Update(ctx, "k", func(old []byte) ([]byte, error) {
					return nil, boom
				})
				require.ErrorIs(t, err, boom)
				v, err := r.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, []byte("keep"), v)
			})
		})
	}
}

func TestSQLiteRepository_ErrorsWrapped(t *testing.T) {
	r, db := setupSQLite(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "accounts")
	require.ErrorContains(t, err, "failed to get storage[accounts]")

	err = r.Set(ctx, "accounts", []byte("[]"))
	require.ErrorContains(t, err, "failed to set storage[accounts]")

	err = r.Delete(ctx, "accounts")
	require.ErrorContains(t, err, "failed to delete storage[accounts]")

	err = r.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear storage")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list storage")
}

func TestOpenSQLite_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='storage'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	r, closeFn, err := OpenDurable(ctx, BackendSQLite, dir)
	require.NoError(t, err)
	require.NoError(t, r.Set(ctx, "accounts", []byte(`[{"email":"a@x.com"}]`)))
	require.NoError(t, closeFn())

	r, closeFn, err = OpenDurable(ctx, BackendSQLite, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	v, err := r.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"email":"a@x.com"}]`, string(v))
}

func TestFileRepository_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Set(ctx, "accounts", []byte(`[]`)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "accounts.kv", entries[0].Name())

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileRepository_InvalidKey(t *testing.T) {
	r, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		err := r.Set(ctx, key, []byte("x"))
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestFileRepository_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRepository(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("hi"), 0o600))
	require.NoError(t, r.Set(context.Background(), "accounts", []byte("[]")))

	m, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, m, 1)
	for k := range m {
		assert.False(t, strings.HasSuffix(k, ".txt"))
	}
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("a@x.com")
	require.NoError(t, r.Set(ctx, "currentUser", in))
	in[0] = 'z'

	out, err := r.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", string(out))

	out[0] = 'q'
	again, err := r.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", string(again))
}

func TestOpenDurable_Backends(t *testing.T) {
	ctx := context.Background()

	r, closeFn, err := OpenDurable(ctx, BackendFile, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.IsType(t, &FileRepository{}, r)

	_, _, err = OpenDurable(ctx, Backend("redis"), t.TempDir())
	require.ErrorIs(t, err, ErrUnknownBackend)
}
