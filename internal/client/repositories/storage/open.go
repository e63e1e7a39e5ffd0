package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend names a durable storage implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
)

// DatabaseFile and FilesDir are the names used inside the data directory.
const (
	DatabaseFile = "profilekeeper.db"
	FilesDir     = "storage"
)

// OpenDurable opens the durable backend rooted at dataDir. The returned
// close function releases the backend's resources.
func OpenDurable(ctx context.Context, backend Backend, dataDir string) (Repository, func() error, error) {
	switch backend {
	case BackendSQLite, "":
		db, err := OpenSQLite(ctx, filepath.Join(dataDir, DatabaseFile))
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteRepository(db), db.Close, nil
	case BackendFile:
		r, err := NewFileRepository(filepath.Join(dataDir, FilesDir))
		if err != nil {
			return nil, nil, err
		}
		return r, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
