package store

import (
	"fmt"
	"path/filepath"

	"github.com/rmalloy/gantry/internal/config"
)

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "gantry.db"

// Open creates the configured store rooted at the gantry data directory.
func Open(cfg *config.StorageConfig, dataDir string) (Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, SQLiteFileName))
	case config.BackendFiles, "":
		return NewFileStore(dataDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
