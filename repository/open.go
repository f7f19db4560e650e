package repository

import (
	"fmt"

	"bellsync/config"
	"bellsync/db"
)

// Open builds the repository selected by STORE_BACKEND. The returned close
// function releases any connection it opened.
func Open(cfg *config.Config) (DocumentRepository, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		return NewFileDocumentRepository(cfg.DataFile), func() error { return nil }, nil
	case config.StoreBackendMySQL:
		gdb, err := db.ConnectGormDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewGormDocumentRepository(gdb)
		if err != nil {
			db.CloseGormDB(gdb)
			return nil, nil, err
		}
		return repo, func() error { return db.CloseGormDB(gdb) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
