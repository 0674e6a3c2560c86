package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/chitieu/chitieu/internal/database"
	"github.com/chitieu/chitieu/pkg/google"
	"github.com/chitieu/chitieu/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Store is the repository selected by the storage driver together with whatever must be released
// on shutdown.
type Store struct {
	Repository storage.Repository
	close      func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore creates the repository for cfg.Storage.Driver.
func OpenStore(ctx context.Context, cfg config.Application, loc *time.Location) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, StorageTimeout(cfg.Storage))
	defer cancel()

	switch cfg.Storage.Driver {
	case "", config.StorageMemory:
		log.Warn("Using in-memory storage, expenses are lost on restart")
		return &Store{Repository: storage.NewMemoryRepository()}, nil

	case config.StoragePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Database); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{Repository: storage.NewPostgresRepository(db, loc), close: db.Close}, nil

	case config.StorageSheets:
		credentials, err := google.Credentials(cfg.Sheets.CredentialsJSON, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, err
		}
		// the client outlives the startup deadline
		client, err := google.ServiceAccountClient(context.Background(), credentials)
		if err != nil {
			return nil, err
		}
		service, err := google.NewSheetsService(ctx, client)
		if err != nil {
			return nil, err
		}
		repo := storage.NewSheetsRepository(service, cfg.Sheets.SpreadsheetId, cfg.Sheets.SheetName, loc)
		if err := repo.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		log.Infof("Mirroring expenses to spreadsheet %s (%s)", cfg.Sheets.SpreadsheetId, cfg.Sheets.SheetName)
		return &Store{Repository: repo}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
