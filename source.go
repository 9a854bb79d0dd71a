package tramline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/theoremus-urban-solutions/tramline/config"
	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/store"
)

// LoadNetwork reads the network named by cfg. When cfg.CachePath is set a
// gob cache is read first and written after a successful load.
func LoadNetwork(ctx context.Context, cfg config.NetworkConfig) (*network.Network, error) {
	if cfg.CachePath != "" {
		if _, err := os.Stat(cfg.CachePath); err == nil {
			n, err := network.DeserializeFromFile(cfg.CachePath)
			if err == nil {
				log.Printf("Loaded network from cache %s (%d stations)", cfg.CachePath, n.NumStations())
				return n, nil
			}
			log.Printf("Ignoring network cache %s: %v", cfg.CachePath, err)
		}
	}

	n, err := loadSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded network from %s source (%d stations, %d lines)", cfg.Source, n.NumStations(), len(n.Colors()))

	if cfg.CachePath != "" {
		if err := network.SerializeToFile(n, cfg.CachePath); err != nil {
			log.Printf("Failed to write network cache %s: %v", cfg.CachePath, err)
		}
	}
	return n, nil
}

func loadSource(ctx context.Context, cfg config.NetworkConfig) (*network.Network, error) {
	switch cfg.Source {
	case "", "file":
		return network.LoadFile(cfg.Path)
	case "gtfs":
		return network.LoadGTFS(cfg.Path, cfg.ColorByRoute)
	case "sqlite":
		db, err := store.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		return db.Load(ctx)
	case "postgres":
		db, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Load(ctx)
	default:
		return nil, fmt.Errorf("unsupported network source %q", cfg.Source)
	}
}

// ImportNetwork writes n into the SQLite file at path, or into PostgreSQL
// when databaseURL is set, replacing the tables already there.
func ImportNetwork(ctx context.Context, n *network.Network, path, databaseURL string) error {
	if databaseURL != "" {
		db, err := store.OpenPostgres(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Import(ctx, n)
	}
	if path == "" {
		return errors.New("import needs a SQLite path or a database URL")
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.Import(ctx, n)
}
