package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/tramline/network"

	_ "modernc.org/sqlite"
)

// SQLite wraps a SQL database connection for SQLite.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the network tables when missing.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Import replaces the stored network with n in one transaction.
func (s *SQLite) Import(ctx context.Context, n *network.Network) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range tableNames {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	doc := n.Document()
	for _, st := range doc.Stations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stations (id, name, lat, lng) VALUES (?, ?, ?, ?)`,
			st.ID, st.Name, st.Lat, st.Lng); err != nil {
			return fmt.Errorf("failed to insert station %s: %w", st.ID, err)
		}
		for _, color := range st.ColorKeys() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO station_colors (station_id, color) VALUES (?, ?)`,
				st.ID, color); err != nil {
				return fmt.Errorf("failed to insert color of station %s: %w", st.ID, err)
			}
		}
	}
	for _, color := range colorKeys(doc.LineOrders) {
		for seq, id := range doc.LineOrders[color] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO line_orders (color, seq, station_id) VALUES (?, ?, ?)`,
				color, seq, id); err != nil {
				return fmt.Errorf("failed to insert order of line %s: %w", color, err)
			}
		}
	}
	for _, color := range colorKeys(doc.LineGeometries) {
		for seq, p := range doc.LineGeometries[color] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO line_geometries (color, seq, lat, lng) VALUES (?, ?, ?, ?)`,
				color, seq, p.Lat, p.Lng); err != nil {
				return fmt.Errorf("failed to insert geometry of line %s: %w", color, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// Load reads the stored network.
func (s *SQLite) Load(ctx context.Context) (*network.Network, error) {
	t := newTableReader()
	steps := []struct {
		query string
		read  func(rows) error
	}{
		{selectStations, t.readStations},
		{selectColors, t.readColors},
		{selectOrders, t.readOrders},
		{selectGeometries, t.readGeometries},
	}
	for _, step := range steps {
		if err := s.query(ctx, step.query, step.read); err != nil {
			return nil, err
		}
	}
	return t.network()
}

func (s *SQLite) query(ctx context.Context, query string, read func(rows) error) error {
	r, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query network tables: %w", err)
	}
	defer r.Close()
	return read(r)
}
