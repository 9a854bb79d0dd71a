package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theoremus-urban-solutions/tramline/network"
)

// Postgres reads and writes the network tables through a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// EnsureSchema creates the network tables when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Import replaces the stored network with n in one transaction.
func (p *Postgres) Import(ctx context.Context, n *network.Network) error {
	if err := p.EnsureSchema(ctx); err != nil {
		return err
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range tableNames {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	doc := n.Document()
	var stations, colors, orders, geometries [][]any
	for _, st := range doc.Stations {
		stations = append(stations, []any{st.ID, st.Name, st.Lat, st.Lng})
		for _, c := range st.ColorKeys() {
			colors = append(colors, []any{st.ID, c})
		}
	}
	for _, c := range colorKeys(doc.LineOrders) {
		for seq, id := range doc.LineOrders[c] {
			orders = append(orders, []any{c, seq, id})
		}
	}
	for _, c := range colorKeys(doc.LineGeometries) {
		for seq, pt := range doc.LineGeometries[c] {
			geometries = append(geometries, []any{c, seq, pt.Lat, pt.Lng})
		}
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"stations", []string{"id", "name", "lat", "lng"}, stations},
		{"station_colors", []string{"station_id", "color"}, colors},
		{"line_orders", []string{"color", "seq", "station_id"}, orders},
		{"line_geometries", []string{"color", "seq", "lat", "lng"}, geometries},
	}
	for _, c := range copies {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("failed to copy %s: %w", c.table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// Load reads the stored network.
func (p *Postgres) Load(ctx context.Context) (*network.Network, error) {
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
		r, err := p.pool.Query(ctx, step.query)
		if err != nil {
			return nil, fmt.Errorf("failed to query network tables: %w", err)
		}
		err = step.read(r)
		r.Close()
		if err != nil {
			return nil, err
		}
	}
	return t.network()
}
