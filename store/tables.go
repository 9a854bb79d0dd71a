package store

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS stations (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	lat  DOUBLE PRECISION NOT NULL,
	lng  DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS station_colors (
	station_id TEXT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
	color      TEXT NOT NULL,
	PRIMARY KEY (station_id, color)
);
CREATE TABLE IF NOT EXISTS line_orders (
	color      TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	station_id TEXT NOT NULL,
	PRIMARY KEY (color, seq)
);
CREATE TABLE IF NOT EXISTS line_geometries (
	color TEXT NOT NULL,
	seq   INTEGER NOT NULL,
	lat   DOUBLE PRECISION NOT NULL,
	lng   DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (color, seq)
);
`

var tableNames = []string{"station_colors", "stations", "line_orders", "line_geometries"}

const (
	selectStations   = `SELECT id, name, lat, lng FROM stations ORDER BY id`
	selectColors     = `SELECT station_id, color FROM station_colors ORDER BY station_id, color`
	selectOrders     = `SELECT color, station_id FROM line_orders ORDER BY color, seq`
	selectGeometries = `SELECT color, lat, lng FROM line_geometries ORDER BY color, seq`
)

// rows is the part of *sql.Rows and pgx.Rows the readers need.
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// tableReader accumulates the four tables into a network document.
type tableReader struct {
	doc      network.Document
	stations map[string]int
}

func newTableReader() *tableReader {
	return &tableReader{
		doc: network.Document{
			LineOrders:     map[string][]string{},
			LineGeometries: map[string][]geo.Point{},
		},
		stations: map[string]int{},
	}
}

func (t *tableReader) readStations(r rows) error {
	for r.Next() {
		var s network.Station
		if err := r.Scan(&s.ID, &s.Name, &s.Lat, &s.Lng); err != nil {
			return fmt.Errorf("failed to scan station: %w", err)
		}
		t.stations[s.ID] = len(t.doc.Stations)
		t.doc.Stations = append(t.doc.Stations, s)
	}
	return r.Err()
}

func (t *tableReader) readColors(r rows) error {
	for r.Next() {
		var id, color string
		if err := r.Scan(&id, &color); err != nil {
			return fmt.Errorf("failed to scan station color: %w", err)
		}
		i, ok := t.stations[id]
		if !ok {
			return fmt.Errorf("color %q references unknown station %q", color, id)
		}
		t.doc.Stations[i].Colors = append(t.doc.Stations[i].Colors, network.LineColor(color))
	}
	return r.Err()
}

func (t *tableReader) readOrders(r rows) error {
	for r.Next() {
		var color, id string
		if err := r.Scan(&color, &id); err != nil {
			return fmt.Errorf("failed to scan line order: %w", err)
		}
		t.doc.LineOrders[color] = append(t.doc.LineOrders[color], id)
	}
	return r.Err()
}

func (t *tableReader) readGeometries(r rows) error {
	for r.Next() {
		var color string
		var p geo.Point
		if err := r.Scan(&color, &p.Lat, &p.Lng); err != nil {
			return fmt.Errorf("failed to scan line geometry: %w", err)
		}
		t.doc.LineGeometries[color] = append(t.doc.LineGeometries[color], p)
	}
	return r.Err()
}

func (t *tableReader) network() (*network.Network, error) {
	return network.FromDocument(t.doc)
}

// colorKeys returns the keys of m in sorted order so imports are
// reproducible.
func colorKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
