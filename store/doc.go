// Package store reads and writes the network tables kept in a database.
//
// Four tables hold a network:
//
//	stations(id, name, lat, lng)
//	station_colors(station_id, color)
//	line_orders(color, seq, station_id)
//	line_geometries(color, seq, lat, lng)
//
// SQLite (modernc.org/sqlite, pure Go) serves local files and tests;
// PostgreSQL (pgx) serves a shared deployment. Both produce a
// network.Network through network.FromDocument, so the same validation
// applies as for network files.
package store
