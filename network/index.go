package network

import (
	"sort"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// Network stores stations and per-color line tables in memory for fast lookups.
type Network struct {
	stations       map[string]Station        // station_id -> station
	lineOrders     map[string][]string       // color key -> ordered station ids
	lineGeometries map[string][]geo.Point    // color key -> authored polyline
	stationIdx     map[string]map[string]int // color key -> station_id -> first index in order
}

// New creates an empty network.
func New() *Network {
	return &Network{
		stations:       map[string]Station{},
		lineOrders:     map[string][]string{},
		lineGeometries: map[string][]geo.Point{},
		stationIdx:     map[string]map[string]int{},
	}
}

// AddStation inserts or replaces a station.
func (n *Network) AddStation(s Station) {
	n.stations[s.ID] = s
}

// SetLineOrder replaces the station order of color.
func (n *Network) SetLineOrder(color LineColor, stationIDs []string) {
	k := color.Key()
	order := append([]string(nil), stationIDs...)
	n.lineOrders[k] = order
	idx := make(map[string]int, len(order))
	for i, id := range order {
		if _, ok := idx[id]; !ok {
			idx[id] = i
		}
	}
	n.stationIdx[k] = idx
}

// SetLineGeometry replaces the authored polyline of color.
func (n *Network) SetLineGeometry(color LineColor, points []geo.Point) {
	n.lineGeometries[color.Key()] = append([]geo.Point(nil), points...)
}

// Station returns the station with id.
func (n *Network) Station(id string) (Station, bool) {
	s, ok := n.stations[id]
	return s, ok
}

// Stations returns all stations sorted by id.
func (n *Network) Stations() []Station {
	out := make([]Station, 0, len(n.stations))
	for _, s := range n.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LineOrder returns the ordered station ids of color, or nil.
func (n *Network) LineOrder(color LineColor) []string {
	return n.lineOrders[color.Key()]
}

// LineGeometry returns the authored polyline of color, or nil.
func (n *Network) LineGeometry(color LineColor) []geo.Point {
	return n.lineGeometries[color.Key()]
}

// StationIndex returns the first position of stationID in color's order.
func (n *Network) StationIndex(color LineColor, stationID string) (int, bool) {
	i, ok := n.stationIdx[color.Key()][stationID]
	return i, ok
}

// Colors returns every color key that has an order or a geometry, sorted.
func (n *Network) Colors() []LineColor {
	set := map[string]struct{}{}
	for k := range n.lineOrders {
		set[k] = struct{}{}
	}
	for k := range n.lineGeometries {
		set[k] = struct{}{}
	}
	out := make([]LineColor, 0, len(set))
	for k := range set {
		out = append(out, LineColor(k))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (n *Network) NumStations() int { return len(n.stations) }
