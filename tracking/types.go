package tracking

import (
	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
)

// DefaultPlaceholderID is the synthetic record some feeds publish to mark an
// initialized but empty vehicle list.
const DefaultPlaceholderID = "init"

// VehiclePosition is one record of a live position snapshot. Lat and Lng are
// pointers so a record missing a coordinate can be told from one at 0.
type VehiclePosition struct {
	ID    string            `json:"id" validate:"required"`
	Lat   *float64          `json:"lat" validate:"required,latitude"`
	Lng   *float64          `json:"lng" validate:"required,longitude"`
	Color network.LineColor `json:"color,omitempty"`
}

// NewVehiclePosition builds a record with both coordinates set.
func NewVehiclePosition(id string, lat, lng float64, color network.LineColor) VehiclePosition {
	return VehiclePosition{ID: id, Lat: &lat, Lng: &lng, Color: color}
}

// Marker is the tracked state of one vehicle marker.
type Marker struct {
	ID    string            `json:"id"`
	Lat   float64           `json:"lat"`
	Lng   float64           `json:"lng"`
	Color network.LineColor `json:"color,omitempty"`
}

// Point returns the marker position.
func (m Marker) Point() geo.Point { return geo.Point{Lat: m.Lat, Lng: m.Lng} }

// OpKind is the lifecycle operation applied to a marker.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpRemove OpKind = "remove"
)

// Operation is one marker change. Remove leaves the position zero; Update
// carries the position and the color the marker was created with. Coordinates
// are always encoded since 0 is a valid latitude and longitude.
type Operation struct {
	Op    OpKind            `json:"op"`
	ID    string            `json:"id"`
	Lat   float64           `json:"lat"`
	Lng   float64           `json:"lng"`
	Color network.LineColor `json:"color,omitempty"`
}

// Tick is one snapshot delivered by a position feed. Timestamp is the feed
// timestamp in Unix seconds; 0 means unknown.
type Tick struct {
	Timestamp int64             `json:"timestamp"`
	Vehicles  []VehiclePosition `json:"vehicles"`
}

// Applier renders marker operations, e.g. on a map widget or a client stream.
type Applier interface {
	ApplyOperations(ops []Operation) error
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(ops []Operation) error

func (f ApplierFunc) ApplyOperations(ops []Operation) error { return f(ops) }
