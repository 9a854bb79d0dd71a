package network

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// Document is the serialized form of a Network. Line orders and line
// geometries stay in separate maps keyed by color.
type Document struct {
	Stations       []Station              `json:"stations" yaml:"stations" validate:"dive"`
	LineOrders     map[string][]string    `json:"lineOrders" yaml:"lineOrders"`
	LineGeometries map[string][]geo.Point `json:"lineGeometries" yaml:"lineGeometries"`
}

// LoadFile reads a YAML (or JSON) network document from path.
func LoadFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML (or JSON) network document.
func Parse(data []byte) (*Network, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode network document: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument validates doc and builds a Network from it.
func FromDocument(doc Document) (*Network, error) {
	v := validator.New()
	if err := v.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid network document: %w", err)
	}
	n := New()
	for _, s := range doc.Stations {
		if _, dup := n.Station(s.ID); dup {
			return nil, fmt.Errorf("invalid network document: duplicate station %q", s.ID)
		}
		n.AddStation(s)
	}
	for color, order := range doc.LineOrders {
		n.SetLineOrder(LineColor(color), order)
	}
	for color, pts := range doc.LineGeometries {
		for i, p := range pts {
			if !p.Valid() {
				return nil, fmt.Errorf("invalid network document: line %q point %d out of range", color, i)
			}
		}
		n.SetLineGeometry(LineColor(color), pts)
	}
	return n, nil
}

// Document returns the serializable form of n.
func (n *Network) Document() Document {
	doc := Document{
		Stations:       n.Stations(),
		LineOrders:     make(map[string][]string, len(n.lineOrders)),
		LineGeometries: make(map[string][]geo.Point, len(n.lineGeometries)),
	}
	for k, v := range n.lineOrders {
		doc.LineOrders[k] = append([]string(nil), v...)
	}
	for k, v := range n.lineGeometries {
		doc.LineGeometries[k] = append([]geo.Point(nil), v...)
	}
	return doc
}
