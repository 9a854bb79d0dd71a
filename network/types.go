package network

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// LineColor is the tag identifying a transit line, e.g. "red".
type LineColor string

// Key returns the normalized lookup key of the color.
func (c LineColor) Key() string {
	return strings.ToLower(strings.TrimSpace(string(c)))
}

// DisplayName returns the title-cased name of the color ("Red").
func (c LineColor) DisplayName() string {
	return cases.Title(language.English).String(c.Key())
}

// ParseLineColors splits a comma separated list into normalized colors.
// Empty entries and duplicates are dropped.
func ParseLineColors(s string) []LineColor {
	seen := map[string]struct{}{}
	out := []LineColor{}
	for _, part := range strings.Split(s, ",") {
		k := LineColor(part).Key()
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, LineColor(k))
	}
	return out
}

// Station is a stop served by one or more lines.
type Station struct {
	ID     string      `json:"id" yaml:"id" validate:"required"`
	Name   string      `json:"name,omitempty" yaml:"name"`
	Lat    float64     `json:"lat" yaml:"lat" validate:"latitude"`
	Lng    float64     `json:"lng" yaml:"lng" validate:"longitude"`
	Colors []LineColor `json:"colors" yaml:"colors"`
}

// Point returns the station coordinate.
func (s Station) Point() geo.Point {
	return geo.Point{Lat: s.Lat, Lng: s.Lng}
}

// HasColor reports whether the station is served by color (case-insensitive).
func (s Station) HasColor(color LineColor) bool {
	k := color.Key()
	for _, c := range s.Colors {
		if c.Key() == k {
			return true
		}
	}
	return false
}

// ColorKeys returns the sorted, de-duplicated color keys of the station.
func (s Station) ColorKeys() []string {
	set := make(map[string]struct{}, len(s.Colors))
	for _, c := range s.Colors {
		if k := c.Key(); k != "" {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
