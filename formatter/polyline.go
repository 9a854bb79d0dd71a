package formatter

import (
	"github.com/twpayne/go-polyline"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// EncodePath returns the Google encoded polyline of path.
func EncodePath(path []geo.Point) string {
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = []float64{p.Lat, p.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePath parses a Google encoded polyline.
func DecodePath(encoded string) ([]geo.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]geo.Point, len(coords))
	for i, c := range coords {
		path[i] = geo.Point{Lat: c[0], Lng: c[1]}
	}
	return path, nil
}
