package routing

import (
	"math"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
)

// kmPerDegLng is the east-west length of one degree of longitude at 42°N.
var kmPerDegLng = geo.EarthRadiusKM * math.Pi / 180 * math.Cos(42*math.Pi/180)

// straightLine returns n points heading east from (42, 23), stepKM apart.
func straightLine(n int, stepKM float64) []geo.Point {
	pts := make([]geo.Point, n)
	for i := range pts {
		pts[i] = geo.Point{Lat: 42, Lng: 23 + float64(i)*stepKM/kmPerDegLng}
	}
	return pts
}

// loop returns n points on a circle of radius 0.01° around (42, 23).
func loop(n int) []geo.Point {
	pts := make([]geo.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geo.Point{Lat: 42 + 0.01*math.Sin(a), Lng: 23 + 0.01*math.Cos(a)}
	}
	return pts
}

func station(id string, p geo.Point, colors ...network.LineColor) network.Station {
	return network.Station{ID: id, Lat: p.Lat, Lng: p.Lng, Colors: colors}
}

// offsetNorth moves p north by km.
func offsetNorth(p geo.Point, km float64) geo.Point {
	return geo.Point{Lat: p.Lat + km/(geo.EarthRadiusKM*math.Pi/180), Lng: p.Lng}
}

// offsetEast moves p east by km (valid near 42°N).
func offsetEast(p geo.Point, km float64) geo.Point {
	return geo.Point{Lat: p.Lat, Lng: p.Lng + km/kmPerDegLng}
}
