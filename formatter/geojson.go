package formatter

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/routing"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

func toOrb(p geo.Point) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func lineString(path []geo.Point) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, p := range path {
		ls[i] = toOrb(p)
	}
	return ls
}

// JourneyFeatureCollection returns one LineString feature per leg.
func JourneyFeatureCollection(j *routing.Journey) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, leg := range j.Legs {
		f := geojson.NewFeature(lineString(leg.Path))
		f.ID = i
		f.Properties["kind"] = string(leg.Kind)
		if leg.Color != "" {
			f.Properties["color"] = leg.Color.Key()
		}
		f.Properties["distanceKm"] = leg.DistanceKM
		f.Properties["durationMin"] = leg.DurationMin
		fc.Append(f)
	}
	return fc
}

// MarkersFeatureCollection returns one Point feature per live marker.
func MarkersFeatureCollection(markers []tracking.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(toOrb(m.Point()))
		f.ID = m.ID
		if m.Color != "" {
			f.Properties["color"] = m.Color.Key()
		}
		fc.Append(f)
	}
	return fc
}
