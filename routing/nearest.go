package routing

import (
	"fmt"
	"math"
	"time"

	"github.com/bluele/gcache"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
)

// NearestFinder resolves a GPS position to the closest station. Lookups are
// cached per quantized coordinate (4 decimals, ~11 m), so two positions in
// the same cell always resolve to the same station.
type NearestFinder struct {
	stations []network.Station
	cache    gcache.Cache
}

// NewNearestFinder creates a finder over stations with an LRU cache of
// cacheSize entries expiring after ttl.
func NewNearestFinder(stations []network.Station, cacheSize int, ttl time.Duration) *NearestFinder {
	if cacheSize <= 0 {
		cacheSize = 1000
	}
	b := gcache.New(cacheSize).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &NearestFinder{
		stations: append([]network.Station(nil), stations...),
		cache:    b.Build(),
	}
}

// Nearest returns the station closest to p and the straight-line distance
// to it in kilometers. ok is false when there are no stations.
func (f *NearestFinder) Nearest(p geo.Point) (station network.Station, distanceKM float64, ok bool) {
	if len(f.stations) == 0 {
		return network.Station{}, 0, false
	}
	q := geo.Point{Lat: quantizeCoord(p.Lat), Lng: quantizeCoord(p.Lng)}
	key := makeCacheKey(q)
	if cached, err := f.cache.Get(key); err == nil {
		if idx, ok := cached.(int); ok {
			s := f.stations[idx]
			return s, geo.DistanceKM(p, s.Point()), true
		}
	}
	best := 0
	bestD := math.MaxFloat64
	for i, s := range f.stations {
		if d := geo.DistanceKM(q, s.Point()); d < bestD {
			bestD = d
			best = i
		}
	}
	_ = f.cache.Set(key, best)
	s := f.stations[best]
	return s, geo.DistanceKM(p, s.Point()), true
}

// quantizeCoord rounds coordinates to 4 decimal places for cache key generation
func quantizeCoord(coord float64) float64 {
	return math.Round(coord*10000) / 10000
}

func makeCacheKey(q geo.Point) string {
	return fmt.Sprintf("%.4f,%.4f", q.Lat, q.Lng)
}
