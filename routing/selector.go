package routing

import (
	"fmt"
	"math"
	"sort"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
)

// LineTables is the read-only view of the network needed for routing.
// *network.Network implements it.
type LineTables interface {
	LineOrder(color network.LineColor) []string
	LineGeometry(color network.LineColor) []geo.Point
	StationIndex(color network.LineColor, stationID string) (int, bool)
}

// Selector picks the line connecting two stations.
type Selector struct {
	tables   LineTables
	priority map[string]int // color key -> rank, lower wins
}

// NewSelector creates a selector. priority lists colors from most to least
// preferred for breaking ties; nil uses DefaultLinePriority.
func NewSelector(tables LineTables, priority []network.LineColor) *Selector {
	if len(priority) == 0 {
		priority = DefaultLinePriority
	}
	rank := make(map[string]int, len(priority))
	for i, c := range priority {
		if _, ok := rank[c.Key()]; !ok {
			rank[c.Key()] = i
		}
	}
	return &Selector{tables: tables, priority: rank}
}

type candidate struct {
	key   string
	score int
}

// Select returns the color shared by origin and destination that has a
// station order and an authored geometry and the smallest stop distance
// between the two stations. Equal scores resolve by the priority list, then
// by color key.
func (s *Selector) Select(origin, destination network.Station) (network.LineColor, error) {
	destKeys := make(map[string]struct{})
	for _, k := range destination.ColorKeys() {
		destKeys[k] = struct{}{}
	}
	var common []string
	for _, k := range origin.ColorKeys() {
		if _, ok := destKeys[k]; ok {
			common = append(common, k)
		}
	}
	if len(common) == 0 {
		return "", fmt.Errorf("%w: %s and %s", ErrNoCommonLine, origin.ID, destination.ID)
	}

	candidates := make([]candidate, 0, len(common))
	for _, k := range common {
		color := network.LineColor(k)
		order := s.tables.LineOrder(color)
		if len(order) == 0 || len(s.tables.LineGeometry(color)) == 0 {
			continue
		}
		candidates = append(candidates, candidate{key: k, score: s.orderDistance(color, origin.ID, destination.ID)})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s and %s share %v", ErrNoRideableLine, origin.ID, destination.ID, common)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score < b.score
		}
		ra, rb := s.rank(a.key), s.rank(b.key)
		if ra != rb {
			return ra < rb
		}
		return a.key < b.key
	})
	return network.LineColor(candidates[0].key), nil
}

func (s *Selector) rank(key string) int {
	if r, ok := s.priority[key]; ok {
		return r
	}
	return len(s.priority)
}

// missingStationScore ranks a line whose order lacks one of the stations
// after every line that lists both.
const missingStationScore = math.MaxInt32

// orderDistance is |index(to) - index(from)| in color's order, using the
// first occurrence of each station.
func (s *Selector) orderDistance(color network.LineColor, from, to string) int {
	fi, okFrom := s.tables.StationIndex(color, from)
	ti, okTo := s.tables.StationIndex(color, to)
	if !okFrom || !okTo {
		return missingStationScore
	}
	if d := ti - fi; d >= 0 {
		return d
	}
	return fi - ti
}
