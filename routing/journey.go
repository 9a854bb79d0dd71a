package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
)

// ErrInvalidOrigin means the Origin carries neither a station nor a
// current location with its nearest station.
var ErrInvalidOrigin = errors.New("origin needs a station or a current location with its nearest station")

// LegKind tells walking legs from transit legs.
type LegKind string

const (
	LegWalking LegKind = "walking"
	LegTransit LegKind = "transit"
)

// Leg is one homogeneous part of a Journey.
type Leg struct {
	Kind        LegKind           `json:"kind"`
	Color       network.LineColor `json:"color,omitempty"`
	Path        []geo.Point       `json:"path"`
	DistanceKM  float64           `json:"distanceKm"`
	DurationMin int               `json:"durationMin"`
}

// Journey is the composed result for one origin/destination request.
type Journey struct {
	OriginID         string    `json:"originId"`
	DestinationID    string    `json:"destinationId"`
	Legs             []Leg     `json:"legs"`
	TotalDistanceKM  float64   `json:"totalDistanceKm"`
	TotalDurationMin int       `json:"totalDurationMin"`
	Warnings         []Warning `json:"warnings,omitempty"`
}

// TransitLeg returns the transit leg of the journey, or nil.
func (j *Journey) TransitLeg() *Leg {
	for i := range j.Legs {
		if j.Legs[i].Kind == LegTransit {
			return &j.Legs[i]
		}
	}
	return nil
}

// Origin is either a Station, or a CurrentLocation together with the
// NearestStation to it.
type Origin struct {
	Station         *network.Station
	CurrentLocation *geo.Point
	NearestStation  *network.Station
}

// StationOrigin starts a journey at a station.
func StationOrigin(s network.Station) Origin {
	return Origin{Station: &s}
}

// LocationOrigin starts a journey at a GPS position, walking to nearest.
func LocationOrigin(loc geo.Point, nearest network.Station) Origin {
	return Origin{CurrentLocation: &loc, NearestStation: &nearest}
}

// Composer builds journeys against one network snapshot.
// It performs no I/O and is safe for concurrent use.
type Composer struct {
	tables   LineTables
	selector *Selector
	opts     Options
}

// NewComposer creates a composer. Zero-valued options fall back to defaults.
func NewComposer(tables LineTables, opts Options) *Composer {
	opts = opts.withDefaults()
	return &Composer{
		tables:   tables,
		selector: NewSelector(tables, opts.LinePriority),
		opts:     opts,
	}
}

// Options returns the effective options of the composer.
func (c *Composer) Options() Options { return c.opts }

// Compose builds the journey from origin to destination.
func (c *Composer) Compose(origin Origin, destination network.Station) (*Journey, error) {
	from, err := effectiveOrigin(origin)
	if err != nil {
		return nil, err
	}
	if from.ID == destination.ID {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateJourney, from.ID)
	}

	journey := &Journey{OriginID: from.ID, DestinationID: destination.ID}
	if origin.CurrentLocation != nil {
		path := []geo.Point{*origin.CurrentLocation, from.Point()}
		km := geo.DistanceKM(path[0], path[1])
		journey.Legs = append(journey.Legs, Leg{
			Kind:        LegWalking,
			Path:        path,
			DistanceKM:  km,
			DurationMin: minutesAt(km, c.opts.WalkingSpeedKMH),
		})
	}

	color, err := c.selector.Select(from, destination)
	if err != nil {
		return nil, err
	}
	path, err := ExtractSegment(c.tables.LineGeometry(color), from.Point(), destination.Point(), c.opts.Snap)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", color, err)
	}
	km := geo.PathLengthKM(path)
	journey.Legs = append(journey.Legs, Leg{
		Kind:        LegTransit,
		Color:       color,
		Path:        path,
		DistanceKM:  km,
		DurationMin: minutesAt(km, c.opts.TransitSpeedKMH),
	})

	for _, leg := range journey.Legs {
		journey.TotalDistanceKM += leg.DistanceKM
		journey.TotalDurationMin += leg.DurationMin
	}

	warns := NewWarningAggregator()
	dest := destination.Point()
	if geo.DistanceToPathKM(dest, path) > c.opts.CorridorKM {
		warns.Add(WarningDestinationOutsideCorridor, destination.ID)
	}
	if !path[len(path)-1].Equal(dest) {
		warns.Add(WarningPathDisconnected, destination.ID)
	}
	if warns.Len() > 0 {
		journey.Warnings = warns.Warnings()
		warns.LogAll(from.ID + "->" + destination.ID)
	}
	return journey, nil
}

func effectiveOrigin(o Origin) (network.Station, error) {
	if o.CurrentLocation != nil {
		if o.NearestStation == nil {
			return network.Station{}, ErrInvalidOrigin
		}
		return *o.NearestStation, nil
	}
	if o.Station == nil {
		return network.Station{}, ErrInvalidOrigin
	}
	return *o.Station, nil
}

// minutesAt converts a distance to whole minutes at speedKMH, rounding up so
// any non-zero distance takes at least one minute.
func minutesAt(km, speedKMH float64) int {
	if km <= 0 || speedKMH <= 0 {
		return 0
	}
	return int(math.Ceil(km/speedKMH*60 - 1e-9))
}
