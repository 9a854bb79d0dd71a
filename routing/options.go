package routing

import "github.com/theoremus-urban-solutions/tramline/network"

// Thresholds and speed assumptions used when no configuration overrides them.
const (
	// DefaultSnapThresholdKM joins a journey endpoint to the path when the
	// nearest path point is at most this far away (50 m).
	DefaultSnapThresholdKM = 0.05
	// DefaultDestinationSnapThresholdKM stops the scan along a sub-path at the
	// first point this close to the destination (150 m).
	DefaultDestinationSnapThresholdKM = 0.15
	// DefaultCorridorKM is the distance from the transit path beyond which a
	// destination is reported as possibly unreachable (500 m).
	DefaultCorridorKM = 0.5
	// DefaultWalkingSpeedKMH is the assumed average walking speed.
	DefaultWalkingSpeedKMH = 5.0
	// DefaultTransitSpeedKMH is the assumed average in-vehicle speed.
	DefaultTransitSpeedKMH = 20.0
)

// DefaultLinePriority breaks score ties between lines: earlier wins.
var DefaultLinePriority = []network.LineColor{"red", "blue", "green"}

// SnapOptions controls how extracted segments are joined to their endpoints.
type SnapOptions struct {
	SnapThresholdKM            float64
	DestinationSnapThresholdKM float64
}

// Options configures a Composer.
type Options struct {
	Snap            SnapOptions
	CorridorKM      float64
	WalkingSpeedKMH float64
	TransitSpeedKMH float64
	LinePriority    []network.LineColor
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Snap: SnapOptions{
			SnapThresholdKM:            DefaultSnapThresholdKM,
			DestinationSnapThresholdKM: DefaultDestinationSnapThresholdKM,
		},
		CorridorKM:      DefaultCorridorKM,
		WalkingSpeedKMH: DefaultWalkingSpeedKMH,
		TransitSpeedKMH: DefaultTransitSpeedKMH,
		LinePriority:    append([]network.LineColor(nil), DefaultLinePriority...),
	}
}

// withDefaults replaces unset or invalid values with defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Snap.SnapThresholdKM <= 0 {
		o.Snap.SnapThresholdKM = d.Snap.SnapThresholdKM
	}
	if o.Snap.DestinationSnapThresholdKM <= 0 {
		o.Snap.DestinationSnapThresholdKM = d.Snap.DestinationSnapThresholdKM
	}
	if o.CorridorKM <= 0 {
		o.CorridorKM = d.CorridorKM
	}
	if o.WalkingSpeedKMH <= 0 {
		o.WalkingSpeedKMH = d.WalkingSpeedKMH
	}
	if o.TransitSpeedKMH <= 0 {
		o.TransitSpeedKMH = d.TransitSpeedKMH
	}
	if len(o.LinePriority) == 0 {
		o.LinePriority = d.LinePriority
	}
	return o
}
