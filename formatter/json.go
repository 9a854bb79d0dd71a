package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/routing"
	"github.com/theoremus-urban-solutions/tramline/utils"
)

// LegView is a journey leg with display strings and an encoded path.
type LegView struct {
	Kind        routing.LegKind `json:"kind"`
	Color       string          `json:"color,omitempty"`
	LineName    string          `json:"lineName,omitempty"`
	Path        []geo.Point     `json:"path"`
	Polyline    string          `json:"polyline"`
	DistanceKM  float64         `json:"distanceKm"`
	DurationMin int             `json:"durationMin"`
	Distance    string          `json:"distance"`
	Duration    string          `json:"duration"`
}

// JourneyView is the client representation of a routing.Journey.
type JourneyView struct {
	OriginID         string            `json:"originId"`
	DestinationID    string            `json:"destinationId"`
	Legs             []LegView         `json:"legs"`
	TotalDistanceKM  float64           `json:"totalDistanceKm"`
	TotalDurationMin int               `json:"totalDurationMin"`
	TotalDistance    string            `json:"totalDistance"`
	TotalDuration    string            `json:"totalDuration"`
	Warnings         []routing.Warning `json:"warnings,omitempty"`
}

// NewJourneyView builds the view of j.
func NewJourneyView(j *routing.Journey) JourneyView {
	v := JourneyView{
		OriginID:         j.OriginID,
		DestinationID:    j.DestinationID,
		Legs:             make([]LegView, 0, len(j.Legs)),
		TotalDistanceKM:  j.TotalDistanceKM,
		TotalDurationMin: j.TotalDurationMin,
		TotalDistance:    utils.PresentableDistance(j.TotalDistanceKM),
		TotalDuration:    utils.PresentableDuration(j.TotalDurationMin),
		Warnings:         j.Warnings,
	}
	for _, leg := range j.Legs {
		lv := LegView{
			Kind:        leg.Kind,
			Path:        leg.Path,
			Polyline:    EncodePath(leg.Path),
			DistanceKM:  leg.DistanceKM,
			DurationMin: leg.DurationMin,
			Distance:    utils.PresentableDistance(leg.DistanceKM),
			Duration:    utils.PresentableDuration(leg.DurationMin),
		}
		if leg.Color != "" {
			lv.Color = leg.Color.Key()
			lv.LineName = leg.Color.DisplayName()
		}
		v.Legs = append(v.Legs, lv)
	}
	return v
}

type responseBuilder struct{}

// NewResponseBuilder creates a new response builder for client payloads
func NewResponseBuilder() *responseBuilder {
	return &responseBuilder{}
}

// BuildJSON serializes a response payload to JSON
func (rb *responseBuilder) BuildJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// BuildJourneyJSON serializes the view of j.
func (rb *responseBuilder) BuildJourneyJSON(j *routing.Journey) ([]byte, error) {
	return rb.BuildJSON(NewJourneyView(j))
}
