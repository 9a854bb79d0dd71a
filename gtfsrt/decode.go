package gtfsrt

import (
	"context"
	"fmt"
	"strings"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

// DecodeVehiclePositions parses a VehiclePositions FeedMessage into a tick.
// colorByRoute maps GTFS route ids to line colors; unmapped routes use the
// lowercased route id.
func DecodeVehiclePositions(data []byte, colorByRoute map[string]string) (tracking.Tick, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return tracking.Tick{}, fmt.Errorf("failed to decode vehicle positions: %w", err)
	}

	tick := tracking.Tick{
		Timestamp: int64(fm.GetHeader().GetTimestamp()),
		Vehicles:  make([]tracking.VehiclePosition, 0, len(fm.GetEntity())),
	}
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil || e.GetIsDeleted() {
			continue
		}
		rec := tracking.VehiclePosition{
			ID:    vehicleID(e, vp),
			Color: routeColor(vp.GetTrip().GetRouteId(), colorByRoute),
		}
		if pos := vp.GetPosition(); pos != nil {
			lat := float64(pos.GetLatitude())
			lng := float64(pos.GetLongitude())
			rec.Lat, rec.Lng = &lat, &lng
		}
		tick.Vehicles = append(tick.Vehicles, rec)
	}
	return tick, nil
}

func vehicleID(e *gtfsrtpb.FeedEntity, vp *gtfsrtpb.VehiclePosition) string {
	if id := vp.GetVehicle().GetId(); id != "" {
		return id
	}
	if label := vp.GetVehicle().GetLabel(); label != "" {
		return label
	}
	return e.GetId()
}

func routeColor(routeID string, colorByRoute map[string]string) network.LineColor {
	if c, ok := colorByRoute[routeID]; ok {
		return network.LineColor(c)
	}
	return network.LineColor(strings.ToLower(routeID))
}

// Source polls a VehiclePositions URL.
type Source struct {
	client       *Client
	url          string
	colorByRoute map[string]string
}

// NewSource creates a source reading url through client.
func NewSource(client *Client, url string, colorByRoute map[string]string) *Source {
	return &Source{client: client, url: url, colorByRoute: colorByRoute}
}

// Next fetches and decodes the current snapshot.
func (s *Source) Next(ctx context.Context) (tracking.Tick, error) {
	data, err := s.client.Fetch(ctx, s.url)
	if err != nil {
		return tracking.Tick{}, fmt.Errorf("vehicle positions: %w", err)
	}
	return DecodeVehiclePositions(data, s.colorByRoute)
}
