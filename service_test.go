package tramline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/tramline/config"
	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/routing"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

func TestService_JourneyFromStation(t *testing.T) {
	svc := newTestService(t)

	j, err := svc.Journey(JourneyRequest{FromID: "A", ToID: "C"})
	require.NoError(t, err)
	assert.Equal(t, "A", j.OriginID)
	assert.Equal(t, "C", j.DestinationID)
	require.Len(t, j.Legs, 1)
	assert.Equal(t, routing.LegTransit, j.Legs[0].Kind)
	assert.Equal(t, "red", j.Legs[0].Color.Key())
	assert.InDelta(t, 2.64, j.TotalDistanceKM, 0.02)
	assert.Equal(t, 8, j.TotalDurationMin)
	assert.Empty(t, j.Warnings)

	again, err := svc.Journey(JourneyRequest{FromID: "A", ToID: "C"})
	require.NoError(t, err)
	assert.Same(t, j, again)
}

func TestService_JourneyFromLocation(t *testing.T) {
	svc := newTestService(t)

	loc := geo.Point{Lat: 42.001, Lng: 23.0}
	j, err := svc.Journey(JourneyRequest{Location: &loc, ToID: "C"})
	require.NoError(t, err)
	assert.Equal(t, "A", j.OriginID)
	require.Len(t, j.Legs, 2)
	assert.Equal(t, routing.LegWalking, j.Legs[0].Kind)
	assert.InDelta(t, 0.111, j.Legs[0].DistanceKM, 0.002)
	assert.Equal(t, 2, j.Legs[0].DurationMin)
	assert.Equal(t, 10, j.TotalDurationMin)
}

func TestService_JourneyErrors(t *testing.T) {
	svc := newTestService(t)
	bad := geo.Point{Lat: 91, Lng: 23}

	tests := []struct {
		name string
		req  JourneyRequest
		want error
	}{
		{"missing destination", JourneyRequest{FromID: "A"}, ErrInvalidRequest},
		{"missing origin", JourneyRequest{ToID: "C"}, ErrInvalidRequest},
		{"invalid location", JourneyRequest{Location: &bad, ToID: "C"}, ErrInvalidRequest},
		{"unknown destination", JourneyRequest{FromID: "A", ToID: "Z"}, ErrUnknownStation},
		{"unknown origin", JourneyRequest{FromID: "Z", ToID: "C"}, ErrUnknownStation},
		{"same station", JourneyRequest{FromID: "B", ToID: "B"}, routing.ErrDegenerateJourney},
		{"no shared line", JourneyRequest{FromID: "A", ToID: "X"}, routing.ErrNoCommonLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Journey(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_ApplyTickAndChanges(t *testing.T) {
	svc := newTestService(t)

	ops, err := svc.ApplyTick(tracking.Tick{Timestamp: 100, Vehicles: []tracking.VehiclePosition{
		tracking.NewVehiclePosition("v1", 42.0, 23.004, "red"),
		tracking.NewVehiclePosition("v2", 42.005, 23.02, "blue"),
	}})
	require.NoError(t, err)
	assert.Len(t, ops, 2)
	assert.Len(t, svc.Markers(), 2)
	assert.Equal(t, int64(100), svc.FeedTimestamp())
	assert.Equal(t, uint64(1), svc.Seq())

	ops, err = svc.ApplyTick(tracking.Tick{Timestamp: 110, Vehicles: []tracking.VehiclePosition{
		tracking.NewVehiclePosition("v1", 42.0, 23.008, "red"),
	}})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, tracking.OpRemove, ops[0].Op)
	assert.Equal(t, "v2", ops[0].ID)
	assert.Equal(t, tracking.OpUpdate, ops[1].Op)

	_, err = svc.ApplyTick(tracking.Tick{Timestamp: 50})
	assert.ErrorIs(t, err, tracking.ErrStaleTick)
	assert.Len(t, svc.Markers(), 1)

	batches, latest, complete := svc.Changes(1)
	assert.True(t, complete)
	assert.Equal(t, uint64(2), latest)
	require.Len(t, batches, 1)
	assert.Equal(t, fixedNow.Unix(), batches[0].Timestamp)
}

func TestService_VehicleMonitoring(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ApplyTick(tracking.Tick{Timestamp: fixedNow.Unix(), Vehicles: []tracking.VehiclePosition{
		tracking.NewVehiclePosition("v1", 42.0, 23.004, "red"),
		tracking.NewVehiclePosition("v2", 42.005, 23.02, "blue"),
	}})
	require.NoError(t, err)

	res := svc.VehicleMonitoring("")
	sd := res.Siri.ServiceDelivery
	assert.Equal(t, "TRAM", sd.ProducerRef)
	require.Len(t, sd.VehicleMonitoringDelivery, 1)
	assert.Len(t, sd.VehicleMonitoringDelivery[0].VehicleActivity, 2)

	res = svc.VehicleMonitoring(svc.LineRef("red"))
	acts := res.Siri.ServiceDelivery.VehicleMonitoringDelivery[0].VehicleActivity
	require.Len(t, acts, 1)
	assert.Equal(t, "TRAM:VehicleRef:v1", acts[0].MonitoredVehicleJourney.VehicleRef)
	assert.Equal(t, "TRAM:Line:red", acts[0].MonitoredVehicleJourney.LineRef)
}

func TestService_VehicleMonitoringWithoutFeedUsesClock(t *testing.T) {
	svc := newTestService(t)
	res := svc.VehicleMonitoring("")
	assert.NotEmpty(t, res.Siri.ServiceDelivery.ResponseTimestamp)
	assert.Empty(t, res.Siri.ServiceDelivery.VehicleMonitoringDelivery[0].VehicleActivity)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Codespace = "SOF"
	cfg.Feed.PlaceholderIDs = []string{"boot"}
	cfg.Routing.CorridorMeters = 250

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "SOF", opts.SIRI.Codespace)
	assert.Equal(t, 10000, opts.SIRI.ReadIntervalMS)
	assert.Equal(t, []string{"boot"}, opts.Tracking.PlaceholderIDs)
	assert.InDelta(t, 0.25, opts.Routing.CorridorKM, 1e-9)
}
