package tramline

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/siri"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

// testNetwork returns a red line running east through A, B and C, a blue
// line running north from B to D, and a green-only station X.
func testNetwork() *network.Network {
	n := network.New()
	red := make([]geo.Point, 9)
	for i := range red {
		red[i] = geo.Point{Lat: 42.0, Lng: 23.0 + float64(i)*0.004}
	}
	blue := make([]geo.Point, 5)
	for i := range blue {
		blue[i] = geo.Point{Lat: 42.0 + float64(i)*0.005, Lng: 23.02}
	}

	n.AddStation(network.Station{ID: "A", Name: "Arena", Lat: red[0].Lat, Lng: red[0].Lng, Colors: []network.LineColor{"red"}})
	n.AddStation(network.Station{ID: "B", Name: "Bridge", Lat: red[5].Lat, Lng: red[5].Lng, Colors: []network.LineColor{"blue", "red"}})
	n.AddStation(network.Station{ID: "C", Name: "Cathedral", Lat: red[8].Lat, Lng: red[8].Lng, Colors: []network.LineColor{"red"}})
	n.AddStation(network.Station{ID: "D", Name: "Depot", Lat: blue[4].Lat, Lng: blue[4].Lng, Colors: []network.LineColor{"blue"}})
	n.AddStation(network.Station{ID: "X", Name: "Exhibition", Lat: 42.05, Lng: 23.0, Colors: []network.LineColor{"green"}})

	n.SetLineOrder("red", []string{"A", "B", "C"})
	n.SetLineGeometry("red", red)
	n.SetLineOrder("blue", []string{"B", "D"})
	n.SetLineGeometry("blue", blue)
	n.SetLineOrder("green", []string{"X"})
	n.SetLineGeometry("green", []geo.Point{{Lat: 42.05, Lng: 23.0}, {Lat: 42.05, Lng: 23.01}})
	return n
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testNetwork(), ServiceOptions{
		SIRI: siri.Options{Codespace: "TRAM", ReadIntervalMS: 10000},
		Now:  func() time.Time { return fixedNow },
	})
}

// tickOf builds a tick from id/color pairs, placing the vehicles a little
// apart along the red line.
func tickOf(ts int64, idColor ...string) tracking.Tick {
	tick := tracking.Tick{Timestamp: ts}
	for i := 0; i+1 < len(idColor); i += 2 {
		lng := 23.0 + float64(i/2+1)*0.004
		tick.Vehicles = append(tick.Vehicles, tracking.NewVehiclePosition(idColor[i], 42.0, lng, network.LineColor(idColor[i+1])))
	}
	return tick
}
