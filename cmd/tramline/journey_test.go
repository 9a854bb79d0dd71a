package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/routing"
)

func sampleJourney() *routing.Journey {
	return &routing.Journey{
		OriginID:      "S1",
		DestinationID: "S3",
		Legs: []routing.Leg{
			{Kind: routing.LegWalking, Path: []geo.Point{{Lat: 42.001, Lng: 23}, {Lat: 42, Lng: 23}}, DistanceKM: 0.111, DurationMin: 2},
			{Kind: routing.LegTransit, Color: "red", Path: []geo.Point{{Lat: 42, Lng: 23}, {Lat: 42, Lng: 23.03}}, DistanceKM: 2.48, DurationMin: 8},
		},
		TotalDistanceKM:  2.591,
		TotalDurationMin: 10,
		Warnings:         []routing.Warning{{Code: routing.WarningPathDisconnected, Message: "path ends short of the destination"}},
	}
}

func TestWriteJourney_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJourney(&buf, sampleJourney(), "text"); err != nil {
		t.Fatalf("writeJourney: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"S1 -> S3: 2.6 km, 10 min", "walk", "Red line", "! path_disconnected"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	t.Logf("✓ text output:\n%s", out)
}

func TestWriteJourney_Formats(t *testing.T) {
	for _, format := range []string{"json", "geojson"} {
		var buf bytes.Buffer
		if err := writeJourney(&buf, sampleJourney(), format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.HasPrefix(buf.String(), "{") {
			t.Errorf("%s: expected a JSON object, got %q", format, buf.String())
		}
	}
	if err := writeJourney(&bytes.Buffer{}, sampleJourney(), "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
