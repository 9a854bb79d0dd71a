// Package formatter renders journeys and live markers for clients.
//
// This package is organized into:
// - json.go: presentation views of journeys with display strings
// - polyline.go: encoded polylines for map overlays
// - geojson.go: GeoJSON FeatureCollections of journey legs and markers
package formatter
