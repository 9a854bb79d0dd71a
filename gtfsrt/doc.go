// Package gtfsrt fetches GTFS-Realtime VehiclePositions feeds and turns them
// into tracking ticks.
//
// Each vehicle entity becomes one tracking.VehiclePosition keyed by the
// vehicle descriptor id (falling back to its label, then the entity id).
// The line color comes from an explicit route mapping or the route id.
// Records without a position are passed through with missing coordinates so
// the reconciler can skip and log them.
package gtfsrt
