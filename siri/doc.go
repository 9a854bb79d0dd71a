// Package siri renders the live marker collection as SIRI VehicleMonitoring.
//
// SIRI is a European standard (CEN/TS 15531) for real-time public transport information.
// Each committed marker becomes one VehicleActivity whose LineRef is derived
// from the marker's line color. The ServiceDelivery envelope keeps the
// EstimatedTimetable slot (from transit-types) and the SituationExchange slot
// (sx.go) empty so consumers expecting the full delivery shape can parse the
// response.
//
// All types include JSON struct tags for serialization.
package siri
