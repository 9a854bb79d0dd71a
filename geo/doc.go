// Package geo provides the distance and projection primitives used by journey
// composition.
//
// Distances are great-circle (haversine) in kilometers. Projections onto
// segments treat latitude/longitude as planar coordinates, which is accurate
// enough at city scale and matches how line geometry is authored.
package geo
