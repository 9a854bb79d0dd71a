// Package routing composes single-line journeys between stations.
//
// A journey is built in three steps:
//   - Selector picks the line shared by both stations with the fewest stops
//     between them (LineOrder distance), breaking ties by a fixed priority.
//   - ExtractSegment cuts the contiguous part of that line's LineGeometry
//     between the two stations, wrapping around loop lines.
//   - Composer adds an optional walking leg from the rider's position to the
//     nearest station and aggregates distance and duration.
//
// Failures are returned as wrapped sentinel errors; KindOf maps them to a
// stable ErrorKind for presentation.
package routing
