package routing

import "errors"

// ErrorKind is a stable identifier for journey failures.
type ErrorKind string

const (
	KindNoCommonLine        ErrorKind = "no_common_line"
	KindNoRideableLine      ErrorKind = "no_rideable_line"
	KindDegenerateJourney   ErrorKind = "degenerate_journey"
	KindEmptyGeometry       ErrorKind = "empty_geometry"
	KindDegenerateEndpoints ErrorKind = "degenerate_endpoints"
	KindInvalidOrigin       ErrorKind = "invalid_origin"
	KindUnknown             ErrorKind = "unknown"
)

var (
	// ErrNoCommonLine means origin and destination share no line color.
	ErrNoCommonLine = errors.New("stations share no line")
	// ErrNoRideableLine means every shared line lacks a station order or authored geometry.
	ErrNoRideableLine = errors.New("no shared line has authored geometry")
	// ErrDegenerateJourney means origin and destination are the same station.
	ErrDegenerateJourney = errors.New("origin and destination are the same station")
	// ErrEmptyGeometry means the line geometry has no points.
	ErrEmptyGeometry = errors.New("line geometry is empty")
	// ErrDegenerateEndpoints means both endpoints snap to the same geometry
	// point and neither lies within the snap threshold of it.
	ErrDegenerateEndpoints = errors.New("endpoints collapse onto one geometry point")
)

// KindOf classifies err. It returns "" for a nil error.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCommonLine):
		return KindNoCommonLine
	case errors.Is(err, ErrNoRideableLine):
		return KindNoRideableLine
	case errors.Is(err, ErrDegenerateJourney):
		return KindDegenerateJourney
	case errors.Is(err, ErrEmptyGeometry):
		return KindEmptyGeometry
	case errors.Is(err, ErrDegenerateEndpoints):
		return KindDegenerateEndpoints
	case errors.Is(err, ErrInvalidOrigin):
		return KindInvalidOrigin
	default:
		return KindUnknown
	}
}
