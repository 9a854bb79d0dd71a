package routing

import (
	"fmt"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// ExtractSegment returns the part of geometry a rider travels from start to
// end. start and end need not lie on the geometry.
//
// The sub-path runs from the point nearest start to the point nearest end in
// geometry order. When the end index precedes the start index the line is
// treated as a loop and the sub-path continues past the last point back to
// index 0. The scan stops at the first point within
// DestinationSnapThresholdKM of end so a loop is not overshot, and end is then
// joined to that point. Without such a point end is joined only when the last
// point lies within SnapThresholdKM. start is joined only within
// SnapThresholdKM. An endpoint that is not joined leaves the path
// disconnected from it.
//
// The result never aliases geometry and never reverses its direction.
func ExtractSegment(geometry []geo.Point, start, end geo.Point, opts SnapOptions) ([]geo.Point, error) {
	if len(geometry) == 0 {
		return nil, ErrEmptyGeometry
	}
	startIdx := geo.ClosestIndex(geometry, start)
	endIdx := geo.ClosestIndex(geometry, end)

	if startIdx == endIdx {
		p := geometry[startIdx]
		if geo.DistanceKM(p, start) > opts.SnapThresholdKM && geo.DistanceKM(p, end) > opts.SnapThresholdKM {
			return nil, fmt.Errorf("%w: both endpoints nearest to point %d", ErrDegenerateEndpoints, startIdx)
		}
	}

	var sub []geo.Point
	if startIdx <= endIdx {
		sub = make([]geo.Point, 0, endIdx-startIdx+3)
		sub = append(sub, geometry[startIdx:endIdx+1]...)
	} else {
		head := geometry[startIdx:]
		tail := geometry[:endIdx+1]
		sub = make([]geo.Point, 0, len(head)+len(tail)+2)
		sub = append(sub, head...)
		sub = append(sub, tail...)
	}

	joinKM := opts.SnapThresholdKM
	for k, p := range sub {
		if geo.DistanceKM(p, end) <= opts.DestinationSnapThresholdKM {
			sub = sub[:k+1]
			joinKM = opts.DestinationSnapThresholdKM
			break
		}
	}
	if last := sub[len(sub)-1]; !last.Equal(end) && geo.DistanceKM(last, end) <= joinKM {
		sub = append(sub, end)
	}

	if first := sub[0]; !first.Equal(start) && geo.DistanceKM(first, start) <= opts.SnapThresholdKM {
		joined := make([]geo.Point, 0, len(sub)+1)
		joined = append(joined, start)
		sub = append(joined, sub...)
	}
	return sub, nil
}
