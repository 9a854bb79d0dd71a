package geo

import "math"

// ClosestPointOnSegment returns the point of segment [a, b] nearest to p.
// The projection is planar: lat/lng are treated as Cartesian coordinates and
// the projection parameter is clamped to [0, 1].
func ClosestPointOnSegment(p, a, b Point) Point {
	vx := b.Lng - a.Lng
	vy := b.Lat - a.Lat
	denom := vx*vx + vy*vy
	if denom == 0 {
		return a
	}
	wx := p.Lng - a.Lng
	wy := p.Lat - a.Lat
	t := (wx*vx + wy*vy) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Point{Lat: a.Lat + t*vy, Lng: a.Lng + t*vx}
}

// ClosestIndex returns the index of the point in points nearest to target.
// Ties resolve to the lowest index. It returns -1 when points is empty.
func ClosestIndex(points []Point, target Point) int {
	best := -1
	bestD := math.MaxFloat64
	for i, p := range points {
		d := DistanceKM(p, target)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// DistanceToPathKM returns the distance from p to the nearest point lying on
// any segment of path. A single-point path degenerates to DistanceKM.
// It returns +Inf for an empty path.
func DistanceToPathKM(p Point, path []Point) float64 {
	switch len(path) {
	case 0:
		return math.Inf(1)
	case 1:
		return DistanceKM(p, path[0])
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(path); i++ {
		snapped := ClosestPointOnSegment(p, path[i], path[i+1])
		if d := DistanceKM(p, snapped); d < best {
			best = d
		}
	}
	return best
}
