package geo

import "math"

// EarthRadiusKM is the mean Earth radius used by DistanceKM.
const EarthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance between a and b in kilometers.
func DistanceKM(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKM * c
}

// PathLengthKM sums the distances between consecutive points of path.
func PathLengthKM(path []Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += DistanceKM(path[i-1], path[i])
	}
	return total
}
