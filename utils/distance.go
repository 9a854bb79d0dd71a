package utils

import (
	"fmt"
	"math"
)

// PresentableDistance formats a distance for display: whole meters below
// one kilometer (rounded to 10 m), kilometers with one decimal above.
func PresentableDistance(km float64) string {
	if km <= 0 || math.IsNaN(km) {
		return "0 m"
	}
	m := math.Round(km*100) * 10
	if m < 1000 {
		return fmt.Sprintf("%d m", int(math.Max(m, 10)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// PresentableDuration formats whole minutes for display ("4 min", "1 h 5 min").
func PresentableDuration(minutes int) string {
	if minutes <= 0 {
		return "0 min"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d min", h, m)
}
