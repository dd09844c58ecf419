package geo

import (
	"fmt"
	"math"
	"time"
)

// FormatDistance renders a distance in meters for display:
// below 1 km whole meters, below 10 km one decimal in km, otherwise whole km.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	if meters < 10000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f km", meters/1000)
}

// FormatETA renders the time remaining until eta relative to now.
// ETAs in the past clamp to "Less than a minute".
func FormatETA(eta, now time.Time) string {
	diff := eta.Sub(now)
	if diff < 0 {
		diff = 0
	}

	minutes := int(math.Round(diff.Minutes()))
	if diff < time.Minute {
		return "Less than a minute"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
