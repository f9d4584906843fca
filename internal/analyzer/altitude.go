package analyzer

import "image"

// altitudeScale maps mean 0-255 brightness onto the synthetic altitude.
// Brighter terrain reads as higher; this is a stand-in proxy, not a measurement.
const altitudeScale = 100

// EstimateAltitude returns mean pixel intensity times 100
func EstimateAltitude(calc MetricsCalculator, gray *image.Gray) float64 {
	return calc.CalculateBrightness(gray) * altitudeScale
}
