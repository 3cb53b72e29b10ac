package session

// ZoomForRadius is the display zoom for a circle of radius meters.
func ZoomForRadius(radius float64) int {
	switch {
	case radius <= 500:
		return 15
	case radius <= 2000:
		return 12
	case radius <= 5000:
		return 10
	}
	return 8
}
