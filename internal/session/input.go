package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// RequestID identifies one input request.
type RequestID uint64

// InputKind says what a pending request is for.
type InputKind int

const (
	// PlaceCircle completes a circle-tool map click.
	PlaceCircle InputKind = iota + 1
	// EditRadius changes the radius of an existing circle.
	EditRadius
)

// InputRequest asks the user for a numeric value. It stays pending until
// Resolve or Cancel is called with its ID.
type InputRequest struct {
	ID      RequestID
	Kind    InputKind
	Prompt  string
	Default string

	// Point is the clicked location for PlaceCircle.
	Point orb.Point
	// Shape is the circle being edited for EditRadius.
	Shape ShapeID
}

// ParseRadius parses a radius in meters. Empty, non-numeric, non-finite and
// non-positive values are rejected with ErrInvalidRadius.
func ParseRadius(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: no value", ErrInvalidRadius)
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidRadius, s)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive number", ErrInvalidRadius, s)
	}
	return r, nil
}

func formatMeters(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
