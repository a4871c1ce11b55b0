package domain

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// CoordinatePlaces is the number of decimal places kept for stored coordinates.
const CoordinatePlaces = 8

var (
	minLat = decimal.NewFromInt(-90)
	maxLat = decimal.NewFromInt(90)
	minLng = decimal.NewFromInt(-180)
	maxLng = decimal.NewFromInt(180)
)

// ErrCoordinatesOutOfRange is returned for latitude/longitude outside the valid range.
var ErrCoordinatesOutOfRange = errors.New("coordinates out of range")

// Coordinates is a fixed-precision geographic point.
type Coordinates struct {
	Lat decimal.Decimal
	Lng decimal.Decimal
}

// NewCoordinates converts float coordinates into fixed-precision decimals.
// The float is formatted with the shortest representation first, so 19.4 stays 19.4
// instead of picking up binary noise.
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if !finite(lat) || !finite(lng) {
		return Coordinates{}, ErrCoordinatesOutOfRange
	}
	return ParseCoordinates(decimal.NewFromFloat(lat), decimal.NewFromFloat(lng))
}

// ParseCoordinates validates and rounds decimal coordinates.
func ParseCoordinates(lat, lng decimal.Decimal) (Coordinates, error) {
	if lat.LessThan(minLat) || lat.GreaterThan(maxLat) {
		return Coordinates{}, ErrCoordinatesOutOfRange
	}
	if lng.LessThan(minLng) || lng.GreaterThan(maxLng) {
		return Coordinates{}, ErrCoordinatesOutOfRange
	}
	return Coordinates{
		Lat: lat.Round(CoordinatePlaces),
		Lng: lng.Round(CoordinatePlaces),
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
