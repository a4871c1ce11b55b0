package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPackageState_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, StatePending.Valid())
	require.True(t, StateDelivered.Valid())
	require.False(t, PackageState("lost").Valid())
	require.False(t, PackageState("").Valid())
}

func TestNewCoordinates_KeepsShortestRepresentation(t *testing.T) {
	t.Parallel()

	c, err := NewCoordinates(19.4, -99.1)
	require.NoError(t, err)
	require.Equal(t, "19.4", c.Lat.String())
	require.Equal(t, "-99.1", c.Lng.String())
}

func TestNewCoordinates_RoundsToFixedPlaces(t *testing.T) {
	t.Parallel()

	c, err := NewCoordinates(19.123456789123, -99.987654321987)
	require.NoError(t, err)
	require.Equal(t, "19.12345679", c.Lat.String())
	require.Equal(t, "-99.98765432", c.Lng.String())
}

func TestNewCoordinates_OutOfRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"lat too low", -90.5, 0},
		{"lat too high", 91, 0},
		{"lng too low", 0, -180.01},
		{"lng too high", 0, 181},
		{"lat NaN", math.NaN(), 0},
		{"lng Inf", 0, math.Inf(1)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCoordinates(tc.lat, tc.lng)
			require.ErrorIs(t, err, ErrCoordinatesOutOfRange)
		})
	}
}

func TestParseCoordinates_Bounds(t *testing.T) {
	t.Parallel()

	c, err := ParseCoordinates(decimal.NewFromInt(90), decimal.NewFromInt(-180))
	require.NoError(t, err)
	require.True(t, c.Lat.Equal(decimal.NewFromInt(90)))
	require.True(t, c.Lng.Equal(decimal.NewFromInt(-180)))
}
