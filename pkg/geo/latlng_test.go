package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{18.55, "18.55"},
		{73.94, "73.94"},
		{1, "1"},
		{-0.5, "-0.5"},
		{0.000001, "0.000001"},
		{-122.0840575, "-122.0840575"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDegrees(tt.in))
	}
}

func TestLatLng_String(t *testing.T) {
	assert.Equal(t, "18.55,73.94", LatLng{Lat: 18.55, Lng: 73.94}.String())
	assert.Equal(t, "1,2", LatLng{Lat: 1, Lng: 2}.String())
}

func TestLatLng_Validate(t *testing.T) {
	assert.NoError(t, LatLng{Lat: 90, Lng: -180}.Validate())
	assert.Error(t, LatLng{Lat: 90.1, Lng: 0}.Validate())
	assert.Error(t, LatLng{Lat: 0, Lng: 180.5}.Validate())
	assert.Error(t, LatLng{Lat: math.NaN(), Lng: 0}.Validate())
}

func TestDistanceMeters(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(LatLng{Lat: 18.55, Lng: 73.94}, LatLng{Lat: 18.55, Lng: 73.94}))
	assert.InDelta(t, 111194.9, DistanceMeters(LatLng{}, LatLng{Lng: 1}), 1)
}
