package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	c, err := Decode("09320-099700")
	require.NoError(t, err)
	assert.Equal(t, Cell{Lat: 9320, Lng: 99700}, c)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("09320099700")
	assert.Error(t, err)

	_, err = Decode("abc-099700")
	assert.Error(t, err)
}

func TestID_RoundTrip(t *testing.T) {
	c, err := Decode("09320-099700")
	require.NoError(t, err)
	assert.Equal(t, "09320-099700", c.ID())
}

func TestShift_Ring1Neighbor(t *testing.T) {
	c := Cell{Lat: 9320, Lng: 99700}
	n := c.Shift(Offset{DLat: -5, DLng: 0})
	assert.Equal(t, "09315-099700", n.ID())

	lat, lng := n.Center()
	assert.InDelta(t, 9.315, lat, 1e-9)
	assert.InDelta(t, 99.700, lng, 1e-9)
}

func TestRings_Shape(t *testing.T) {
	rings := Rings()
	require.Len(t, rings, 3)
	assert.Len(t, rings[0], 4)
	assert.Len(t, rings[1], 4)
	assert.Len(t, rings[2], 8)
}

func TestRings_Deterministic(t *testing.T) {
	assert.Equal(t, Rings(), Rings())
}

func TestDistanceKm_Zero(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(9.3, 99.7, 9.3, 99.7))
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Two cells 5 grid units (0.005 deg) apart in latitude: ~0.556 km.
	d := DistanceKm(9.315, 99.700, 9.320, 99.700)
	assert.InDelta(t, 0.556, d, 0.01)
}
