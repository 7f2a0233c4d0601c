package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, Coordinate{Latitude: 0, Longitude: 0}.Validate())
	assert.NoError(t, Coordinate{Latitude: 90, Longitude: 180}.Validate())
	assert.NoError(t, Coordinate{Latitude: -90, Longitude: -180}.Validate())

	assert.Error(t, Coordinate{Latitude: 90.0001, Longitude: 0}.Validate())
	assert.Error(t, Coordinate{Latitude: -91, Longitude: 0}.Validate())
	assert.Error(t, Coordinate{Latitude: 0, Longitude: 180.5}.Validate())
	assert.Error(t, Coordinate{Latitude: 0, Longitude: -200}.Validate())
}

func TestDistanceZeroAndSymmetry(t *testing.T) {
	a := Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	b := Coordinate{Latitude: 48.8566, Longitude: 2.3522}

	assert.Zero(t, Distance(a, a))
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistanceKnownValues(t *testing.T) {
	// San Francisco to Paris, roughly 8954 km on a spherical Earth.
	sf := Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	paris := Coordinate{Latitude: 48.8566, Longitude: 2.3522}
	assert.InDelta(t, 8954000, Distance(sf, paris), 20000)

	// One degree of latitude is about 111.2 km.
	eq := Coordinate{Latitude: 0, Longitude: 0}
	oneUp := Coordinate{Latitude: 1, Longitude: 0}
	assert.InDelta(t, 111195, Distance(eq, oneUp), 100)
}

func TestDistanceAntipodal(t *testing.T) {
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0, Longitude: 180}
	// Half the circumference; the asin clamp keeps this finite.
	assert.InDelta(t, EarthRadiusMeters*3.14159265, Distance(a, b), 1000)
}

func TestBoundingBoxContainsNearbyPoint(t *testing.T) {
	origin := Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	box := BoundingBox(origin, 5000)

	near := Coordinate{Latitude: 37.7755, Longitude: -122.4190}
	far := Coordinate{Latitude: 37.9, Longitude: -122.4194}

	assert.True(t, box.Contains(near))
	require.Greater(t, Distance(origin, far), 5000.0)
	assert.False(t, box.Contains(far))
}

func TestBoundingBoxPole(t *testing.T) {
	origin := Coordinate{Latitude: 89.9, Longitude: 0}
	box := BoundingBox(origin, 50000)

	// The box touches the pole, so every longitude is in range.
	assert.True(t, box.Contains(Coordinate{Latitude: 89.95, Longitude: 179}))
	assert.True(t, box.Contains(Coordinate{Latitude: 89.95, Longitude: -90}))
	assert.False(t, box.Contains(Coordinate{Latitude: 80, Longitude: 0}))
}

func TestBoundingBoxAntimeridianWrap(t *testing.T) {
	origin := Coordinate{Latitude: 0, Longitude: 179.99}
	box := BoundingBox(origin, 10000)

	// Points just across the date line are inside the wrapped interval.
	assert.True(t, box.Contains(Coordinate{Latitude: 0, Longitude: -179.95}))
	assert.True(t, box.Contains(Coordinate{Latitude: 0, Longitude: 179.95}))
	assert.False(t, box.Contains(Coordinate{Latitude: 0, Longitude: 0}))
}
