package geo

import (
	"math"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/apperr"
)

const (
	// EarthRadiusMeters is the mean spherical radius. Adequate at metro
	// scale; we do not do ellipsoid math.
	EarthRadiusMeters = 6371000.0

	// DefaultRadiusMeters applies when a nearby query omits the radius.
	// The whole API speaks meters.
	DefaultRadiusMeters = 5000.0

	// MaxResults is the hard ceiling on nearby results. Larger limits are
	// clamped, never rejected.
	MaxResults = 50

	// DefaultLimit applies when a nearby query omits the limit.
	DefaultLimit = 20
)

// Coordinate is a WGS 84 point. Latitude and longitude are only ever valid
// together.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return apperr.InvalidArgument("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return apperr.InvalidArgument("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in meters,
// using the haversine formula on a spherical Earth.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Box is a rectangular candidate filter around an origin. It is strictly a
// cheap pre-pass: final inclusion is always decided by Distance.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	// wraps marks a box crossing the antimeridian, where the longitude
	// interval is [MinLon, 180] ∪ [-180, MaxLon].
	wraps bool
	// allLon marks a box near a pole, where every longitude qualifies.
	allLon bool
}

// BoundingBox sizes a box to radiusMeters around origin. Near the poles the
// parallel circles shrink, so once the box touches a pole the longitude span
// covers the full ±180 range.
func BoundingBox(origin Coordinate, radiusMeters float64) Box {
	latDelta := radiusMeters / EarthRadiusMeters * 180 / math.Pi

	b := Box{
		MinLat: origin.Latitude - latDelta,
		MaxLat: origin.Latitude + latDelta,
	}

	if b.MinLat <= -90 || b.MaxLat >= 90 {
		b.MinLat = math.Max(b.MinLat, -90)
		b.MaxLat = math.Min(b.MaxLat, 90)
		b.allLon = true
		b.MinLon, b.MaxLon = -180, 180
		return b
	}

	// Widen by the worst-case parallel inside the box.
	maxAbsLat := math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat))
	lonDelta := latDelta / math.Cos(maxAbsLat*math.Pi/180)
	if lonDelta >= 180 {
		b.allLon = true
		b.MinLon, b.MaxLon = -180, 180
		return b
	}

	b.MinLon = origin.Longitude - lonDelta
	b.MaxLon = origin.Longitude + lonDelta
	if b.MinLon < -180 {
		b.MinLon += 360
		b.wraps = true
	}
	if b.MaxLon > 180 {
		b.MaxLon -= 360
		b.wraps = true
	}
	return b
}

func (b Box) Contains(c Coordinate) bool {
	if c.Latitude < b.MinLat || c.Latitude > b.MaxLat {
		return false
	}
	if b.allLon {
		return true
	}
	if b.wraps {
		return c.Longitude >= b.MinLon || c.Longitude <= b.MaxLon
	}
	return c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}
