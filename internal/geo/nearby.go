package geo

import (
	"math"
	"sort"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/apperr"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

// DistanceInfo is attached to every nearby result. Kilometers is derived
// from meters, rounded to one decimal.
type DistanceInfo struct {
	Meters     float64 `json:"meters"`
	Kilometers float64 `json:"kilometers"`
}

type NearbyShop struct {
	models.Shop
	Distance DistanceInfo `json:"distance"`
}

// FindNearby returns the approved shops within radiusMeters of origin,
// ordered by ascending distance (ties broken by shop id), truncated to
// limit. The result is all-or-nothing: any validation failure returns an
// error and no partial list.
//
// Shops are filtered to approved here regardless of what the caller loaded,
// so a store scan that already restricted to the approved partition and an
// unrestricted scan produce identical results.
func FindNearby(shops []models.Shop, origin Coordinate, radiusMeters float64, limit int) ([]NearbyShop, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, apperr.InvalidArgument("radius must be greater than zero meters")
	}
	if limit <= 0 {
		return nil, apperr.InvalidArgument("limit must be a positive integer")
	}
	if limit > MaxResults {
		limit = MaxResults
	}

	box := BoundingBox(origin, radiusMeters)

	results := make([]NearbyShop, 0, limit)
	for _, s := range shops {
		if s.Status != models.StatusApproved {
			continue
		}
		loc := Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
		if !box.Contains(loc) {
			continue
		}
		d := Distance(origin, loc)
		if d > radiusMeters {
			continue
		}
		results = append(results, NearbyShop{
			Shop: s,
			Distance: DistanceInfo{
				Meters:     d,
				Kilometers: math.Round(d/100) / 10,
			},
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance.Meters != results[j].Distance.Meters {
			return results[i].Distance.Meters < results[j].Distance.Meters
		}
		return results[i].ID.String() < results[j].ID.String()
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
