package shop

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/apperr"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/geo"
)

// NearbyShops handles GET /api/shops/nearby?latitude&longitude&radius&limit.
//
// radius is in meters everywhere (default 5000). limit defaults to 20 and is
// clamped to 50. The store contributes an unordered approved-shop scan;
// distance filtering and ordering happen in the geo package, so a mid-scan
// failure returns an error and never a partial list.
func NearbyShops(c *gin.Context) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	if latStr == "" || lonStr == "" {
		apperr.Respond(c, apperr.InvalidArgument("latitude and longitude are required together"))
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		apperr.Respond(c, apperr.InvalidArgument("latitude must be a number"))
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		apperr.Respond(c, apperr.InvalidArgument("longitude must be a number"))
		return
	}
	origin := geo.Coordinate{Latitude: lat, Longitude: lon}

	radius := geo.DefaultRadiusMeters
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			apperr.Respond(c, apperr.InvalidArgument("radius must be a number of meters"))
			return
		}
	}

	limit := geo.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			apperr.Respond(c, apperr.InvalidArgument("limit must be an integer"))
			return
		}
	}

	shops, err := LoadApprovedShops()
	if err != nil {
		apperr.Respond(c, apperr.Unavailable("shop store unavailable", err))
		return
	}

	results, err := geo.FindNearby(shops, origin, radius, limit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(results),
		"data":  results,
	})
}
