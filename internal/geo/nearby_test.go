package geo

import (
	"fmt"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/apperr"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

var testOrigin = Coordinate{Latitude: 37.7749, Longitude: -122.4194}

func testShop(t *testing.T, name string, lat, lon float64, status models.ApprovalStatus) models.Shop {
	t.Helper()
	id, err := gocql.RandomUUID()
	require.NoError(t, err)
	return models.Shop{
		ID:        id,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Status:    status,
	}
}

func TestFindNearbyFiltersByStatusAndRadius(t *testing.T) {
	shops := []models.Shop{
		testShop(t, "close approved", 37.7752, -122.4194, models.StatusApproved),
		testShop(t, "close pending", 37.7752, -122.4195, models.StatusPending),
		testShop(t, "close rejected", 37.7752, -122.4196, models.StatusRejected),
		testShop(t, "far approved", 37.9, -122.4194, models.StatusApproved),
	}

	results, err := FindNearby(shops, testOrigin, 5000, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "close approved", results[0].Name)
	assert.LessOrEqual(t, results[0].Distance.Meters, 5000.0)
}

func TestFindNearbyRadiusMonotonicity(t *testing.T) {
	shops := []models.Shop{
		testShop(t, "a", 37.7752, -122.4194, models.StatusApproved), // ~33 m
		testShop(t, "b", 37.7840, -122.4194, models.StatusApproved), // ~1 km
		testShop(t, "c", 37.8200, -122.4194, models.StatusApproved), // ~5 km
	}

	small, err := FindNearby(shops, testOrigin, 100, 20)
	require.NoError(t, err)
	large, err := FindNearby(shops, testOrigin, 10000, 20)
	require.NoError(t, err)

	assert.Len(t, small, 1)
	assert.Len(t, large, 3)
	// Everything in the small result is in the large one.
	assert.Equal(t, small[0].ID, large[0].ID)
}

func TestFindNearbySortedByDistanceThenID(t *testing.T) {
	shops := []models.Shop{
		testShop(t, "third", 37.7800, -122.4194, models.StatusApproved),
		testShop(t, "first", 37.7750, -122.4194, models.StatusApproved),
		testShop(t, "second", 37.7770, -122.4194, models.StatusApproved),
	}

	results, err := FindNearby(shops, testOrigin, 5000, 20)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)

	// Equal distances fall back to the id ordering so results are stable.
	dup1 := testShop(t, "dup", 37.7760, -122.4194, models.StatusApproved)
	dup2 := testShop(t, "dup", 37.7760, -122.4194, models.StatusApproved)
	results, err = FindNearby([]models.Shop{dup2, dup1}, testOrigin, 5000, 20)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Less(t, results[0].ID.String(), results[1].ID.String())
}

func TestFindNearbyLimitClamped(t *testing.T) {
	var shops []models.Shop
	for i := 0; i < 60; i++ {
		shops = append(shops, testShop(t, fmt.Sprintf("shop-%d", i),
			37.7749+float64(i)*0.0001, -122.4194, models.StatusApproved))
	}

	// A limit above the ceiling is clamped, not rejected.
	results, err := FindNearby(shops, testOrigin, 50000, 1000)
	require.NoError(t, err)
	assert.Len(t, results, MaxResults)

	results, err = FindNearby(shops, testOrigin, 50000, 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestFindNearbyRejectsBadInput(t *testing.T) {
	shops := []models.Shop{testShop(t, "a", 37.7752, -122.4194, models.StatusApproved)}

	_, err := FindNearby(shops, Coordinate{Latitude: 91, Longitude: 0}, 5000, 20)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = FindNearby(shops, testOrigin, 0, 20)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = FindNearby(shops, testOrigin, -100, 20)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = FindNearby(shops, testOrigin, 5000, 0)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestFindNearbyKilometersRounded(t *testing.T) {
	shops := []models.Shop{
		testShop(t, "a", 37.7860, -122.4194, models.StatusApproved), // ~1.23 km
	}

	results, err := FindNearby(shops, testOrigin, 5000, 20)
	require.NoError(t, err)
	require.Len(t, results, 1)

	km := results[0].Distance.Kilometers
	assert.InDelta(t, results[0].Distance.Meters/1000, km, 0.05)
	// One decimal of precision.
	assert.Equal(t, km, float64(int(km*10))/10)
}

func TestFindNearbyEmpty(t *testing.T) {
	results, err := FindNearby(nil, testOrigin, 5000, 20)
	require.NoError(t, err)
	assert.Empty(t, results)
}
