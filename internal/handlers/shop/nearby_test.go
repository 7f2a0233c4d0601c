package shop

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func nearbyRequest(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/shops/nearby", NearbyShops)

	req := httptest.NewRequest(http.MethodGet, "/shops/nearby"+query, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestNearbyShopsRequiresCoordinatePair(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, nearbyRequest(t, "").Code)
	assert.Equal(t, http.StatusBadRequest, nearbyRequest(t, "?latitude=37.77").Code)
	assert.Equal(t, http.StatusBadRequest, nearbyRequest(t, "?longitude=-122.42").Code)
}

func TestNearbyShopsRejectsMalformedParams(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest,
		nearbyRequest(t, "?latitude=abc&longitude=-122.42").Code)
	assert.Equal(t, http.StatusBadRequest,
		nearbyRequest(t, "?latitude=37.77&longitude=east").Code)
	assert.Equal(t, http.StatusBadRequest,
		nearbyRequest(t, "?latitude=37.77&longitude=-122.42&radius=close").Code)
	assert.Equal(t, http.StatusBadRequest,
		nearbyRequest(t, "?latitude=37.77&longitude=-122.42&limit=many").Code)
}
