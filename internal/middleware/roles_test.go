package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

func roleRequest(t *testing.T, handler gin.HandlerFunc, role string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/protected", func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
	}, handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, http.StatusOK, roleRequest(t, RequireAdmin(), "admin").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, RequireAdmin(), "shopkeeper").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, RequireAdmin(), "customer").Code)
}

func TestRequireShopkeeper(t *testing.T) {
	assert.Equal(t, http.StatusOK, roleRequest(t, RequireShopkeeper(), "shopkeeper").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, RequireShopkeeper(), "admin").Code)
}

func TestRequireRoleFailsClosedOnUnknownRole(t *testing.T) {
	// Garbage in the role claim must never match a gate.
	assert.Equal(t, http.StatusForbidden, roleRequest(t, RequireRole(models.RoleAdmin), "Admin").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, RequireRole(models.RoleAdmin), "root").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, RequireRole(models.RoleAdmin), "").Code)
}

func TestRequireRoleMultiple(t *testing.T) {
	gate := RequireRole(models.RoleShopkeeper, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, roleRequest(t, gate, "shopkeeper").Code)
	assert.Equal(t, http.StatusOK, roleRequest(t, gate, "admin").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, gate, "customer").Code)
}
