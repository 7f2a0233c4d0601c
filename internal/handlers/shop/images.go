package shop

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/cache"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

// UploadBanner replaces the shop banner. A banner edit is not a critical
// field, so the approval status never changes here.
func UploadBanner(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	if c.GetString("user_id") != shop.OwnerID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return
	}

	fileHeader, err := c.FormFile("banner")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "banner file missing"})
		return
	}

	url, _, err := services.UploadImage(c.Request.Context(), "banners", fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "banner upload failed"})
		return
	}

	oldBanner := shop.BannerURL
	oldStatus := shop.Status
	shop.BannerURL = url
	shop.UpdatedAt = time.Now()

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}
	if err := persistShopUpdate(session, shop, oldStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "banner update failed"})
		return
	}

	if oldBanner != "" {
		_ = services.DeleteObject(c.Request.Context(), oldBanner)
	}

	cache.InvalidateShopCache(shop.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"message":    "banner uploaded",
		"banner_url": url,
	})
}
