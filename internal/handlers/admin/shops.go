package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/cache"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/handlers/shop"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

// ListShopsByStatus is the moderation queue. Defaults to pending.
func ListShopsByStatus(c *gin.Context) {
	status, err := models.ParseApprovalStatus(c.DefaultQuery("status", string(models.StatusPending)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shops, err := shop.LoadShopsByStatus(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop listing failed"})
		return
	}

	// Moderators review banners through short-lived signed URLs, so the
	// bucket does not have to be public.
	for i := range shops {
		if shops[i].BannerURL == "" {
			continue
		}
		if signed, err := services.GenerateSignedURL(c.Request.Context(), shops[i].BannerURL, 15*time.Minute); err == nil {
			shops[i].BannerURL = signed
		}
	}

	c.JSON(http.StatusOK, gin.H{"count": len(shops), "data": shops})
}

func ApproveShop(c *gin.Context) {
	s, ok := loadShopForModeration(c)
	if !ok {
		return
	}

	if !models.CanApprove(s.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "only pending shops can be approved"})
		return
	}

	oldStatus := s.Status
	s.Status = models.StatusApproved
	s.RejectionReason = ""
	s.UpdatedAt = time.Now()

	if err := shop.PersistStatusChange(s, oldStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approval failed"})
		return
	}

	cache.InvalidateShopCache(s.ID.String())
	go services.IndexShop(s)
	go services.PublishShopEvent(services.ShopApproved, s)

	c.JSON(http.StatusOK, s)
}

func RejectShop(c *gin.Context) {
	s, ok := loadShopForModeration(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	if !models.CanReject(s.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "only pending shops can be rejected"})
		return
	}

	oldStatus := s.Status
	s.Status = models.StatusRejected
	s.RejectionReason = input.Reason
	s.UpdatedAt = time.Now()

	if err := shop.PersistStatusChange(s, oldStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rejection failed"})
		return
	}

	cache.InvalidateShopCache(s.ID.String())
	go services.IndexShop(s)
	go services.PublishShopEvent(services.ShopRejected, s)

	c.JSON(http.StatusOK, s)
}

func loadShopForModeration(c *gin.Context) (models.Shop, bool) {
	shopID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop id"})
		return models.Shop{}, false
	}

	s, err := shop.LoadShop(shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return models.Shop{}, false
	}
	return s, true
}
