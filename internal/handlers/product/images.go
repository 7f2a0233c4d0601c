package product

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

// UploadProductImage stores the product photo in MinIO and swaps the URL on
// the listing, deleting the previous object.
func UploadProductImage(c *gin.Context) {
	session, p, ok := loadProduct(c)
	if !ok {
		return
	}
	if !requireShopOwner(c, session, p.ShopID) {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file missing"})
		return
	}

	url, _, err := services.UploadImage(c.Request.Context(), "products", fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return
	}

	oldURL := p.ImageURL
	p.ImageURL = url
	p.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE products SET image_url = ?, updated_at = ? WHERE product_id = ?`,
		p.ImageURL, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image update failed"})
		return
	}
	if err := insertProductByShopRow(session, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image update failed"})
		return
	}

	if oldURL != "" {
		_ = services.DeleteObject(c.Request.Context(), oldURL)
	}

	go services.IndexProduct(p)

	c.JSON(http.StatusOK, gin.H{
		"message":   "image uploaded",
		"image_url": url,
	})
}
