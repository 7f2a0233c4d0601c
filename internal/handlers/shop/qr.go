package shop

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

// ShopQR serves a PNG QR code pointing at the shop's public page, for
// shopkeepers to print and display at the counter.
func ShopQR(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	if shop.Status != models.StatusApproved && !canSeeUnapproved(c, shop) {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}

	png, err := qrcode.Encode(frontend+"/shops/"+shop.ID.String(), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
