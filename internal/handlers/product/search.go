package product

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

// SearchProducts searches listings by title or description. Elasticsearch
// first; falls back to a full Scylla scan filtered in memory when the index
// is empty or unreachable (not great, but the fallback only runs when ES is
// down).
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parameter 'q' missing"})
		return
	}

	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, gin.H{"count": len(results), "data": results})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	iter := session.Query(`SELECT product_id, shop_id, title, description, price, stock, image_url, catalog_id, created_at, updated_at FROM products`).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.ShopID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CatalogID, &p.CreatedAt, &p.UpdatedAt) {
		if containsIgnoreCase(p.Title, query) || containsIgnoreCase(p.Description, query) {
			products = append(products, p)
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(products), "data": products})
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
