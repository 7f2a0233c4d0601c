package shop

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

// SearchShops searches approved shops by name, address or category.
// Elasticsearch first; when the index is empty or unreachable, fall back to
// an in-memory filter over the approved partition.
func SearchShops(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parameter 'q' missing"})
		return
	}

	results, err := services.SearchShops(query)
	if err == nil && len(results) > 0 {
		// The index carries every status; only approved shops are public.
		approved := make([]map[string]interface{}, 0, len(results))
		for _, r := range results {
			if status, ok := r["status"].(string); ok && status == string(models.StatusApproved) {
				approved = append(approved, r)
			}
		}
		c.JSON(http.StatusOK, gin.H{"count": len(approved), "data": approved})
		return
	}

	shops, err := LoadApprovedShops()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop search failed"})
		return
	}

	var matched []models.Shop
	for _, s := range shops {
		if containsIgnoreCase(s.Name, query) || containsIgnoreCase(s.Address, query) || containsIgnoreCase(s.Category, query) {
			matched = append(matched, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{"count": len(matched), "data": matched})
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
