package catalog

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

// Catalog items are admin-curated product templates. Their lifecycle is
// independent from the listings that reference them: deleting an item never
// touches products.

func CreateCatalogItem(c *gin.Context) {
	var input struct {
		Name     string            `json:"name"`
		Brand    string            `json:"brand"`
		Category string            `json:"category"`
		Specs    map[string]string `json:"specs"`
		ImageURL string            `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	item := models.CatalogItem{
		ID:        gocql.TimeUUID(),
		Name:      input.Name,
		Brand:     input.Brand,
		Category:  input.Category,
		Specs:     input.Specs,
		ImageURL:  input.ImageURL,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO catalog_items (catalog_id, name, brand, category, specs, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Brand, item.Category, item.Specs, item.ImageURL, item.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog item creation failed"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListCatalogItems supports optional brand and category filters. The
// catalog is small (thousands, not millions), so filtering in memory over a
// single scan is fine.
func ListCatalogItems(c *gin.Context) {
	brand := c.Query("brand")
	category := c.Query("category")

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	iter := session.Query(`SELECT catalog_id, name, brand, category, specs, image_url, created_at FROM catalog_items`).Iter()

	var items []models.CatalogItem
	var item models.CatalogItem
	for iter.Scan(&item.ID, &item.Name, &item.Brand, &item.Category, &item.Specs, &item.ImageURL, &item.CreatedAt) {
		if (brand == "" || item.Brand == brand) && (category == "" || item.Category == category) {
			items = append(items, item)
		}
		item = models.CatalogItem{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(items), "data": items})
}

func GetCatalogItem(c *gin.Context) {
	item, _, ok := loadCatalogItem(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, item)
}

func UpdateCatalogItem(c *gin.Context) {
	item, session, ok := loadCatalogItem(c)
	if !ok {
		return
	}

	var input struct {
		Name     *string            `json:"name"`
		Brand    *string            `json:"brand"`
		Category *string            `json:"category"`
		Specs    *map[string]string `json:"specs"`
		ImageURL *string            `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Specs != nil {
		item.Specs = *input.Specs
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}

	if err := session.Query(`UPDATE catalog_items SET name = ?, brand = ?, category = ?, specs = ?, image_url = ? WHERE catalog_id = ?`,
		item.Name, item.Brand, item.Category, item.Specs, item.ImageURL, item.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog item update failed"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func DeleteCatalogItem(c *gin.Context) {
	item, session, ok := loadCatalogItem(c)
	if !ok {
		return
	}

	if err := session.Query(`DELETE FROM catalog_items WHERE catalog_id = ?`, item.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog item deletion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "catalog item deleted"})
}

func loadCatalogItem(c *gin.Context) (models.CatalogItem, *gocql.Session, bool) {
	catalogID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog id"})
		return models.CatalogItem{}, nil, false
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return models.CatalogItem{}, nil, false
	}

	item := models.CatalogItem{ID: catalogID}
	err = session.Query(`SELECT name, brand, category, specs, image_url, created_at FROM catalog_items WHERE catalog_id = ?`, catalogID).
		Scan(&item.Name, &item.Brand, &item.Category, &item.Specs, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
		return models.CatalogItem{}, nil, false
	}

	return item, session, true
}
