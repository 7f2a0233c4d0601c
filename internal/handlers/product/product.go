package product

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

func CreateProduct(c *gin.Context) {
	shopID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop id"})
		return
	}

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		ImageURL    string   `json:"image_url"`
		CatalogID   string   `json:"catalog_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if !requireShopOwner(c, session, shopID) {
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		ShopID:      shopID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}

	// A catalog reference pre-fills the listing from the shared template.
	if input.CatalogID != "" {
		catalogID, err := gocql.ParseUUID(input.CatalogID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog id"})
			return
		}
		var item models.CatalogItem
		if err := session.Query(`SELECT name, brand, category, image_url FROM catalog_items WHERE catalog_id = ?`, catalogID).
			Scan(&item.Name, &item.Brand, &item.Category, &item.ImageURL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "catalog item not found"})
			return
		}
		p.CatalogID = &catalogID
		if p.Title == "" {
			p.Title = item.Name
		}
		if p.ImageURL == "" {
			p.ImageURL = item.ImageURL
		}
	}

	if p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	if p.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
		return
	}

	if err := session.Query(`INSERT INTO products (product_id, shop_id, title, description, price, stock, image_url, catalog_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ShopID, p.Title, p.Description, p.Price, p.Stock, p.ImageURL, p.CatalogID, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product creation failed: " + err.Error()})
		return
	}
	if err := insertProductByShopRow(session, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product indexing failed"})
		return
	}

	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// ListShopProducts is public for approved shops; the owner sees the list in
// any status.
func ListShopProducts(c *gin.Context) {
	shopID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop id"})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	ownerID, status, err := shopOwnerAndStatus(session, shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}
	if status != models.StatusApproved &&
		c.GetString("user_id") != ownerID.String() &&
		c.GetString("role") != string(models.RoleAdmin) {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}

	iter := session.Query(`SELECT product_id, title, price, stock, image_url FROM products_by_shop WHERE shop_id = ?`, shopID).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Title, &p.Price, &p.Stock, &p.ImageURL) {
		p.ShopID = shopID
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(products), "data": products})
}

func GetProduct(c *gin.Context) {
	session, p, ok := loadProduct(c)
	if !ok {
		return
	}

	_, status, err := shopOwnerAndStatus(session, p.ShopID)
	if err != nil || (status != models.StatusApproved && c.GetString("role") != string(models.RoleAdmin) &&
		!isShopOwner(c, session, p.ShopID)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func UpdateProduct(c *gin.Context) {
	session, p, ok := loadProduct(c)
	if !ok {
		return
	}
	if !requireShopOwner(c, session, p.ShopID) {
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	if update.Price != nil && *update.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	if update.Stock != nil && *update.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
		return
	}

	p.ApplyUpdate(update)
	p.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE products SET title = ?, description = ?, price = ?, stock = ?, image_url = ?, updated_at = ? WHERE product_id = ?`,
		p.Title, p.Description, p.Price, p.Stock, p.ImageURL, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
		return
	}
	if err := insertProductByShopRow(session, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
		return
	}

	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

func DeleteProduct(c *gin.Context) {
	session, p, ok := loadProduct(c)
	if !ok {
		return
	}

	if c.GetString("role") != string(models.RoleAdmin) && !isShopOwner(c, session, p.ShopID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your product"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product deletion failed"})
		return
	}
	_ = session.Query(`DELETE FROM products_by_shop WHERE shop_id = ? AND product_id = ?`, p.ShopID, p.ID).Exec()

	if p.ImageURL != "" {
		_ = services.DeleteObject(c.Request.Context(), p.ImageURL)
	}
	services.RemoveFromIndex("products", p.ID.String())

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// ================== SHARED HELPERS ==================

func loadProduct(c *gin.Context) (*gocql.Session, models.Product, bool) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return nil, models.Product{}, false
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return nil, models.Product{}, false
	}

	p := models.Product{ID: productID}
	err = session.Query(`SELECT shop_id, title, description, price, stock, image_url, catalog_id, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).Scan(
		&p.ShopID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CatalogID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return nil, models.Product{}, false
	}

	return session, p, true
}

func shopOwnerAndStatus(session *gocql.Session, shopID gocql.UUID) (gocql.UUID, models.ApprovalStatus, error) {
	var ownerID gocql.UUID
	var status string
	err := session.Query(`SELECT owner_id, status FROM shops WHERE shop_id = ?`, shopID).Scan(&ownerID, &status)
	return ownerID, models.ApprovalStatus(status), err
}

func isShopOwner(c *gin.Context, session *gocql.Session, shopID gocql.UUID) bool {
	ownerID, _, err := shopOwnerAndStatus(session, shopID)
	return err == nil && c.GetString("user_id") == ownerID.String()
}

// requireShopOwner answers 404/403 itself when the check fails.
func requireShopOwner(c *gin.Context, session *gocql.Session, shopID gocql.UUID) bool {
	ownerID, _, err := shopOwnerAndStatus(session, shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return false
	}
	if c.GetString("user_id") != ownerID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return false
	}
	return true
}

func insertProductByShopRow(session *gocql.Session, p models.Product) error {
	return session.Query(`INSERT INTO products_by_shop (shop_id, product_id, title, price, stock, image_url) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ShopID, p.ID, p.Title, p.Price, p.Stock, p.ImageURL).Exec()
}
