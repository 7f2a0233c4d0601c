package shop

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/cache"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/geo"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/services"
)

func CreateShop(c *gin.Context) {
	var input struct {
		Name      string   `json:"name"`
		Address   string   `json:"address"`
		Category  string   `json:"category"`
		Phone     string   `json:"phone"`
		WhatsApp  string   `json:"whatsapp"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name == "" || input.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and address are required"})
		return
	}
	if input.Latitude == nil || input.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required together"})
		return
	}
	loc := geo.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	if err := loc.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, err := gocql.ParseUUID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	// One shop per shopkeeper.
	var existing gocql.UUID
	if err := session.Query(`SELECT shop_id FROM shops_by_owner WHERE owner_id = ?`, ownerID).Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "you already have a shop"})
		return
	}

	now := time.Now()
	shop := models.Shop{
		ID:        gocql.TimeUUID(),
		OwnerID:   ownerID,
		Name:      input.Name,
		Address:   input.Address,
		Category:  input.Category,
		Phone:     input.Phone,
		WhatsApp:  input.WhatsApp,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := insertShopRows(session, shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop creation failed: " + err.Error()})
		return
	}

	go services.IndexShop(shop)
	go services.PublishShopEvent(services.ShopCreated, shop)

	c.JSON(http.StatusCreated, shop)
}

func GetShop(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	// Pending/rejected shops exist only for their owner and for admins.
	if shop.Status != models.StatusApproved && !canSeeUnapproved(c, shop) {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

func GetMyShop(c *gin.Context) {
	ownerID, err := gocql.ParseUUID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	var shopID gocql.UUID
	if err := session.Query(`SELECT shop_id FROM shops_by_owner WHERE owner_id = ?`, ownerID).Scan(&shopID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "you have no shop yet"})
		return
	}

	shop, err := loadShopByID(session, shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

// ListShops returns approved shops without any distance filter.
func ListShops(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > geo.MaxResults {
		limit = geo.MaxResults
	}

	shops, err := LoadApprovedShops()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop listing failed"})
		return
	}

	if len(shops) > limit {
		shops = shops[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"count": len(shops), "data": shops})
}

func UpdateShop(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	isOwner := userID == shop.OwnerID.String()
	isAdmin := role == string(models.RoleAdmin)
	if !isOwner && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return
	}

	var update models.ShopUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	oldStatus := shop.Status
	reverted := shop.Apply(update, isOwner && !isAdmin)
	shop.UpdatedAt = time.Now()

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if err := persistShopUpdate(session, shop, oldStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop update failed: " + err.Error()})
		return
	}

	cache.InvalidateShopCache(shop.ID.String())
	go services.IndexShop(shop)
	if reverted {
		go services.PublishShopEvent(services.ShopResubmitted, shop)
	}

	c.JSON(http.StatusOK, gin.H{"shop": shop, "reverted_to_pending": reverted})
}

func DeleteShop(c *gin.Context) {
	shop, ok := loadShop(c)
	if !ok {
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	if userID != shop.OwnerID.String() && role != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop"})
		return
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	// Deleting a shop cascades to its products.
	iter := session.Query(`SELECT product_id, image_url FROM products_by_shop WHERE shop_id = ?`, shop.ID).Iter()
	var productID gocql.UUID
	var imageURL string
	for iter.Scan(&productID, &imageURL) {
		if err := session.Query(`DELETE FROM products WHERE product_id = ?`, productID).Exec(); err != nil {
			iter.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product cascade failed"})
			return
		}
		if imageURL != "" {
			_ = services.DeleteObject(c.Request.Context(), imageURL)
		}
		services.RemoveFromIndex("products", productID.String())
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product cascade failed"})
		return
	}
	if err := session.Query(`DELETE FROM products_by_shop WHERE shop_id = ?`, shop.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product cascade failed"})
		return
	}

	if shop.BannerURL != "" {
		_ = services.DeleteObject(c.Request.Context(), shop.BannerURL)
	}

	if err := session.Query(`DELETE FROM shops WHERE shop_id = ?`, shop.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop deletion failed"})
		return
	}
	_ = session.Query(`DELETE FROM shops_by_status WHERE status = ? AND shop_id = ?`, string(shop.Status), shop.ID).Exec()
	_ = session.Query(`DELETE FROM shops_by_owner WHERE owner_id = ?`, shop.OwnerID).Exec()

	cache.InvalidateShopCache(shop.ID.String())
	services.RemoveFromIndex("shops", shop.ID.String())
	go services.PublishShopEvent(services.ShopDeleted, shop)

	c.JSON(http.StatusOK, gin.H{"message": "shop deleted"})
}

// ================== SHARED HELPERS ==================

// loadShop resolves the :id param, answering 400/404 itself. The boolean is
// false when a response was already written.
func loadShop(c *gin.Context) (models.Shop, bool) {
	shopID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop id"})
		return models.Shop{}, false
	}

	if cached, ok := cache.GetShopFromCache(shopID.String()); ok {
		return *cached, true
	}

	session, err := database.GetMarketSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return models.Shop{}, false
	}

	shop, err := loadShopByID(session, shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return models.Shop{}, false
	}

	cache.SetShopInCache(shop)
	return shop, true
}

func loadShopByID(session *gocql.Session, shopID gocql.UUID) (models.Shop, error) {
	shop := models.Shop{ID: shopID}
	var status string
	err := session.Query(`SELECT owner_id, name, address, category, phone, whatsapp, latitude, longitude, status, rejection_reason, banner_url, created_at, updated_at
		FROM shops WHERE shop_id = ?`, shopID).Scan(
		&shop.OwnerID, &shop.Name, &shop.Address, &shop.Category, &shop.Phone, &shop.WhatsApp,
		&shop.Latitude, &shop.Longitude, &status, &shop.RejectionReason, &shop.BannerURL,
		&shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return models.Shop{}, err
	}
	shop.Status = models.ApprovalStatus(status)
	return shop, nil
}

func canSeeUnapproved(c *gin.Context, shop models.Shop) bool {
	userID := c.GetString("user_id")
	if userID == "" {
		return false
	}
	if c.GetString("role") == string(models.RoleAdmin) {
		return true
	}
	return userID == shop.OwnerID.String()
}

// insertShopRows writes the shop into the main table and both lookup tables.
func insertShopRows(session *gocql.Session, shop models.Shop) error {
	if err := session.Query(`INSERT INTO shops (shop_id, owner_id, name, address, category, phone, whatsapp, latitude, longitude, status, rejection_reason, banner_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shop.ID, shop.OwnerID, shop.Name, shop.Address, shop.Category, shop.Phone, shop.WhatsApp,
		shop.Latitude, shop.Longitude, string(shop.Status), shop.RejectionReason, shop.BannerURL,
		shop.CreatedAt, shop.UpdatedAt).Exec(); err != nil {
		return err
	}
	if err := insertStatusRow(session, shop); err != nil {
		return err
	}
	return session.Query(`INSERT INTO shops_by_owner (owner_id, shop_id) VALUES (?, ?)`, shop.OwnerID, shop.ID).Exec()
}

func insertStatusRow(session *gocql.Session, shop models.Shop) error {
	return session.Query(`INSERT INTO shops_by_status (status, shop_id, owner_id, name, address, category, phone, whatsapp, latitude, longitude, banner_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(shop.Status), shop.ID, shop.OwnerID, shop.Name, shop.Address, shop.Category,
		shop.Phone, shop.WhatsApp, shop.Latitude, shop.Longitude, shop.BannerURL,
		shop.CreatedAt, shop.UpdatedAt).Exec()
}

// persistShopUpdate rewrites the main row and keeps shops_by_status in sync,
// moving the row between partitions when the status changed.
func persistShopUpdate(session *gocql.Session, shop models.Shop, oldStatus models.ApprovalStatus) error {
	if err := session.Query(`UPDATE shops SET name = ?, address = ?, category = ?, phone = ?, whatsapp = ?, status = ?, rejection_reason = ?, banner_url = ?, updated_at = ? WHERE shop_id = ?`,
		shop.Name, shop.Address, shop.Category, shop.Phone, shop.WhatsApp,
		string(shop.Status), shop.RejectionReason, shop.BannerURL, shop.UpdatedAt, shop.ID).Exec(); err != nil {
		return err
	}

	if oldStatus != shop.Status {
		if err := session.Query(`DELETE FROM shops_by_status WHERE status = ? AND shop_id = ?`,
			string(oldStatus), shop.ID).Exec(); err != nil {
			return err
		}
	}
	return insertStatusRow(session, shop)
}

// LoadApprovedShops scans the approved partition. The admin handlers use
// PersistStatusChange below; both live here so every status write shares one
// code path.
func LoadApprovedShops() ([]models.Shop, error) {
	return LoadShopsByStatus(models.StatusApproved)
}

func LoadShopsByStatus(status models.ApprovalStatus) ([]models.Shop, error) {
	session, err := database.GetMarketSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT shop_id, owner_id, name, address, category, phone, whatsapp, latitude, longitude, banner_url, created_at, updated_at
		FROM shops_by_status WHERE status = ?`, string(status)).Iter()

	var shops []models.Shop
	var s models.Shop
	for iter.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Category, &s.Phone, &s.WhatsApp,
		&s.Latitude, &s.Longitude, &s.BannerURL, &s.CreatedAt, &s.UpdatedAt) {
		s.Status = status
		shops = append(shops, s)
		s = models.Shop{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return shops, nil
}

// LoadShop fetches a shop by ID straight from the store, bypassing the cache.
func LoadShop(shopID gocql.UUID) (models.Shop, error) {
	session, err := database.GetMarketSession()
	if err != nil {
		return models.Shop{}, err
	}
	return loadShopByID(session, shopID)
}

// PersistStatusChange moves a shop to a new approval status, updating the
// main row and the status partitions.
func PersistStatusChange(shop models.Shop, oldStatus models.ApprovalStatus) error {
	session, err := database.GetMarketSession()
	if err != nil {
		return err
	}
	return persistShopUpdate(session, shop, oldStatus)
}
