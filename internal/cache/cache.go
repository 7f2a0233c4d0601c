package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

const (
	UserCacheTTL = 5 * time.Minute
	ShopCacheTTL = 10 * time.Minute
)

// GetUserFromCache reads a user from Redis, falling back to ScyllaDB and
// repopulating the cache on a miss. The auth middleware calls this on every
// authenticated request, so the Scylla hit is rare.
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	user := models.User{ID: gocql.UUID(uid)}
	var role string
	err = session.Query(`SELECT name, email, phone, role, provider, provider_id, is_active, is_verified, created_at, updated_at
		FROM users WHERE user_id = ?`, user.ID).Scan(
		&user.Name, &user.Email, &user.Phone, &role, &user.Provider, &user.ProviderID,
		&user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)

	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return &user, nil
}

func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}

// GetShopFromCache reads a shop from Redis. It does not fall through to
// Scylla; callers that miss load the row themselves and call SetShopInCache,
// so the read path and the store query stay in one place.
func GetShopFromCache(shopID string) (*models.Shop, bool) {
	ctx := context.Background()
	data, err := database.Redis.Get(ctx, "shop:"+shopID).Result()
	if err != nil {
		return nil, false
	}
	var shop models.Shop
	if json.Unmarshal([]byte(data), &shop) != nil {
		return nil, false
	}
	return &shop, true
}

func SetShopInCache(shop models.Shop) {
	ctx := context.Background()
	if data, err := json.Marshal(shop); err == nil {
		database.Redis.Set(ctx, "shop:"+shop.ID.String(), data, ShopCacheTTL)
	}
}

func InvalidateShopCache(shopID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "shop:"+shopID)
}
