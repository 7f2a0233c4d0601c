package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/cache"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

func ListUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	iter := session.Query(`SELECT user_id, name, email, phone, role, provider, is_active, is_verified, created_at, updated_at FROM users`).Iter()

	var users []models.User
	var u models.User
	var role string
	for iter.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.Provider, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt) {
		u.Role = models.Role(role)
		users = append(users, u)
		u = models.User{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(users), "data": users})
}

// SetUserStatus activates or deactivates an account. Deactivated users keep
// their data but cannot authenticate.
func SetUserStatus(c *gin.Context) {
	userID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	if c.GetString("user_id") == userID.String() && !*input.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot deactivate your own account"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	var existing gocql.UUID
	if err := session.Query(`SELECT user_id FROM users WHERE user_id = ?`, userID).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := session.Query(`UPDATE users SET is_active = ?, updated_at = ? WHERE user_id = ?`,
		*input.IsActive, time.Now(), userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user update failed"})
		return
	}

	cache.InvalidateUserCache(userID.String())
	c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "is_active": *input.IsActive})
}
