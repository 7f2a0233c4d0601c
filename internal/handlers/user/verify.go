package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/cache"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/utils"
)

// RequestVerification generates a code, stores it in Redis with a TTL and
// emails it to the account's address.
func RequestVerification(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account already verified"})
		return
	}
	if user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no email on account"})
		return
	}

	code := cache.GenerateVerificationCode()
	if err := cache.StoreVerificationCode(c.Request.Context(), userID, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store verification code"})
		return
	}

	if err := utils.SendVerificationEmail(user.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

// ConfirmVerification checks the submitted code against the stored one and
// marks the account verified. Codes are single use and expire on their own.
func ConfirmVerification(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	ok, err := cache.CheckVerificationCode(c.Request.Context(), userID, input.Code)
	if err == redis.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code expired or never requested"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification check failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect code"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if err := session.Query(`UPDATE users SET is_verified = ?, updated_at = ? WHERE user_id = ?`,
		true, time.Now(), user.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification update failed"})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, gin.H{"message": "account verified"})
}
