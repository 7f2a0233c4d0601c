package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/cache"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/utils"
)

// ================== LOCAL AUTH ==================

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		UserType string `json:"user_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Email == "" && input.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a phone number or an email is required"})
		return
	}
	if len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	role := models.RoleCustomer
	if input.UserType != "" {
		parsed, err := models.ParseRole(input.UserType)
		if err != nil || parsed == models.RoleAdmin {
			// Admin accounts are provisioned out of band, never self-registered.
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_type must be customer or shopkeeper"})
			return
		}
		role = parsed
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if input.Email != "" {
		var existingID gocql.UUID
		if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, input.Email).Scan(&existingID); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
			return
		}
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	now := time.Now()
	user := models.User{
		ID:        gocql.TimeUUID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashedPassword),
		Role:      role,
		Provider:  "local",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`INSERT INTO users (user_id, name, email, phone, password, role, provider, provider_id, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Phone, user.Password, string(user.Role), user.Provider, user.ProviderID,
		user.IsActive, user.IsVerified, user.CreatedAt, user.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
		return
	}
	if user.Email != "" {
		if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`, user.Email, user.ID).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
			return
		}
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	var userID gocql.UUID
	if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	user := models.User{ID: userID}
	var role string
	err = session.Query(`SELECT name, email, phone, password, role, provider, provider_id, is_active, is_verified, created_at, updated_at
		FROM users WHERE user_id = ?`, userID).Scan(
		&user.Name, &user.Email, &user.Phone, &user.Password, &role, &user.Provider, &user.ProviderID,
		&user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}
	user.Role = models.Role(role)

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// ================== PROFILE ==================

func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func UpdateMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == nil && input.Phone == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if !user.HasContact() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a phone number or an email is required"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if err := session.Query(`UPDATE users SET name = ?, phone = ?, updated_at = ? WHERE user_id = ?`,
		user.Name, user.Phone, time.Now(), user.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, user)
}
