package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/config"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/utils"
)

// ================== FEDERATED AUTH (WEB) ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no provider specified"})
		return
	}

	redirectURL := c.Query("redirect_url")

	ctx := context.Background()
	state := generateRandomState()
	if redirectURL != "" {
		_ = database.Redis.Set(ctx, "oauth_redirect:"+state, redirectURL, 10*time.Minute).Err()
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	state := c.Query("state")

	var providerID, email, name string

	switch provider {
	case "google":
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OAuth parameters"})
			return
		}

		conf := config.GoogleOAuthConfig(baseURL() + "/api/auth/google/callback")
		tok, err := conf.Exchange(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "code exchange failed"})
			return
		}

		resp, err := conf.Client(c.Request.Context(), tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "google userinfo request failed"})
			return
		}
		defer resp.Body.Close()

		var gu struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		json.NewDecoder(resp.Body).Decode(&gu)
		providerID, email, name = gu.ID, gu.Email, gu.Name

	default:
		q := c.Request.URL.Query()
		q.Set("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
			return
		}
		providerID, email, name = gothUser.UserID, gothUser.Email, gothUser.Name
	}

	if providerID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "provider returned no identity"})
		return
	}

	user, err := findOrCreateOAuthUser(provider, providerID, email, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	redirectWithToken(c, state, token)
}

// ================== FEDERATED AUTH (MOBILE) ==================

// GoogleMobileLogin verifies a Google id_token issued to the mobile apps
// and exchanges it for an API token.
func GoogleMobileLogin(c *gin.Context) {
	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_token missing"})
		return
	}

	clientIDs := []string{
		os.Getenv("GOOGLE_WEB_CLIENT_ID"),
		os.Getenv("GOOGLE_IOS_CLIENT_ID"),
		os.Getenv("GOOGLE_ANDROID_CLIENT_ID"),
	}

	resp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(body.IDToken))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "google verification failed"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid google token"})
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Audience string `json:"aud"`
		Subject  string `json:"sub"`
	}
	json.NewDecoder(resp.Body).Decode(&payload)

	valid := false
	for _, id := range clientIDs {
		if payload.Audience == id && id != "" {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized client id"})
		return
	}

	user, err := findOrCreateOAuthUser("google", payload.Subject, payload.Email, payload.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// ================== HELPERS ==================

// findOrCreateOAuthUser resolves a federated identity to a local account:
// match on provider_id first, then email, otherwise create a customer.
func findOrCreateOAuthUser(provider, providerID, email, name string) (models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return models.User{}, err
	}

	var userID gocql.UUID
	if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).Scan(&userID); err == nil {
		user := models.User{ID: userID}
		var role string
		err = session.Query(`SELECT name, email, phone, password, role, provider, provider_id, is_active, is_verified, created_at, updated_at
			FROM users WHERE user_id = ?`, userID).Scan(
			&user.Name, &user.Email, &user.Phone, &user.Password, &role, &user.Provider, &user.ProviderID,
			&user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return models.User{}, err
		}
		user.Role = models.Role(role)

		if user.Provider != provider || user.ProviderID != providerID {
			// Existing account logging in through a provider for the
			// first time: attach the federated identity.
			_ = session.Query(`UPDATE users SET provider = ?, provider_id = ?, updated_at = ? WHERE user_id = ?`,
				provider, providerID, time.Now(), userID).Exec()
			user.Provider = provider
			user.ProviderID = providerID
			log.Printf("🔄 Linked existing account to provider %s: %s", provider, email)
		}
		return user, nil
	}

	now := time.Now()
	user := models.User{
		ID:         gocql.TimeUUID(),
		Name:       name,
		Email:      email,
		Role:       models.RoleCustomer,
		Provider:   provider,
		ProviderID: providerID,
		IsActive:   true,
		IsVerified: true, // the provider already verified the email
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := session.Query(`INSERT INTO users (user_id, name, email, phone, password, role, provider, provider_id, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Phone, user.Password, string(user.Role), user.Provider, user.ProviderID,
		user.IsActive, user.IsVerified, user.CreatedAt, user.UpdatedAt).Exec(); err != nil {
		return models.User{}, err
	}
	if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`, user.Email, user.ID).Exec(); err != nil {
		return models.User{}, err
	}

	log.Printf("🆕 OAuth user created (%s): %s", provider, email)
	return user, nil
}

func baseURL() string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}

func redirectWithToken(c *gin.Context, state, token string) {
	ctx := context.Background()
	redirectURI, _ := database.Redis.Get(ctx, "oauth_redirect:"+state).Result()
	_ = database.Redis.Del(ctx, "oauth_redirect:"+state).Err()

	if redirectURI == "" {
		redirectURI = os.Getenv("FRONTEND_URL")
		if redirectURI == "" {
			redirectURI = "http://localhost:5173"
		}
	}

	allowed := strings.Split(os.Getenv("ALLOWED_REDIRECT_ORIGINS"), ",")
	allowed = append(allowed, "http://localhost:5173", "http://localhost:3000")
	valid := false
	for _, o := range allowed {
		if o != "" && strings.HasPrefix(redirectURI, o) {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "redirect url not allowed"})
		return
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}
