package utils

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

func TestGenerateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	id, err := gocql.RandomUUID()
	require.NoError(t, err)
	user := models.User{ID: id, Email: "alice@example.com", Role: models.RoleShopkeeper}

	signed, err := GenerateJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, id.String(), claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "shopkeeper", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp.Time, time.Minute)
}

func TestGenerateJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	id, err := gocql.RandomUUID()
	require.NoError(t, err)
	signed, err := GenerateJWT(models.User{ID: id, Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
