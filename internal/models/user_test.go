package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"customer", "shopkeeper", "admin"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(role))
	}

	// The set is closed: anything unknown fails instead of passing through.
	for _, s := range []string{"", "Customer", "root", "superadmin"} {
		_, err := ParseRole(s)
		assert.Error(t, err, "role %q should not parse", s)
	}
}

func TestHasContact(t *testing.T) {
	assert.False(t, User{}.HasContact())
	assert.True(t, User{Email: "a@b.c"}.HasContact())
	assert.True(t, User{Phone: "+3212345678"}.HasContact())
	assert.True(t, User{Email: "a@b.c", Phone: "+3212345678"}.HasContact())
}

func TestUserJSONHidesSecrets(t *testing.T) {
	u := User{
		Name:       "Alice",
		Email:      "alice@example.com",
		Password:   "$2a$10$hash",
		ProviderID: "google-sub-123",
		Role:       RoleCustomer,
	}

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "$2a$10$hash")
	assert.NotContains(t, string(data), "google-sub-123")
	assert.Contains(t, string(data), "alice@example.com")
}
