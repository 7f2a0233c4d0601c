package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseApprovalStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		status, err := ParseApprovalStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(status))
	}

	_, err := ParseApprovalStatus("deleted")
	assert.Error(t, err)
	_, err = ParseApprovalStatus("")
	assert.Error(t, err)
	_, err = ParseApprovalStatus("Approved")
	assert.Error(t, err)
}

func TestApprovalTransitions(t *testing.T) {
	assert.True(t, CanApprove(StatusPending))
	assert.True(t, CanReject(StatusPending))

	assert.False(t, CanApprove(StatusApproved))
	assert.False(t, CanReject(StatusApproved))
	assert.False(t, CanApprove(StatusRejected))
	assert.False(t, CanReject(StatusRejected))
}

func TestShopUpdateEmptyAndCritical(t *testing.T) {
	assert.True(t, ShopUpdate{}.Empty())
	assert.False(t, ShopUpdate{Phone: strPtr("123")}.Empty())

	assert.False(t, ShopUpdate{}.Critical())
	assert.False(t, ShopUpdate{Phone: strPtr("123"), BannerURL: strPtr("x")}.Critical())
	assert.True(t, ShopUpdate{Name: strPtr("n")}.Critical())
	assert.True(t, ShopUpdate{Address: strPtr("a")}.Critical())
	assert.True(t, ShopUpdate{Category: strPtr("c")}.Critical())
}

func TestOwnerCriticalEditRevertsApprovedShop(t *testing.T) {
	s := Shop{Name: "old", Status: StatusApproved}

	reverted := s.Apply(ShopUpdate{Name: strPtr("new")}, true)

	assert.True(t, reverted)
	assert.Equal(t, "new", s.Name)
	assert.Equal(t, StatusPending, s.Status)
}

func TestOwnerNonCriticalEditKeepsStatus(t *testing.T) {
	s := Shop{Status: StatusApproved}

	reverted := s.Apply(ShopUpdate{Phone: strPtr("123"), BannerURL: strPtr("http://img")}, true)

	assert.False(t, reverted)
	assert.Equal(t, StatusApproved, s.Status)
	assert.Equal(t, "123", s.Phone)
	assert.Equal(t, "http://img", s.BannerURL)
}

func TestOwnerCriticalEditResubmitsRejectedShop(t *testing.T) {
	s := Shop{Status: StatusRejected, RejectionReason: "blurry banner"}

	reverted := s.Apply(ShopUpdate{Address: strPtr("1 New St")}, true)

	assert.True(t, reverted)
	assert.Equal(t, StatusPending, s.Status)
	assert.Empty(t, s.RejectionReason, "resubmission clears the rejection reason")
}

func TestAdminEditNeverRevertsStatus(t *testing.T) {
	s := Shop{Status: StatusApproved}

	reverted := s.Apply(ShopUpdate{Name: strPtr("fixed typo")}, false)

	assert.False(t, reverted)
	assert.Equal(t, StatusApproved, s.Status)
	assert.Equal(t, "fixed typo", s.Name)
}

func TestPendingShopEditStaysPending(t *testing.T) {
	s := Shop{Status: StatusPending}

	reverted := s.Apply(ShopUpdate{Name: strPtr("n")}, true)

	assert.False(t, reverted)
	assert.Equal(t, StatusPending, s.Status)
}
