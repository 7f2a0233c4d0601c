package models

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

// ApprovalStatus is the moderation state of a shop. Only approved shops are
// visible to public listing and proximity search.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch ApprovalStatus(s) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown approval status %q", s)
	}
}

// CanApprove / CanReject gate the admin transitions. Both are only legal
// from pending; approving a rejected shop requires the owner to resubmit first.
func CanApprove(from ApprovalStatus) bool { return from == StatusPending }
func CanReject(from ApprovalStatus) bool  { return from == StatusPending }

type Shop struct {
	ID              gocql.UUID     `json:"id" db:"shop_id"`
	OwnerID         gocql.UUID     `json:"owner_id" db:"owner_id"`
	Name            string         `json:"name" db:"name"`
	Address         string         `json:"address" db:"address"`
	Category        string         `json:"category" db:"category"`
	Phone           string         `json:"phone" db:"phone"`
	WhatsApp        string         `json:"whatsapp,omitempty" db:"whatsapp"`
	Latitude        float64        `json:"latitude" db:"latitude"`
	Longitude       float64        `json:"longitude" db:"longitude"`
	Status          ApprovalStatus `json:"status" db:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty" db:"rejection_reason"`
	BannerURL       string         `json:"banner_url,omitempty" db:"banner_url"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// ShopUpdate is a typed partial update: only non-nil fields are applied.
type ShopUpdate struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Category  *string `json:"category"`
	Phone     *string `json:"phone"`
	WhatsApp  *string `json:"whatsapp"`
	BannerURL *string `json:"banner_url"`
}

func (u ShopUpdate) Empty() bool {
	return u.Name == nil && u.Address == nil && u.Category == nil &&
		u.Phone == nil && u.WhatsApp == nil && u.BannerURL == nil
}

// Critical reports whether the update touches a field that requires
// re-review: name, address or category.
func (u ShopUpdate) Critical() bool {
	return u.Name != nil || u.Address != nil || u.Category != nil
}

// Apply mutates the shop with the fields present in the update. When the
// owner edits a critical field of an approved shop the status reverts to
// pending for re-review; the same edit on a rejected shop re-enters pending
// (resubmission, same entity) and clears the rejection reason. Admin edits
// never change status. Returns true when the status reverted.
func (s *Shop) Apply(u ShopUpdate, byOwner bool) bool {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Address != nil {
		s.Address = *u.Address
	}
	if u.Category != nil {
		s.Category = *u.Category
	}
	if u.Phone != nil {
		s.Phone = *u.Phone
	}
	if u.WhatsApp != nil {
		s.WhatsApp = *u.WhatsApp
	}
	if u.BannerURL != nil {
		s.BannerURL = *u.BannerURL
	}

	if byOwner && u.Critical() && s.Status != StatusPending {
		s.Status = StatusPending
		s.RejectionReason = ""
		return true
	}
	return false
}
