package models

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

// Role is the closed set of account types. Role checks go through ParseRole
// so a typo'd string can never silently pass a gate.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleShopkeeper Role = "shopkeeper"
	RoleAdmin      Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleShopkeeper:
		return RoleShopkeeper, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID         gocql.UUID `json:"id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Email      string     `json:"email,omitempty" db:"email"`
	Phone      string     `json:"phone,omitempty" db:"phone"`
	Password   string     `json:"-" db:"password"`
	Role       Role       `json:"role" db:"role"`
	Provider   string     `json:"provider,omitempty" db:"provider"`
	ProviderID string     `json:"-" db:"provider_id"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	IsVerified bool       `json:"is_verified" db:"is_verified"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// HasContact reports whether at least one contact channel is set.
// An account is never valid without a phone or an email.
func (u User) HasContact() bool {
	return u.Email != "" || u.Phone != ""
}
