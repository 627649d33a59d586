// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

type OrderStatus string

// "CONFIFM" is the literal every persisted order row and the storefront client
// already depend on; changing the spelling requires a data migration first.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirm   OrderStatus = "CONFIFM"
	OrderStatusDelivery  OrderStatus = "DELIVERY"
	OrderStatusReturn    OrderStatus = "RETURN"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirm, OrderStatusDelivery,
		OrderStatusReturn, OrderStatusCancelled:
		return true
	}
	return false
}

// AdjustsStock reports whether transitioning into this status consumes
// inventory (sold up, totalProduct down).
func (s OrderStatus) AdjustsStock() bool {
	return s == OrderStatusConfirm || s == OrderStatusDelivery
}
