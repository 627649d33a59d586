// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	Name           string      `json:"name" gorm:"size:255;not null"`
	Address        string      `json:"address" gorm:"type:text;not null"`
	Contact        string      `json:"contact" gorm:"size:50;not null"`
	Note           string      `json:"note" gorm:"type:text"`
	DeliveryCharge float64     `json:"deliveryCharge" gorm:"type:decimal(10,2);default:60"`
	DiscountNow    float64     `json:"discountNow" gorm:"type:decimal(10,2);default:0"`
	// Subtotal is the pre-delivery, pre-discount amount. TotalPrice is always
	// subtotal + deliveryCharge - discountNow; recalculations derive from
	// subtotal instead of subtracting prior adjustments back out.
	Subtotal      float64     `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TotalPrice    float64     `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	IsDeleted     bool        `json:"isDeleted" gorm:"default:false;index"`
	IsPdf         bool        `json:"isPdf" gorm:"default:false"`
	// StockAdjusted guards the one-shot inventory mutation on the transition
	// into CONFIFM/DELIVERY.
	StockAdjusted bool       `json:"-" gorm:"default:false"`
	UserID        *uuid.UUID `json:"userId" gorm:"type:uuid;index"`

	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	OrderItems []OrderItem `json:"orderItems,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Size      string    `json:"size" gorm:"size:50"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
