// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount     float64        `json:"discount" gorm:"type:decimal(5,2);default:0"`
	TotalProduct int            `json:"totalProduct" gorm:"default:0"`
	Sold         int            `json:"sold" gorm:"default:0"`
	Size         pq.StringArray `json:"size" gorm:"type:text[]"`
	Type         string         `json:"type" gorm:"size:100;index"`
	CategoryID   uuid.UUID      `json:"categoryId" gorm:"type:uuid;not null;index"`
	Rating       int            `json:"rating" gorm:"default:0"`
	Description  string         `json:"description" gorm:"type:text"`
	Discussion   string         `json:"discussion" gorm:"type:text"`
	Details      string         `json:"details" gorm:"type:text"`
	IsDelete     bool           `json:"isDelete" gorm:"default:false;index"`

	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Photos   []Photo  `json:"photo,omitempty" gorm:"foreignKey:ProductID"`
}

type Photo struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Img       string    `json:"img" gorm:"size:512;not null"`
}

type Category struct {
	BaseModel
	Name      string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	IsEnabled bool   `json:"is_enabled" gorm:"default:true"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}
