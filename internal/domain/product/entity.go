// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255;index" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	Discount     float64        `gorm:"default:0" json:"discount"` // Percentage
	SpecialPrice float64        `json:"special_price"`
	Quantity     int            `gorm:"default:0" json:"quantity"`
	Image        string         `gorm:"size:255;default:'default.png'" json:"image"`
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	SellerID     uint           `gorm:"index" json:"seller_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// Category represents product categories
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:255" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// ComputeSpecialPrice returns the price after applying the stored discount percentage
func (p *Product) ComputeSpecialPrice() float64 {
	return p.Price - p.Price*p.Discount/100
}

// IsInStock reports whether any units are available for reservation
func (p *Product) IsInStock() bool {
	return p.Quantity > 0
}
