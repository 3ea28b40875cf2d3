// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-api/internal/domain/product"
)

// Cart represents a user's shopping cart. One cart per user, created lazily
// on the first add-to-cart and never deleted.
type Cart struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalPrice float64   `gorm:"default:0" json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// CartItem is one product's reserved quantity within a cart. ProductPrice and
// Discount snapshot the product at add/update time.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	ProductPrice float64   `gorm:"not null" json:"product_price"`
	Discount     float64   `gorm:"default:0" json:"discount"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides
func (Cart) TableName() string     { return "carts" }
func (CartItem) TableName() string { return "cart_items" }
