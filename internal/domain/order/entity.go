// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a placed order. Only the persistence gateway exists for
// orders; the checkout workflow lives outside this service.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;index" json:"email"`
	TotalAmount float64        `gorm:"not null" json:"total_amount"`
	OrderDate   time.Time      `json:"order_date"`
	OrderStatus string         `gorm:"size:50" json:"order_status"`
	AddressID   uint           `gorm:"index" json:"address_id"`
	PaymentID   *uint          `gorm:"index" json:"payment_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
	Payment *Payment    `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// OrderItem is one product line on an order, with the price it was sold at
type OrderItem struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	OrderID             uint    `gorm:"not null;index" json:"order_id"`
	ProductID           uint    `gorm:"not null;index" json:"product_id"`
	Quantity            int     `gorm:"not null" json:"quantity"`
	Discount            float64 `gorm:"default:0" json:"discount"`
	OrderedProductPrice float64 `gorm:"not null" json:"ordered_product_price"`
}

// Payment records how an order was paid
type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PaymentMethod     string    `gorm:"size:50;not null" json:"payment_method"`
	PgPaymentID       string    `gorm:"size:255" json:"pg_payment_id"`
	PgStatus          string    `gorm:"size:50" json:"pg_status"`
	PgResponseMessage string    `gorm:"size:500" json:"pg_response_message"`
	PgName            string    `gorm:"size:100" json:"pg_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
func (Payment) TableName() string   { return "payments" }
