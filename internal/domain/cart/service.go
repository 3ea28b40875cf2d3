// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CartProduct is a product projection inside a cart response. Quantity here is
// the quantity reserved in this cart, not the product's available stock.
type CartProduct struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	SpecialPrice float64 `json:"special_price"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image"`
}

// CartDTO represents a cart with its product lines
type CartDTO struct {
	ID         uint          `json:"id"`
	TotalPrice float64       `json:"total_price"`
	Products   []CartProduct `json:"products"`
}

// AddProductToCart reserves quantity units of a product into the caller's
// cart, creating the cart on first use. The product's price and discount are
// snapshotted onto the new line and stock is decremented immediately.
func (s *Service) AddProductToCart(userID, productID uint, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, errs.Domain("quantity must be positive")
	}

	var cartID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		userCart, err := s.resolveOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = userCart.ID

		var prod product.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product", "productId", productID)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		var existing CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", userCart.ID, productID).First(&existing).Error
		if err == nil {
			return errs.Domain("Product %s already exists in the cart", prod.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up cart item: %w", err)
		}

		if prod.Quantity == 0 {
			return errs.Domain("Product %s is not available", prod.Name)
		}
		if prod.Quantity < quantity {
			return errs.Domain("Please, make an order of the %s less than or equal to the quantity %d", prod.Name, prod.Quantity)
		}

		item := CartItem{
			CartID:       userCart.ID,
			ProductID:    prod.ID,
			ProductPrice: prod.Price,
			Discount:     prod.Discount,
			Quantity:     quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create cart item: %w", err)
		}

		if err := tx.Model(&prod).Update("quantity", prod.Quantity-quantity).Error; err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}

		newTotal := userCart.TotalPrice + prod.Price*float64(quantity)
		if err := tx.Model(userCart).Update("total_price", newTotal).Error; err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadCartDTO(cartID)
}

// GetAllCarts retrieves every cart in the system
func (s *Service) GetAllCarts() ([]CartDTO, error) {
	var carts []Cart
	if err := s.db.Preload("Items.Product").Find(&carts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve carts: %w", err)
	}

	if len(carts) == 0 {
		return nil, errs.Domain("No cart found")
	}

	dtos := make([]CartDTO, len(carts))
	for i := range carts {
		dtos[i] = toCartDTO(&carts[i])
	}
	return dtos, nil
}

// GetUserCart retrieves the cart owned by the given user
func (s *Service) GetUserCart(userID uint) (*CartDTO, error) {
	var userCart Cart
	err := s.db.Preload("Items.Product").Where("user_id = ?", userID).First(&userCart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Cart", "userId", userID)
		}
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	dto := toCartDTO(&userCart)
	return &dto, nil
}

// UpdateProductQuantityInCart changes a cart line's quantity by delta (+1 or
// -1). Availability is checked against the product's absolute stock, and the
// line's price/discount are re-snapshotted from the product's current special
// price. A resulting quantity of zero removes the line. Stock is deliberately
// not refunded on decrement; only an explicit remove-from-cart returns units
// to inventory.
func (s *Service) UpdateProductQuantityInCart(userID, productID uint, delta int) (*CartDTO, error) {
	var cartID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var userCart Cart
		if err := tx.Where("user_id = ?", userID).First(&userCart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Cart", "userId", userID)
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}
		cartID = userCart.ID

		var prod product.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product", "productId", productID)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		if prod.Quantity == 0 {
			return errs.Domain("Product %s is not available", prod.Name)
		}
		if prod.Quantity < delta {
			return errs.Domain("Please, make an order of the %s less than or equal to the quantity %d", prod.Name, prod.Quantity)
		}

		var item CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", userCart.ID, productID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Domain("Product %s is not available in the cart!", prod.Name)
			}
			return fmt.Errorf("failed to look up cart item: %w", err)
		}

		newQuantity := item.Quantity + delta
		if newQuantity < 0 {
			return errs.Domain("The resulting quantity can not be negative")
		}

		if newQuantity == 0 {
			// Remove the line; the stock delta was already applied when the
			// unit was reserved, so inventory is not touched here.
			newTotal := userCart.TotalPrice - item.ProductPrice*float64(item.Quantity)
			if err := tx.Delete(&item).Error; err != nil {
				return fmt.Errorf("failed to remove cart item: %w", err)
			}
			if err := tx.Model(&userCart).Update("total_price", newTotal).Error; err != nil {
				return fmt.Errorf("failed to update cart total: %w", err)
			}
			return nil
		}

		item.ProductPrice = prod.ComputeSpecialPrice()
		item.Discount = prod.Discount
		item.Quantity = newQuantity
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}

		newTotal := userCart.TotalPrice + item.ProductPrice*float64(delta)
		if err := tx.Model(&userCart).Update("total_price", newTotal).Error; err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadCartDTO(cartID)
}

// DeleteProductFromCart removes a product line from a cart, refunding the
// reserved quantity back to the product's available stock
func (s *Service) DeleteProductFromCart(cartID, productID uint) (string, error) {
	var productName string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var userCart Cart
		if err := tx.First(&userCart, cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Cart", "cartId", cartID)
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}

		var item CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product", "productId", productID)
			}
			return fmt.Errorf("failed to look up cart item: %w", err)
		}

		var prod product.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product", "productId", productID)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}
		productName = prod.Name

		newTotal := userCart.TotalPrice - item.ProductPrice*float64(item.Quantity)
		if err := tx.Model(&userCart).Update("total_price", newTotal).Error; err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}

		if err := tx.Model(&prod).Update("quantity", prod.Quantity+item.Quantity).Error; err != nil {
			return fmt.Errorf("failed to refund stock: %w", err)
		}

		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Product %s has been removed from the cart.", productName), nil
}

// UpdateProductInCarts re-snapshots a cart line's price to the product's
// current special price and adjusts the cart total by the difference. Called
// when a product's price changes elsewhere.
func (s *Service) UpdateProductInCarts(cartID, productID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var userCart Cart
		if err := tx.First(&userCart, cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Cart", "cartId", cartID)
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}

		var prod product.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product", "productId", productID)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		var item CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Domain("Product %s is not available in the cart!", prod.Name)
			}
			return fmt.Errorf("failed to look up cart item: %w", err)
		}

		basePrice := userCart.TotalPrice - item.ProductPrice*float64(item.Quantity)

		item.ProductPrice = prod.SpecialPrice
		item.Discount = prod.Discount
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}

		newTotal := basePrice + item.ProductPrice*float64(item.Quantity)
		if err := tx.Model(&userCart).Update("total_price", newTotal).Error; err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}

		return nil
	})
}

// CartIDsWithProduct returns the ids of every cart holding the given product
func (s *Service) CartIDsWithProduct(productID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&CartItem{}).
		Where("product_id = ?", productID).
		Distinct().
		Pluck("cart_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find carts holding product: %w", err)
	}
	return ids, nil
}

// Private helper methods

func (s *Service) resolveOrCreateCart(tx *gorm.DB, userID uint) (*Cart, error) {
	var userCart Cart
	err := tx.Where("user_id = ?", userID).First(&userCart).Error
	if err == nil {
		return &userCart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	userCart = Cart{UserID: userID, TotalPrice: 0}
	if err := tx.Create(&userCart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &userCart, nil
}

func (s *Service) loadCartDTO(cartID uint) (*CartDTO, error) {
	var userCart Cart
	err := s.db.Preload("Items.Product").First(&userCart, cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Cart", "cartId", cartID)
		}
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	dto := toCartDTO(&userCart)
	return &dto, nil
}

func toCartDTO(c *Cart) CartDTO {
	products := make([]CartProduct, len(c.Items))
	for i, item := range c.Items {
		products[i] = CartProduct{
			ID:           item.Product.ID,
			Name:         item.Product.Name,
			Description:  item.Product.Description,
			Price:        item.Product.Price,
			Discount:     item.Product.Discount,
			SpecialPrice: item.Product.SpecialPrice,
			Quantity:     item.Quantity,
			Image:        item.Product.Image,
		}
	}
	return CartDTO{
		ID:         c.ID,
		TotalPrice: c.TotalPrice,
		Products:   products,
	}
}
