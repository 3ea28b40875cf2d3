// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&product.Category{},
		&product.Product{},
		&Cart{},
		&CartItem{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Pagination: config.PaginationConfig{
			PageNumber: 0,
			PageSize:   10,
			SortBy:     "id",
			SortOrder:  "asc",
		},
	}
}

func createProduct(t *testing.T, db *gorm.DB, name string, price, discount float64, quantity int) *product.Product {
	t.Helper()

	category := product.Category{Name: "Electronics-" + name}
	require.NoError(t, db.Create(&category).Error)

	prod := product.Product{
		Name:        name,
		Description: "Test description for " + name,
		Price:       price,
		Discount:    discount,
		Quantity:    quantity,
		Image:       "default.png",
		CategoryID:  category.ID,
	}
	prod.SpecialPrice = prod.ComputeSpecialPrice()
	require.NoError(t, db.Create(&prod).Error)

	return &prod
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *product.Product {
	t.Helper()
	var prod product.Product
	require.NoError(t, db.First(&prod, id).Error)
	return &prod
}

func TestAddProductToCart(t *testing.T) {
	t.Run("reserves stock and grows the total", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 10, 5)

		dto, err := svc.AddProductToCart(1, prod.ID, 3)
		require.NoError(t, err)

		assert.Equal(t, 3000.0, dto.TotalPrice)
		require.Len(t, dto.Products, 1)
		assert.Equal(t, 3, dto.Products[0].Quantity)

		assert.Equal(t, 2, reloadProduct(t, db, prod.ID).Quantity)
	})

	t.Run("rejects a second line for the same product", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 5)

		_, err := svc.AddProductToCart(1, prod.ID, 1)
		require.NoError(t, err)

		_, err = svc.AddProductToCart(1, prod.ID, 1)
		require.Error(t, err)
		assert.True(t, errs.IsDomain(err))
		assert.Contains(t, err.Error(), "already exists in the cart")
	})

	t.Run("rejects quantity above available stock", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Mouse", 50, 0, 2)

		_, err := svc.AddProductToCart(1, prod.ID, 3)
		require.Error(t, err)
		assert.True(t, errs.IsDomain(err))
		assert.Contains(t, err.Error(), "less than or equal to the quantity 2")
	})

	t.Run("rejects an out of stock product", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Keyboard", 80, 0, 0)

		_, err := svc.AddProductToCart(1, prod.ID, 1)
		require.Error(t, err)
		assert.True(t, errs.IsDomain(err))
		assert.Contains(t, err.Error(), "is not available")
	})

	t.Run("unknown product", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())

		_, err := svc.AddProductToCart(1, 999, 1)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("snapshots price, not special price", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Monitor", 200, 25, 10)

		dto, err := svc.AddProductToCart(1, prod.ID, 2)
		require.NoError(t, err)

		// The line is valued at the full price even though the product
		// carries a discount
		assert.Equal(t, 400.0, dto.TotalPrice)

		var item CartItem
		require.NoError(t, db.Where("product_id = ?", prod.ID).First(&item).Error)
		assert.Equal(t, 200.0, item.ProductPrice)
		assert.Equal(t, 25.0, item.Discount)
	})
}

func TestGetUserCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())

	_, err := svc.GetUserCart(42)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	prod := createProduct(t, db, "Laptop", 1000, 0, 5)
	_, err = svc.AddProductToCart(42, prod.ID, 2)
	require.NoError(t, err)

	dto, err := svc.GetUserCart(42)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, dto.TotalPrice)
	require.Len(t, dto.Products, 1)
	assert.Equal(t, "Laptop", dto.Products[0].Name)
}

func TestGetAllCarts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())

	_, err := svc.GetAllCarts()
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Contains(t, err.Error(), "No cart found")

	prod := createProduct(t, db, "Laptop", 1000, 0, 10)
	_, err = svc.AddProductToCart(1, prod.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddProductToCart(2, prod.ID, 1)
	require.NoError(t, err)

	carts, err := svc.GetAllCarts()
	require.NoError(t, err)
	assert.Len(t, carts, 2)
}

func TestUpdateProductQuantityInCart(t *testing.T) {
	t.Run("increment then decrement restores quantity and total", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 10)

		dto, err := svc.AddProductToCart(1, prod.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, dto.TotalPrice)

		dto, err = svc.UpdateProductQuantityInCart(1, prod.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 3000.0, dto.TotalPrice)
		assert.Equal(t, 3, dto.Products[0].Quantity)

		dto, err = svc.UpdateProductQuantityInCart(1, prod.ID, -1)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, dto.TotalPrice)
		assert.Equal(t, 2, dto.Products[0].Quantity)
	})

	t.Run("re-snapshots the special price on change", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Monitor", 200, 50, 10)

		_, err := svc.AddProductToCart(1, prod.ID, 1)
		require.NoError(t, err)

		_, err = svc.UpdateProductQuantityInCart(1, prod.ID, 1)
		require.NoError(t, err)

		var item CartItem
		require.NoError(t, db.Where("product_id = ?", prod.ID).First(&item).Error)
		assert.Equal(t, 100.0, item.ProductPrice)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("decrement to zero removes the line", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 10)

		_, err := svc.AddProductToCart(1, prod.ID, 1)
		require.NoError(t, err)

		dto, err := svc.UpdateProductQuantityInCart(1, prod.ID, -1)
		require.NoError(t, err)
		assert.Empty(t, dto.Products)
		assert.Equal(t, 0.0, dto.TotalPrice)

		var count int64
		require.NoError(t, db.Model(&CartItem{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("decrement does not refund stock", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 5)

		_, err := svc.AddProductToCart(1, prod.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, reloadProduct(t, db, prod.ID).Quantity)

		_, err = svc.UpdateProductQuantityInCart(1, prod.ID, -1)
		require.NoError(t, err)

		// Only an explicit remove-from-cart returns units to inventory
		assert.Equal(t, 2, reloadProduct(t, db, prod.ID).Quantity)
	})

	t.Run("product missing from the cart", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		inCart := createProduct(t, db, "Laptop", 1000, 0, 10)
		other := createProduct(t, db, "Mouse", 50, 0, 10)

		_, err := svc.AddProductToCart(1, inCart.ID, 1)
		require.NoError(t, err)

		_, err = svc.UpdateProductQuantityInCart(1, other.ID, 1)
		require.Error(t, err)
		assert.True(t, errs.IsDomain(err))
		assert.Contains(t, err.Error(), "is not available in the cart!")
	})

	t.Run("no cart for the user", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 10)

		_, err := svc.UpdateProductQuantityInCart(7, prod.ID, 1)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestDeleteProductFromCart(t *testing.T) {
	t.Run("refunds stock and shrinks the total", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 5)

		dto, err := svc.AddProductToCart(1, prod.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, reloadProduct(t, db, prod.ID).Quantity)

		msg, err := svc.DeleteProductFromCart(dto.ID, prod.ID)
		require.NoError(t, err)
		assert.Equal(t, "Product Laptop has been removed from the cart.", msg)

		assert.Equal(t, 5, reloadProduct(t, db, prod.ID).Quantity)

		updated, err := svc.GetUserCart(1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, updated.TotalPrice)
		assert.Empty(t, updated.Products)
	})

	t.Run("unknown cart", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())

		_, err := svc.DeleteProductFromCart(99, 1)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("product not in the cart", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(db, testConfig())
		prod := createProduct(t, db, "Laptop", 1000, 0, 5)

		dto, err := svc.AddProductToCart(1, prod.ID, 1)
		require.NoError(t, err)

		_, err = svc.DeleteProductFromCart(dto.ID, 999)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestUpdateProductInCarts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	prod := createProduct(t, db, "Laptop", 100, 0, 10)

	dto, err := svc.AddProductToCart(1, prod.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 200.0, dto.TotalPrice)

	// Drop the price to 80 with no discount
	require.NoError(t, db.Model(&product.Product{}).
		Where("id = ?", prod.ID).
		Updates(map[string]interface{}{"price": 80.0, "special_price": 80.0}).Error)

	require.NoError(t, svc.UpdateProductInCarts(dto.ID, prod.ID))

	updated, err := svc.GetUserCart(1)
	require.NoError(t, err)
	assert.Equal(t, 160.0, updated.TotalPrice)

	var item CartItem
	require.NoError(t, db.Where("product_id = ?", prod.ID).First(&item).Error)
	assert.Equal(t, 80.0, item.ProductPrice)
}

func TestCartIDsWithProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	prod := createProduct(t, db, "Laptop", 1000, 0, 10)
	other := createProduct(t, db, "Mouse", 50, 0, 10)

	_, err := svc.AddProductToCart(1, prod.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddProductToCart(2, prod.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddProductToCart(3, other.ID, 1)
	require.NoError(t, err)

	ids, err := svc.CartIDsWithProduct(prod.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

// Walks the full reservation lifecycle on a single product with five units of
// stock.
func TestReservationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	prod := createProduct(t, db, "Laptop", 1000, 0, 5)

	// Reserve three of five units
	dto, err := svc.AddProductToCart(1, prod.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, dto.TotalPrice)
	assert.Equal(t, 2, reloadProduct(t, db, prod.ID).Quantity)

	// A second add for the same product is rejected outright
	_, err = svc.AddProductToCart(1, prod.ID, 1)
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))

	// Decrementing trims the line but leaves inventory untouched
	dto, err = svc.UpdateProductQuantityInCart(1, prod.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, dto.Products[0].Quantity)
	assert.Equal(t, 2, reloadProduct(t, db, prod.ID).Quantity)

	// Removing the line refunds what is still reserved
	_, err = svc.DeleteProductFromCart(dto.ID, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloadProduct(t, db, prod.ID).Quantity)
}
