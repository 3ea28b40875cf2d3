// internal/domain/cart/cascade_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// These tests wire the real product service to the real cart service and
// exercise the cross-domain consistency paths: price updates and product
// deletions must propagate into every cart holding the product.

func TestProductUpdateCascadesIntoCarts(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cartSvc := NewService(db, cfg)
	productSvc := product.NewService(db, cfg, cartSvc, nil)

	prod := createProduct(t, db, "Laptop", 100, 0, 20)

	first, err := cartSvc.AddProductToCart(1, prod.ID, 2)
	require.NoError(t, err)
	second, err := cartSvc.AddProductToCart(2, prod.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 200.0, first.TotalPrice)
	assert.Equal(t, 300.0, second.TotalPrice)

	// Reprice to 80 with a 25% discount; every cart line re-snapshots to the
	// new special price of 60
	_, err = productSvc.UpdateProduct(prod.ID, &product.ProductRequest{
		Name:        "Laptop",
		Description: "Updated description",
		Price:       80,
		Discount:    25,
		Quantity:    20,
	})
	require.NoError(t, err)

	firstAfter, err := cartSvc.GetUserCart(1)
	require.NoError(t, err)
	secondAfter, err := cartSvc.GetUserCart(2)
	require.NoError(t, err)

	assert.Equal(t, 120.0, firstAfter.TotalPrice)
	assert.Equal(t, 180.0, secondAfter.TotalPrice)

	var items []CartItem
	require.NoError(t, db.Where("product_id = ?", prod.ID).Find(&items).Error)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 60.0, item.ProductPrice)
	}
}

func TestProductDeleteCascadesIntoCarts(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cartSvc := NewService(db, cfg)
	productSvc := product.NewService(db, cfg, cartSvc, nil)

	prod := createProduct(t, db, "Laptop", 100, 0, 10)
	keeper := createProduct(t, db, "Mouse", 50, 0, 10)

	_, err := cartSvc.AddProductToCart(1, prod.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddProductToCart(1, keeper.ID, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddProductToCart(2, prod.ID, 4)
	require.NoError(t, err)

	msg, err := productSvc.DeleteProduct(prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product deleted successfully", msg)

	// The deleted product is gone from both carts and only the other line's
	// value remains in the first cart
	firstAfter, err := cartSvc.GetUserCart(1)
	require.NoError(t, err)
	require.Len(t, firstAfter.Products, 1)
	assert.Equal(t, "Mouse", firstAfter.Products[0].Name)
	assert.Equal(t, 50.0, firstAfter.TotalPrice)

	secondAfter, err := cartSvc.GetUserCart(2)
	require.NoError(t, err)
	assert.Empty(t, secondAfter.Products)
	assert.Equal(t, 0.0, secondAfter.TotalPrice)

	var count int64
	require.NoError(t, db.Model(&CartItem{}).Where("product_id = ?", prod.ID).Count(&count).Error)
	assert.Zero(t, count)
}
