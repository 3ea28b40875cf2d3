// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubCarts records cascade calls without touching any real cart
type stubCarts struct {
	ids     []uint
	updated []uint
	deleted []uint
}

func (s *stubCarts) CartIDsWithProduct(productID uint) ([]uint, error) {
	return s.ids, nil
}

func (s *stubCarts) UpdateProductInCarts(cartID, productID uint) error {
	s.updated = append(s.updated, cartID)
	return nil
}

func (s *stubCarts) DeleteProductFromCart(cartID, productID uint) (string, error) {
	s.deleted = append(s.deleted, cartID)
	return "", nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Category{}, &Product{}))

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

func newTestService(t *testing.T) (*Service, *stubCarts, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	carts := &stubCarts{}
	return NewService(db, testConfig(), carts, nil), carts, db
}

func createCategory(t *testing.T, db *gorm.DB, name string) *Category {
	t.Helper()
	category := Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func productRequest(name string) *ProductRequest {
	return &ProductRequest{
		Name:        name,
		Description: "Description of " + name,
		Price:       100,
		Discount:    10,
		Quantity:    5,
	}
}

func TestAddProduct(t *testing.T) {
	t.Run("computes special price and defaults the image", func(t *testing.T) {
		svc, _, db := newTestService(t)
		category := createCategory(t, db, "Electronics")

		dto, err := svc.AddProduct(category.ID, 7, productRequest("Laptop"))
		require.NoError(t, err)

		assert.Equal(t, 90.0, dto.SpecialPrice)
		assert.Equal(t, "default.png", dto.Image)
		assert.Equal(t, category.ID, dto.CategoryID)
	})

	t.Run("rejects a duplicate name within the category", func(t *testing.T) {
		svc, _, db := newTestService(t)
		category := createCategory(t, db, "Electronics")

		_, err := svc.AddProduct(category.ID, 7, productRequest("Laptop"))
		require.NoError(t, err)

		_, err = svc.AddProduct(category.ID, 7, productRequest("Laptop"))
		require.Error(t, err)
		assert.True(t, errs.IsDomain(err))
		assert.Equal(t, "Product already exists!", err.Error())
	})

	t.Run("same name is fine in another category", func(t *testing.T) {
		svc, _, db := newTestService(t)
		first := createCategory(t, db, "Electronics")
		second := createCategory(t, db, "Refurbished")

		_, err := svc.AddProduct(first.ID, 7, productRequest("Laptop"))
		require.NoError(t, err)

		_, err = svc.AddProduct(second.ID, 7, productRequest("Laptop"))
		require.NoError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.AddProduct(99, 7, productRequest("Laptop"))
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestGetAllProducts(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetAllProducts(&PageRequest{})
		require.Error(t, err)
		assert.True(t, errs.IsDomain(err))
		assert.Equal(t, "No product created till now.", err.Error())
	})

	t.Run("pagination envelope", func(t *testing.T) {
		svc, _, db := newTestService(t)
		category := createCategory(t, db, "Electronics")

		names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf"}
		for _, name := range names {
			_, err := svc.AddProduct(category.ID, 1, productRequest(name))
			require.NoError(t, err)
		}

		page, err := svc.GetAllProducts(&PageRequest{PageNumber: 0, PageSize: 3})
		require.NoError(t, err)
		assert.Len(t, page.Content, 3)
		assert.Equal(t, 0, page.PageNumber)
		assert.Equal(t, 3, page.PageSize)
		assert.Equal(t, int64(7), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.False(t, page.LastPage)

		last, err := svc.GetAllProducts(&PageRequest{PageNumber: 2, PageSize: 3})
		require.NoError(t, err)
		assert.Len(t, last.Content, 1)
		assert.True(t, last.LastPage)
	})

	t.Run("sorts by a whitelisted field", func(t *testing.T) {
		svc, _, db := newTestService(t)
		category := createCategory(t, db, "Electronics")

		for _, name := range []string{"Bravo", "Alpha", "Charlie"} {
			_, err := svc.AddProduct(category.ID, 1, productRequest(name))
			require.NoError(t, err)
		}

		page, err := svc.GetAllProducts(&PageRequest{SortBy: "name", SortOrder: "desc"})
		require.NoError(t, err)
		assert.Equal(t, "Charlie", page.Content[0].Name)
		assert.Equal(t, "Alpha", page.Content[2].Name)
	})
}

func TestSearchByCategory(t *testing.T) {
	svc, _, db := newTestService(t)
	filled := createCategory(t, db, "Electronics")
	empty := createCategory(t, db, "Books")

	_, err := svc.AddProduct(filled.ID, 1, productRequest("Laptop"))
	require.NoError(t, err)

	page, err := svc.SearchByCategory(filled.ID, &PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)

	_, err = svc.SearchByCategory(empty.ID, &PageRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Contains(t, err.Error(), "No products created yet for category: Books")

	_, err = svc.SearchByCategory(99, &PageRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestSearchByKeyword(t *testing.T) {
	svc, _, db := newTestService(t)
	category := createCategory(t, db, "Electronics")

	for _, name := range []string{"Gaming Laptop", "Office Laptop", "Wireless Mouse"} {
		_, err := svc.AddProduct(category.ID, 1, productRequest(name))
		require.NoError(t, err)
	}

	page, err := svc.SearchByKeyword("LAPTOP", &PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)

	_, err = svc.SearchByKeyword("tablet", &PageRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Contains(t, err.Error(), "No products with common keyword: tablet")
}

func TestUpdateProduct(t *testing.T) {
	t.Run("recomputes the special price and cascades", func(t *testing.T) {
		svc, carts, db := newTestService(t)
		category := createCategory(t, db, "Electronics")

		created, err := svc.AddProduct(category.ID, 1, productRequest("Laptop"))
		require.NoError(t, err)

		carts.ids = []uint{3, 8}

		updated, err := svc.UpdateProduct(created.ID, &ProductRequest{
			Name:        "Laptop Pro",
			Description: "Refreshed model",
			Price:       200,
			Discount:    25,
			Quantity:    9,
		})
		require.NoError(t, err)

		assert.Equal(t, "Laptop Pro", updated.Name)
		assert.Equal(t, 150.0, updated.SpecialPrice)
		assert.Equal(t, 9, updated.Quantity)
		assert.Equal(t, []uint{3, 8}, carts.updated)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.UpdateProduct(99, productRequest("Laptop"))
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestDeleteProduct(t *testing.T) {
	svc, carts, db := newTestService(t)
	category := createCategory(t, db, "Electronics")

	created, err := svc.AddProduct(category.ID, 1, productRequest("Laptop"))
	require.NoError(t, err)

	carts.ids = []uint{4, 6}

	msg, err := svc.DeleteProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product deleted successfully", msg)
	assert.Equal(t, []uint{4, 6}, carts.deleted)

	var count int64
	require.NoError(t, db.Model(&Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBuildOrderClause(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"valid field and order", "price", "desc", "price desc"},
		{"unknown field falls back", "password", "asc", "id asc"},
		{"unknown order falls back", "name", "sideways", "name asc"},
		{"order is case-insensitive", "name", "DESC", "name desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.buildOrderClause(tt.sortBy, tt.sortOrder))
		})
	}
}
