// internal/domain/product/category_service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/pkg/errs"
)

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	created, err := svc.CreateCategory(&CategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, "Electronics", created.Name)

	_, err = svc.CreateCategory(&CategoryRequest{Name: "Electronics"})
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Contains(t, err.Error(), "Category with the name Electronics already exists!")
}

func TestGetCategories(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	_, err := svc.GetCategories(&PageRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
	assert.Equal(t, "No category created till now.", err.Error())

	for _, name := range []string{"Electronics", "Books", "Clothing"} {
		_, err := svc.CreateCategory(&CategoryRequest{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.GetCategories(&PageRequest{PageNumber: 0, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.LastPage)
}

func TestUpdateCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	created, err := svc.CreateCategory(&CategoryRequest{Name: "Electronics"})
	require.NoError(t, err)

	updated, err := svc.UpdateCategory(created.ID, &CategoryRequest{Name: "Gadgets"})
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", updated.Name)

	_, err = svc.UpdateCategory(99, &CategoryRequest{Name: "Nothing"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	created, err := svc.CreateCategory(&CategoryRequest{Name: "Electronics"})
	require.NoError(t, err)

	msg, err := svc.DeleteCategory(created.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "deleted successfully")

	_, err = svc.DeleteCategory(created.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
