// internal/domain/product/category_service.go
package product

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
)

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryRequest represents category creation and update data
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

// CategoryPage represents one page of categories
type CategoryPage struct {
	Content       []CategoryDTO `json:"content"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	LastPage      bool          `json:"lastPage"`
}

// CreateCategory creates a new category. Names are unique.
func (s *CategoryService) CreateCategory(req *CategoryRequest) (*CategoryDTO, error) {
	var count int64
	if err := s.db.Model(&Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicate category: %w", err)
	}
	if count > 0 {
		return nil, errs.Domain("Category with the name %s already exists!", req.Name)
	}

	category := Category{Name: req.Name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CategoryDTO{ID: category.ID, Name: category.Name}, nil
}

// GetCategories retrieves a page of categories
func (s *CategoryService) GetCategories(page *PageRequest) (*CategoryPage, error) {
	if page.PageNumber < 0 {
		page.PageNumber = s.config.Pagination.PageNumber
	}
	if page.PageSize <= 0 {
		page.PageSize = s.config.Pagination.PageSize
	}

	var total int64
	if err := s.db.Model(&Category{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []Category
	err := s.db.
		Order("id asc").
		Offset(page.PageNumber * page.PageSize).
		Limit(page.PageSize).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	if len(categories) == 0 {
		return nil, errs.Domain("No category created till now.")
	}

	content := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		content[i] = CategoryDTO{ID: c.ID, Name: c.Name}
	}

	totalPages := int((total + int64(page.PageSize) - 1) / int64(page.PageSize))

	return &CategoryPage{
		Content:       content,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      page.PageNumber >= totalPages-1,
	}, nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(categoryID uint, req *CategoryRequest) (*CategoryDTO, error) {
	var category Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Category", "categoryId", categoryID)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if err := s.db.Model(&category).Update("name", req.Name).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &CategoryDTO{ID: category.ID, Name: req.Name}, nil
}

// DeleteCategory removes a category
func (s *CategoryService) DeleteCategory(categoryID uint) (string, error) {
	var category Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("Category", "categoryId", categoryID)
		}
		return "", fmt.Errorf("failed to load category: %w", err)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return "", fmt.Errorf("failed to delete category: %w", err)
	}

	return fmt.Sprintf("Category with categoryId: %d deleted successfully", categoryID), nil
}
