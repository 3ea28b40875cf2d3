// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
)

// CartSynchronizer keeps carts consistent when a product changes. Implemented
// by the cart service; declared here so the product package does not depend
// on the cart package.
type CartSynchronizer interface {
	CartIDsWithProduct(productID uint) ([]uint, error)
	UpdateProductInCarts(cartID, productID uint) error
	DeleteProductFromCart(cartID, productID uint) (string, error)
}

// ImageStore persists uploaded product images and returns the stored filename
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	carts  CartSynchronizer
	images ImageStore
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config, carts CartSynchronizer, images ImageStore) *Service {
	return &Service{
		db:     db,
		config: cfg,
		carts:  carts,
		images: images,
	}
}

// ProductDTO represents a product in API responses
type ProductDTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	SpecialPrice float64 `json:"special_price"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image"`
	CategoryID   uint    `json:"category_id"`
}

// ProductRequest represents product creation and update data
type ProductRequest struct {
	Name        string  `json:"name" binding:"required,min=3"`
	Description string  `json:"description" binding:"required,min=3"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Discount    float64 `json:"discount" binding:"gte=0,lte=100"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
}

// PageRequest represents pagination and sorting query parameters. PageNumber
// is zero-based.
type PageRequest struct {
	PageNumber int    `form:"pageNumber"`
	PageSize   int    `form:"pageSize"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
}

// ProductPage represents one page of products
type ProductPage struct {
	Content       []ProductDTO `json:"content"`
	PageNumber    int          `json:"pageNumber"`
	PageSize      int          `json:"pageSize"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	LastPage      bool         `json:"lastPage"`
}

// AddProduct creates a new product under a category. Product names must be
// unique within their category.
func (s *Service) AddProduct(categoryID, sellerID uint, req *ProductRequest) (*ProductDTO, error) {
	var category Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Category", "categoryId", categoryID)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	var count int64
	err := s.db.Model(&Product{}).
		Where("category_id = ? AND name = ?", categoryID, req.Name).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate product: %w", err)
	}
	if count > 0 {
		return nil, errs.Domain("Product already exists!")
	}

	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Quantity:    req.Quantity,
		Image:       "default.png",
		CategoryID:  categoryID,
		SellerID:    sellerID,
	}
	prod.SpecialPrice = prod.ComputeSpecialPrice()

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	dto := toProductDTO(&prod)
	return &dto, nil
}

// GetAllProducts retrieves a page of all products
func (s *Service) GetAllProducts(page *PageRequest) (*ProductPage, error) {
	result, err := s.queryPage(s.db.Model(&Product{}), page)
	if err != nil {
		return nil, err
	}
	if len(result.Content) == 0 {
		return nil, errs.Domain("No product created till now.")
	}
	return result, nil
}

// SearchByCategory retrieves a page of products belonging to a category
func (s *Service) SearchByCategory(categoryID uint, page *PageRequest) (*ProductPage, error) {
	var category Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Category", "categoryId", categoryID)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	query := s.db.Model(&Product{}).Where("category_id = ?", categoryID)
	result, err := s.queryPage(query, page)
	if err != nil {
		return nil, err
	}
	if len(result.Content) == 0 {
		return nil, errs.Domain("No products created yet for category: %s", category.Name)
	}
	return result, nil
}

// SearchByKeyword retrieves a page of products whose name contains the
// keyword, case-insensitively
func (s *Service) SearchByKeyword(keyword string, page *PageRequest) (*ProductPage, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	query := s.db.Model(&Product{}).Where("LOWER(name) LIKE ?", pattern)

	result, err := s.queryPage(query, page)
	if err != nil {
		return nil, err
	}
	if len(result.Content) == 0 {
		return nil, errs.Domain("No products with common keyword: %s", keyword)
	}
	return result, nil
}

// UpdateProduct overwrites a product's fields (except id, image and category),
// recomputes the special price, and cascades the new price into every cart
// currently holding the product. The cascade runs cart by cart and is not
// atomic across carts.
func (s *Service) UpdateProduct(productID uint, req *ProductRequest) (*ProductDTO, error) {
	var prod Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Product", "productId", productID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	prod.Name = req.Name
	prod.Description = req.Description
	prod.Price = req.Price
	prod.Discount = req.Discount
	prod.Quantity = req.Quantity
	prod.SpecialPrice = prod.ComputeSpecialPrice()

	if err := s.db.Save(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	cartIDs, err := s.carts.CartIDsWithProduct(productID)
	if err != nil {
		return nil, err
	}
	for _, cartID := range cartIDs {
		if err := s.carts.UpdateProductInCarts(cartID, productID); err != nil {
			return nil, err
		}
	}

	dto := toProductDTO(&prod)
	return &dto, nil
}

// DeleteProduct removes a product, first removing it from every cart that
// holds it so each cart's reserved quantity is refunded and its total adjusted
func (s *Service) DeleteProduct(productID uint) (string, error) {
	var prod Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("Product", "productId", productID)
		}
		return "", fmt.Errorf("failed to load product: %w", err)
	}

	cartIDs, err := s.carts.CartIDsWithProduct(productID)
	if err != nil {
		return "", err
	}
	for _, cartID := range cartIDs {
		if _, err := s.carts.DeleteProductFromCart(cartID, productID); err != nil {
			return "", err
		}
	}

	if err := s.db.Delete(&prod).Error; err != nil {
		return "", fmt.Errorf("failed to delete product: %w", err)
	}

	return "Product deleted successfully", nil
}

// UpdateProductImage stores a new image for the product and persists the
// resulting filename
func (s *Service) UpdateProductImage(productID uint, file *multipart.FileHeader) (*ProductDTO, error) {
	var prod Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Product", "productId", productID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	filename, err := s.images.Save(file)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&prod).Update("image", filename).Error; err != nil {
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}
	prod.Image = filename

	dto := toProductDTO(&prod)
	return &dto, nil
}

// queryPage applies sorting and pagination to a product query and builds the
// page envelope
func (s *Service) queryPage(query *gorm.DB, page *PageRequest) (*ProductPage, error) {
	s.applyDefaults(page)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := page.PageNumber * page.PageSize
	err := query.
		Order(s.buildOrderClause(page.SortBy, page.SortOrder)).
		Offset(offset).
		Limit(page.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	content := make([]ProductDTO, len(products))
	for i := range products {
		content[i] = toProductDTO(&products[i])
	}

	totalPages := int((total + int64(page.PageSize) - 1) / int64(page.PageSize))

	return &ProductPage{
		Content:       content,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      page.PageNumber >= totalPages-1,
	}, nil
}

func (s *Service) applyDefaults(page *PageRequest) {
	if page.PageNumber < 0 {
		page.PageNumber = s.config.Pagination.PageNumber
	}
	if page.PageSize <= 0 {
		page.PageSize = s.config.Pagination.PageSize
	}
	if page.SortBy == "" {
		page.SortBy = s.config.Pagination.SortBy
	}
	if page.SortOrder == "" {
		page.SortOrder = s.config.Pagination.SortOrder
	}
}

// buildOrderClause builds ORDER BY clause for sorting. Unknown sort fields
// fall back to the default rather than reaching the database.
func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"id":            true,
		"name":          true,
		"price":         true,
		"special_price": true,
		"quantity":      true,
		"discount":      true,
		"created_at":    true,
	}

	if !validSortFields[sortBy] {
		sortBy = s.config.Pagination.SortBy
	}

	sortOrder = strings.ToLower(sortOrder)
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = s.config.Pagination.SortOrder
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}

func toProductDTO(p *Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Discount:     p.Discount,
		SpecialPrice: p.SpecialPrice,
		Quantity:     p.Quantity,
		Image:        p.Image,
		CategoryID:   p.CategoryID,
	}
}
