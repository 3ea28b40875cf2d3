// internal/domain/user/address_service.go
package user

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
)

// AddressService handles address book business logic
type AddressService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB, cfg *config.Config) *AddressService {
	return &AddressService{
		db:     db,
		config: cfg,
	}
}

// AddressRequest represents address creation and update data
type AddressRequest struct {
	BuildingName string `json:"building_name" binding:"required,min=5"`
	Street       string `json:"street" binding:"required,min=5"`
	City         string `json:"city" binding:"required,min=4"`
	State        string `json:"state" binding:"required,min=2"`
	Country      string `json:"country" binding:"required,min=2"`
	Pincode      string `json:"pincode" binding:"required,min=6"`
}

// AddressDTO represents an address in API responses
type AddressDTO struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	BuildingName string `json:"building_name"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
}

// CreateAddress adds a new address to the user's address book
func (s *AddressService) CreateAddress(userID uint, req *AddressRequest) (*AddressDTO, error) {
	var account User
	if err := s.db.First(&account, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User", "userId", userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	address := Address{
		UserID:       userID,
		BuildingName: req.BuildingName,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Pincode:      req.Pincode,
	}
	if err := s.db.Create(&address).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	dto := toAddressDTO(&address)
	return &dto, nil
}

// GetAllAddresses retrieves every stored address
func (s *AddressService) GetAllAddresses() ([]AddressDTO, error) {
	var addresses []Address
	if err := s.db.Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}

	result := make([]AddressDTO, len(addresses))
	for i := range addresses {
		result[i] = toAddressDTO(&addresses[i])
	}
	return result, nil
}

// GetAddressByID retrieves a single address
func (s *AddressService) GetAddressByID(addressID uint) (*AddressDTO, error) {
	var address Address
	if err := s.db.First(&address, addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Address", "addressId", addressID)
		}
		return nil, fmt.Errorf("failed to load address: %w", err)
	}

	dto := toAddressDTO(&address)
	return &dto, nil
}

// GetUserAddresses retrieves the addresses belonging to a user
func (s *AddressService) GetUserAddresses(userID uint) ([]AddressDTO, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}

	result := make([]AddressDTO, len(addresses))
	for i := range addresses {
		result[i] = toAddressDTO(&addresses[i])
	}
	return result, nil
}

// UpdateAddress overwrites every field of an address
func (s *AddressService) UpdateAddress(addressID uint, req *AddressRequest) (*AddressDTO, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var address Address
	if err := tx.First(&address, addressID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Address", "addressId", addressID)
		}
		return nil, fmt.Errorf("failed to load address: %w", err)
	}

	address.BuildingName = req.BuildingName
	address.Street = req.Street
	address.City = req.City
	address.State = req.State
	address.Country = req.Country
	address.Pincode = req.Pincode

	if err := tx.Save(&address).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	dto := toAddressDTO(&address)
	return &dto, nil
}

// DeleteAddress removes an address from the user's address book
func (s *AddressService) DeleteAddress(addressID uint) (string, error) {
	var address Address
	if err := s.db.First(&address, addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NotFound("Address", "addressId", addressID)
		}
		return "", fmt.Errorf("failed to load address: %w", err)
	}

	if err := s.db.Delete(&address).Error; err != nil {
		return "", fmt.Errorf("failed to delete address: %w", err)
	}

	return fmt.Sprintf("Address deleted successfully with addressId: %d", addressID), nil
}

func toAddressDTO(a *Address) AddressDTO {
	return AddressDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		BuildingName: a.BuildingName,
		Street:       a.Street,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		Pincode:      a.Pincode,
	}
}
