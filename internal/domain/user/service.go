// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/auth"
	"github.com/your-org/storefront-api/internal/pkg/errs"
	"gorm.io/gorm"
)

// Service handles identity: registration, login and principal resolution.
// Handlers resolve the caller through this service and pass the user (or its
// id) explicitly into domain services; there is no ambient security context.
type Service struct {
	db        *gorm.DB
	config    *config.Config
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*UserDTO, error) {
	var count int64
	err := s.db.Model(&User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count > 0 {
		return nil, errs.Domain("User with the given username or email already exists")
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Domain("%s", err.Error())
	}

	newUser := User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dto := toUserDTO(&newUser)
	return &dto, nil
}

// Login verifies credentials and issues an access token
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var account User
	err := s.db.Where("username = ?", req.Username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Domain("Invalid username or password")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwords.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, errs.Domain("Invalid username or password")
	}

	token, err := s.jwt.GenerateAccessToken(account.ID, account.Username, account.Email, account.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  toUserDTO(&account),
	}, nil
}

// GetByID resolves a user id to its record
func (s *Service) GetByID(userID uint) (*User, error) {
	var account User
	err := s.db.First(&account, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User", "userId", userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &account, nil
}

func toUserDTO(u *User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
