package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
)

// AdminUserDTO is the transport shape that omits sensitive credentials.
type AdminUserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateAdminUserDTO holds the data required by the repo to persist a new admin.
type CreateAdminUserDTO struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     *bool
}

func FromModel(u *models.AdminUser) *AdminUserDTO {
	if u == nil {
		return nil
	}

	return &AdminUserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateAdminUserDTO) ToModel() *models.AdminUser {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = "admin"
	}

	return &models.AdminUser{
		Email:        c.Email,
		Name:         c.Name,
		PasswordHash: c.PasswordHash,
		Role:         role,
		IsActive:     isActive,
	}
}
