package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a back-office account. Passwords are argon2id hashes.
type AdminUser struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Name         string     `gorm:"column:name;type:text;not null"`
	PasswordHash string     `gorm:"column:password_hash;type:text;not null"`
	Role         string     `gorm:"column:role;type:text;not null;default:'admin'"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
