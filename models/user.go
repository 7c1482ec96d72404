package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultProfilePic is assigned to accounts that never uploaded a picture.
const DefaultProfilePic = "/placeholder.svg?height=80&width=80"

// User is an account stored in Postgres. Password holds the bcrypt hash and
// is never serialized in responses.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Role       string    `gorm:"type:varchar(50);not null;default:'user'" json:"role"`
	ProfilePic string    `gorm:"not null" json:"profile_pic"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Identity is the resolved view of the session user handed to handlers.
// It carries everything but the password hash.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	ProfilePic string    `json:"profile_pic"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Identity returns the public view of the user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		ProfilePic: u.ProfilePic,
	}
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for PUT /users/profile. Only supplied
// fields change.
type UpdateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=50"`
	Email      *string `json:"email" binding:"omitempty,email"`
	ProfilePic *string `json:"profile_pic"`
}

// ChangePasswordRequest is the payload for PUT /users/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Migrate runs auto migration for the Postgres-backed models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Order{})
}
