package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a profile row in PostgreSQL. ID is the identity provider's subject.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:128"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile is the display snapshot copied into engagement records.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, ImageURL: u.ImageURL}
}

type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
