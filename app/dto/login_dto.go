package dto

import "github.com/google/uuid"

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"manager@example.com"`
	Password string `json:"password" validate:"required,max=100" example:"Str0ng!pass"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ChangePasswordRequest represents the request to change the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" example:"Str0ng!pass"`
	NewPassword     string `json:"newPassword" example:"N3w!Passw0rd"`
}

// AuthUser is the public view of a user returned by auth endpoints
type AuthUser struct {
	ID    uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name  string    `json:"name" example:"Ada Lovelace"`
	Email string    `json:"email" example:"ada@example.com"`
	Role  string    `json:"role" example:"marketing_manager"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token        string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string   `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User         AuthUser `json:"user"`
}

// TokenPairResponse is returned by refresh
type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
