package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest request to register new user
type RegisterRequest struct {
	Username        string   `json:"username" binding:"required"`
	Email           string   `json:"email" binding:"required"`
	Password        string   `json:"password" binding:"required"`
	FullName        string   `json:"full_name"`
	Bio             string   `json:"bio"`
	PreferredGenres []string `json:"preferred_genres"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50).Error("username must be 3-50 characters"),
			validation.Match(usernameRegex).Error("username may only contain letters, numbers and underscore"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.FullName, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 1000)),
		validation.Field(&r.PreferredGenres,
			validation.Each(validation.Length(1, 100)),
		),
	)
}

// LoginRequest request to login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshTokenRequest request to refresh access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse JWT tokens with user info
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// ========================================
// USER DTOs
// ========================================

// UpdateUserRequest request to update profile (partial)
type UpdateUserRequest struct {
	Email           *string  `json:"email"`
	FullName        *string  `json:"full_name"`
	Bio             *string  `json:"bio"`
	PreferredGenres []string `json:"preferred_genres"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.When(r.Email != nil, is.Email.Error("invalid email format")),
		),
		validation.Field(&r.FullName,
			validation.When(r.FullName != nil, validation.Length(0, 100)),
		),
		validation.Field(&r.Bio,
			validation.When(r.Bio != nil, validation.Length(0, 1000)),
		),
		validation.Field(&r.PreferredGenres,
			validation.Each(validation.Length(1, 100)),
		),
	)
}

// ListUsersRequest request to list users
type ListUsersRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListUsersRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return nil
}

// UserResponse public user representation (no credentials)
type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Bio             string    `json:"bio"`
	PreferredGenres []string  `json:"preferred_genres"`
	IsActive        bool      `json:"is_active"`
	IsAdmin         bool      `json:"is_admin"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts entity to response DTO
func ToResponse(u *User) UserResponse {
	genres := u.PreferredGenres
	if genres == nil {
		genres = []string{}
	}
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FullName:        u.FullName,
		Bio:             u.Bio,
		PreferredGenres: genres,
		IsActive:        u.IsActive,
		IsAdmin:         u.IsAdmin,
		CreatedAt:       u.CreatedAt,
	}
}

// ListUsersResponse response for list users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
