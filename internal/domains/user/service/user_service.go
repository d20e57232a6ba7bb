package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/pkg/jwt"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const bcryptCost = 12

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

func NewUserService(
	userRepo repository.UserRepository,
	jwtManager *jwt.Manager,
) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// REGISTER
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 3: Create user entity
	now := time.Now()
	user := &model.User{
		ID:              uuid.New(),
		Username:        req.Username,
		Email:           req.Email,
		PasswordHash:    string(hash),
		FullName:        req.FullName,
		Bio:             req.Bio,
		PreferredGenres: req.PreferredGenres,
		IsActive:        true,
		IsAdmin:         false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Step 4: Save to database (unique constraints catch duplicates)
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch err {
		case model.ErrDuplicateUsername:
			return nil, model.NewDuplicateUsernameError()
		case model.ErrDuplicateEmail:
			return nil, model.NewDuplicateEmailError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	response := model.ToResponse(user)
	return &response, nil
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Look up user
	// Not-found và wrong-password trả cùng một error, không leak tồn tại
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 3: Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if !user.IsActive {
		return nil, model.NewInactiveUserError()
	}

	// Step 4: Issue tokens
	return s.issueTokens(user)
}

// =====================================================
// REFRESH
// =====================================================

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error) {
	// Step 1: Validate refresh token
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.NewInvalidTokenError()
	}

	// Step 2: Re-check user state (deactivated users không refresh được)
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewInvalidTokenError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, model.NewInactiveUserError()
	}

	// Step 3: Issue fresh token pair
	return s.issueTokens(user)
}

func (s *userService) issueTokens(user *model.User) (*model.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessExpiry()),
		User:         model.ToResponse(user),
	}, nil
}

// =====================================================
// USER CRUD
// =====================================================

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	response := model.ToResponse(user)
	return &response, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.UserResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Load current state
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 3: Apply partial update
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.PreferredGenres != nil {
		user.PreferredGenres = req.PreferredGenres
	}

	// Step 4: Persist
	if err := s.userRepo.Update(ctx, user); err != nil {
		switch err {
		case model.ErrUserNotFound:
			return nil, model.NewUserNotFoundError()
		case model.ErrDuplicateEmail:
			return nil, model.NewDuplicateEmailError()
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	response := model.ToResponse(user)
	return &response, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if err == model.ErrUserNotFound {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, req model.ListUsersRequest) (*model.ListUsersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	users, total, err := s.userRepo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, model.ToResponse(&users[i]))
	}

	return &model.ListUsersResponse{
		Users: responses,
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}, nil
}
