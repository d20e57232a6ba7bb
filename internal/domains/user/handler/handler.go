package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/service"
	"bookreview-backend/internal/shared/response"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// getUserID extracts user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// =====================================================
// AUTH ENDPOINTS
// =====================================================

// Register registers new user
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	// Step 1: Bind request body
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, user)
}

// Login authenticates user and issues tokens
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Refresh exchanges refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.userService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// USER ENDPOINTS
// =====================================================

// GetMe returns the authenticated user's profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateMe updates the authenticated user's profile
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// GetUser gets user by ID
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ListUsers lists users (admin only)
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateUser updates user by ID (admin only)
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteUser deletes user by ID (admin only)
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		statusCode, errCode := mapUserError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "User deleted successfully", nil)
}

// mapUserError maps user error to HTTP status code
func mapUserError(err error) (int, string) {
	if userErr, ok := err.(*model.UserError); ok {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, userErr.Code
		case model.ErrCodeDuplicateUsername, model.ErrCodeDuplicateEmail:
			return http.StatusConflict, userErr.Code
		case model.ErrCodeInvalidCredentials, model.ErrCodeInvalidToken:
			return http.StatusUnauthorized, userErr.Code
		case model.ErrCodeInactiveUser:
			return http.StatusForbidden, userErr.Code
		case model.ErrCodeInvalidInput:
			return http.StatusBadRequest, userErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
