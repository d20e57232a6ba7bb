package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/recommendation/service"
	usermodel "bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/shared/response"
)

// =====================================================
// RECOMMENDATION HANDLER
// =====================================================

type RecommendationHandler struct {
	recService service.ServiceInterface
}

func NewRecommendationHandler(recService service.ServiceInterface) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
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

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}

// =====================================================
// ENDPOINTS
// =====================================================

// Recommend returns personalized recommendations
// GET /api/v1/recommendations
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	genre := c.Query("genre")
	count := queryInt(c, "count", 5)

	result, err := h.recService.Recommend(c.Request.Context(), userID, genre, count)
	if err != nil {
		statusCode, errCode := mapRecommendationError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Popular returns popular books
// GET /api/v1/recommendations/popular
func (h *RecommendationHandler) Popular(c *gin.Context) {
	genre := c.Query("genre")
	limit := queryInt(c, "limit", 10)

	result, err := h.recService.Popular(c.Request.Context(), genre, limit)
	if err != nil {
		statusCode, errCode := mapRecommendationError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Similar returns books similar to the given one
// GET /api/v1/recommendations/similar/:book_id
func (h *RecommendationHandler) Similar(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	limit := queryInt(c, "limit", 5)

	result, err := h.recService.Similar(c.Request.Context(), bookID, limit)
	if err != nil {
		statusCode, errCode := mapRecommendationError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GenerateSummary summarizes arbitrary content
// POST /api/v1/recommendations/generate-summary
func (h *RecommendationHandler) GenerateSummary(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.recService.GenerateSummary(c.Request.Context(), req.Content)
	if err != nil {
		statusCode, errCode := mapRecommendationError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CacheStats returns cache hit/miss counters
// GET /api/v1/admin/cache/stats
func (h *RecommendationHandler) CacheStats(c *gin.Context) {
	stats, err := h.recService.CacheStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "CACHE_UNAVAILABLE", "Cache backend is unreachable")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ClearCache drops all cached entries
// DELETE /api/v1/admin/cache
func (h *RecommendationHandler) ClearCache(c *gin.Context) {
	if err := h.recService.ClearCache(c.Request.Context()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "CACHE_UNAVAILABLE", "Cache backend is unreachable")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Cache cleared", nil)
}

// mapRecommendationError maps domain errors to HTTP status codes
func mapRecommendationError(err error) (int, string) {
	if bookErr, ok := err.(*bookmodel.BookError); ok {
		switch bookErr.Code {
		case bookmodel.ErrCodeBookNotFound:
			return http.StatusNotFound, bookErr.Code
		case bookmodel.ErrCodeInvalidInput:
			return http.StatusBadRequest, bookErr.Code
		}
	}
	if userErr, ok := err.(*usermodel.UserError); ok {
		if userErr.Code == usermodel.ErrCodeUserNotFound {
			return http.StatusNotFound, userErr.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
