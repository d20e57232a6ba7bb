package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// getUserID extracts user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, model.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// isAdmin extracts admin flag from JWT claims
func isAdmin(c *gin.Context) bool {
	val, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	admin, ok := val.(bool)
	return ok && admin
}

// =====================================================
// REVIEW ENDPOINTS
// =====================================================

// CreateReview creates new review
// POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	// Step 1: Get user ID from JWT
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 3: Call service
	resp, err := h.reviewService.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusCreated, resp)
}

// CreateBookReview creates new review for a book given in the path
// POST /api/v1/books/:id/reviews
func (h *ReviewHandler) CreateBookReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	req.BookID = bookID

	resp, err := h.reviewService.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetReview gets review by ID
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	resp, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListReviews lists reviews with filters
// GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.reviewService.ListReviews(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListBookReviews lists reviews of a book given in the path
// GET /api/v1/books/:id/reviews
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	req.BookID = &bookID

	resp, err := h.reviewService.ListReviews(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateReview updates user's review
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	// Step 1: Get user ID
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	// Step 2: Parse review ID
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	// Step 3: Bind request body
	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 4: Call service
	resp, err := h.reviewService.UpdateReview(c.Request.Context(), userID, isAdmin(c), reviewID, req)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	// Step 5: Return success
	response.Success(c, http.StatusOK, resp)
}

// DeleteReview deletes user's review
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "AUTH_ERROR", "Unauthorized")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, isAdmin(c), reviewID); err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Review deleted successfully", nil)
}

// BookReviewsSummary generates AI digest across a book's reviews
// GET /api/v1/reviews/books/:book_id/summary
func (h *ReviewHandler) BookReviewsSummary(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	resp, err := h.reviewService.BookReviewsSummary(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapReviewError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// mapReviewError maps review error to HTTP status code
func mapReviewError(err error) (int, string) {
	if reviewErr, ok := err.(*model.ReviewError); ok {
		switch reviewErr.Code {
		case model.ErrCodeReviewNotFound, model.ErrCodeBookNotFound:
			return http.StatusNotFound, reviewErr.Code
		case model.ErrCodeAlreadyReviewed:
			return http.StatusConflict, reviewErr.Code
		case model.ErrCodeUnauthorized:
			return http.StatusForbidden, reviewErr.Code
		case model.ErrCodeInvalidRating, model.ErrCodeInvalidInput:
			return http.StatusBadRequest, reviewErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
