package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/shared/response"
)

// =====================================================
// BOOK HANDLER
// =====================================================

type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// CreateBook creates new book
// POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service
	book, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, book)
}

// GetBook gets book by ID
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, book)
}

// ListBooks lists books with filters and pagination
// GET /api/v1/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.bookService.ListBooks(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateBook updates book
// PUT /api/v1/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	// Step 1: Parse book ID
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	// Step 2: Bind request body
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 3: Call service
	book, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, book)
}

// DeleteBook deletes book
// DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), bookID); err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book deleted successfully", nil)
}

// GenerateSummary regenerates the book's AI summary
// POST /api/v1/books/:id/generate-summary
func (h *BookHandler) GenerateSummary(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	result, err := h.bookService.GenerateSummary(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetSummary returns the book's summary, generating one if absent
// GET /api/v1/books/:id/summary
func (h *BookHandler) GetSummary(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	result, err := h.bookService.GetSummary(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.Error(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// mapBookError maps book error to HTTP status code
func mapBookError(err error) (int, string) {
	if bookErr, ok := err.(*model.BookError); ok {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound:
			return http.StatusNotFound, bookErr.Code
		case model.ErrCodeInvalidInput:
			return http.StatusBadRequest, bookErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
