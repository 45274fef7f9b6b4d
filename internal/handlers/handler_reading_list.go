package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/library_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/library_ledger_app/internal/dto"
	"github.com/SscSPs/library_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type readingListHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerReadingListRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, mutating ...gin.HandlerFunc) {
	h := &readingListHandler{ledgerService: ledgerService}

	list := rg.Group("/users/:user_id/reading-list")
	{
		list.POST("", withHandler(mutating, h.addToReadingList)...)
		list.GET("", h.listReadingList)
		list.DELETE("/:book_id", withHandler(mutating, h.removeFromReadingList)...)
	}
}

// addToReadingList godoc
// @Summary Add a book to a reading list
// @Description Adds a book the user has borrowed and returned at least once.
// @Tags reading-list
// @Accept  json
// @Produce  json
// @Param   user_id path int true "User ID"
// @Param   request body dto.AddReadingListRequest true "Book and user identity"
// @Success 201 {object} dto.AddReadingListResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Book or user not found"
// @Failure 409 {object} ErrorResponse "must_return_first or already_in_list"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id}/reading-list [post]
func (h *readingListHandler) addToReadingList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req dto.AddReadingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	logger.Info("Received request to add book to reading list", slog.Int64("user_id", userID), slog.Int64("book_id", req.BookID))
	entry, err := h.ledgerService.AddToReadingList(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AddReadingListResponse{
		Message: "Book '" + entry.Book.Title + "' added to reading list",
		Entry:   dto.ToReadingListEntryResponse(entry),
	})
}

// listReadingList godoc
// @Summary List a reading list
// @Tags reading-list
// @Produce  json
// @Param   user_id path int true "User ID"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Entries per page" default(10) maximum(100)
// @Param   book_id query int false "Book"
// @Param   title query string false "Title contains"
// @Param   author query string false "Author contains"
// @Success 200 {object} dto.ListReadingListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No entries match the filters"
// @Security BearerAuth
// @Router /users/{user_id}/reading-list [get]
func (h *readingListHandler) listReadingList(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.ListReadingList(c.Request.Context(), userID, c.Request.URL.Query(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListReadingListResponse(result))
}

// removeFromReadingList godoc
// @Summary Remove a book from a reading list
// @Tags reading-list
// @Accept  json
// @Produce  json
// @Param   user_id path int true "User ID"
// @Param   book_id path int true "Book ID"
// @Param   request body dto.RemoveReadingListRequest true "User identity"
// @Success 200 {object} dto.RemoveReadingListResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Book, user or entry not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id}/reading-list/{book_id} [delete]
func (h *readingListHandler) removeFromReadingList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req dto.RemoveReadingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	logger.Info("Received request to remove book from reading list", slog.Int64("user_id", userID), slog.Int64("book_id", bookID))
	book, err := h.ledgerService.RemoveFromReadingList(c.Request.Context(), userID, bookID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemoveReadingListResponse{
		Message: "Book '" + book.Title + "' removed from reading list",
		BookID:  book.BookID,
		Title:   book.Title,
	})
}
