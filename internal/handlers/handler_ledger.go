package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/library_ledger_app/internal/dto"
	"github.com/SscSPs/library_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests that borrow, return and list lent books.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the borrow and return routes. mutating is applied to
// every route that changes state.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, mutating ...gin.HandlerFunc) {
	h := newLedgerHandler(ledgerService)

	books := rg.Group("/books/:book_id")
	{
		books.POST("/borrow", withHandler(mutating, h.borrowBook)...)
		books.POST("/return", withHandler(mutating, h.returnBook)...)
		books.GET("/borrows", h.listBookBorrows)
		books.GET("/returns", h.listBookReturns)
	}

	rg.GET("/borrows", h.listBorrows)
	rg.GET("/borrows/unreturned", h.listUnreturned)
	rg.GET("/returns", h.listReturns)
}

// borrowBook godoc
// @Summary Borrow a book
// @Description Lends one copy of the book to the user. Fails with 409 when the user already holds a copy or none is available.
// @Tags lending
// @Accept  json
// @Produce  json
// @Param   book_id path int true "Book ID"
// @Param   request body dto.BorrowBookRequest true "Borrower identity"
// @Success 201 {object} dto.BorrowResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Book or user not found"
// @Failure 409 {object} ErrorResponse "already_borrowed or not_available"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/borrow [post]
func (h *ledgerHandler) borrowBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	logger.Info("Received request to borrow book", slog.Int64("book_id", bookID), slog.Int64("user_id", req.UserID))
	record, err := h.ledgerService.Borrow(c.Request.Context(), bookID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.BorrowResponse{
		Message: "Book '" + record.Book.Title + "' borrowed successfully",
		Record:  dto.ToBorrowRecordResponse(record),
	})
}

// returnBook godoc
// @Summary Return a book
// @Description Closes the user's open borrow of the book and assesses overdue and damage fines.
// @Tags lending
// @Accept  json
// @Produce  json
// @Param   book_id path int true "Book ID"
// @Param   request body dto.ReturnBookRequest true "Borrower identity and damage flag"
// @Success 200 {object} dto.ReturnResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Book, user or borrow record not found"
// @Failure 409 {object} ErrorResponse "already_returned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/return [post]
func (h *ledgerHandler) returnBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req dto.ReturnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	logger.Info("Received request to return book", slog.Int64("book_id", bookID), slog.Int64("user_id", req.UserID))
	record, err := h.ledgerService.Return(c.Request.Context(), bookID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReturnResponse{
		Message: "Book '" + record.Book.Title + "' returned successfully",
		Record:  dto.ToBorrowRecordResponse(record),
	})
}

func (h *ledgerHandler) list(c *gin.Context, status domain.BorrowStatus, bookScoped bool) {
	var bookID int64
	if bookScoped {
		var ok bool
		if bookID, ok = parseIDParam(c, "book_id"); !ok {
			return
		}
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.ListBorrowRecords(c.Request.Context(), status, bookID, c.Request.URL.Query(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBorrowRecordsResponse(result))
}

// listBorrows godoc
// @Summary List borrow records
// @Description Lists open and closed borrow records matching the filters.
// @Tags lending
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Records per page" default(10) maximum(100)
// @Param   user_id query int false "Borrower"
// @Param   book_id query int false "Book"
// @Param   borrow_date query string false "Borrowed on or after (YYYY-MM-DD)"
// @Param   borrow_date_to query string false "Borrowed on or before (YYYY-MM-DD)"
// @Param   due_date query string false "Due on or after (YYYY-MM-DD)"
// @Param   due_date_to query string false "Due on or before (YYYY-MM-DD)"
// @Param   title query string false "Title contains"
// @Param   author query string false "Author contains"
// @Param   category query string false "Category contains"
// @Param   publisher query string false "Publisher contains"
// @Param   language query string false "Language contains"
// @Success 200 {object} dto.ListBorrowRecordsResponse
// @Failure 400 {object} ErrorResponse "Invalid filter or pagination"
// @Failure 404 {object} ErrorResponse "No records match the filters"
// @Security BearerAuth
// @Router /borrows [get]
func (h *ledgerHandler) listBorrows(c *gin.Context) {
	h.list(c, domain.BorrowStatusAll, false)
}

// listUnreturned godoc
// @Summary List unreturned books
// @Description Lists borrow records that have not been returned yet.
// @Tags lending
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Records per page" default(10) maximum(100)
// @Param   user_id query int false "Borrower"
// @Param   due_date_to query string false "Due on or before (YYYY-MM-DD)"
// @Success 200 {object} dto.ListBorrowRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrows/unreturned [get]
func (h *ledgerHandler) listUnreturned(c *gin.Context) {
	h.list(c, domain.BorrowStatusOpen, false)
}

// listReturns godoc
// @Summary List returns
// @Description Lists closed borrow records with their fines.
// @Tags lending
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Records per page" default(10) maximum(100)
// @Param   returned_date query string false "Returned on or after (YYYY-MM-DD)"
// @Param   returned_date_to query string false "Returned on or before (YYYY-MM-DD)"
// @Success 200 {object} dto.ListBorrowRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /returns [get]
func (h *ledgerHandler) listReturns(c *gin.Context) {
	h.list(c, domain.BorrowStatusClosed, false)
}

// listBookBorrows godoc
// @Summary List the borrow history of a book
// @Tags lending
// @Produce  json
// @Param   book_id path int true "Book ID"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Records per page" default(10) maximum(100)
// @Success 200 {object} dto.ListBorrowRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/borrows [get]
func (h *ledgerHandler) listBookBorrows(c *gin.Context) {
	h.list(c, domain.BorrowStatusAll, true)
}

// listBookReturns godoc
// @Summary List the return history of a book
// @Tags lending
// @Produce  json
// @Param   book_id path int true "Book ID"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Records per page" default(10) maximum(100)
// @Success 200 {object} dto.ListBorrowRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{book_id}/returns [get]
func (h *ledgerHandler) listBookReturns(c *gin.Context) {
	h.list(c, domain.BorrowStatusClosed, true)
}
