package dto

import (
	"time"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in every lending payload.
const DateLayout = "2006-01-02"

// Identity is the user triple every lending request carries.
type Identity struct {
	UserID   int64  `json:"user_id" binding:"required,gt=0"`
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
}

// ToDomain converts the payload into a domain.Identity.
func (i Identity) ToDomain() domain.Identity {
	return domain.Identity{UserID: i.UserID, Username: i.Username, Email: i.Email}
}

// BorrowBookRequest defines the data needed to borrow a copy of a book.
type BorrowBookRequest struct {
	Identity
}

// ReturnBookRequest defines the data needed to return a borrowed copy.
// Damage is a pointer so an omitted field fails the required check instead of reading as false.
type ReturnBookRequest struct {
	Identity
	Damage *bool `json:"damage" binding:"required"`
}

// BorrowRecordResponse defines the data returned for a borrow record.
type BorrowRecordResponse struct {
	BorrowID       int64            `json:"borrow_id"`
	BookID         int64            `json:"book_id"`
	UserID         int64            `json:"user_id"`
	Title          string           `json:"title"`
	Author         string           `json:"author"`
	Category       string           `json:"category"`
	Publisher      string           `json:"publisher"`
	Language       string           `json:"language"`
	BorrowDate     string           `json:"borrow_date"`
	DueDate        string           `json:"due_date"`
	ReturnedDate   *string          `json:"returned_date"`
	DamageReported *bool            `json:"damage_reported,omitempty"`
	DamageFine     *decimal.Decimal `json:"damage_fine,omitempty"`
	OverdueFine    *decimal.Decimal `json:"overdue_fine,omitempty"`
	TotalFine      *decimal.Decimal `json:"total_fine,omitempty"`
}

// BorrowResponse is returned after a successful borrow.
type BorrowResponse struct {
	Message string               `json:"message"`
	Record  BorrowRecordResponse `json:"record"`
}

// ReturnResponse is returned after a successful return.
type ReturnResponse struct {
	Message string               `json:"message"`
	Record  BorrowRecordResponse `json:"record"`
}

// ListBorrowRecordsResponse wraps one page of borrow records.
type ListBorrowRecordsResponse struct {
	Records     []BorrowRecordResponse `json:"records"`
	TotalResult int                    `json:"total_result"`
	Page        int                    `json:"page"`
	PerPage     int                    `json:"per_page"`
	TotalPages  int                    `json:"total_pages"`
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ToBorrowRecordResponse converts a domain.BorrowRecord to BorrowRecordResponse DTO
func ToBorrowRecordResponse(r *domain.BorrowRecord) BorrowRecordResponse {
	res := BorrowRecordResponse{
		BorrowID:   r.BorrowID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		Title:      r.Book.Title,
		Author:     r.Book.Author,
		Category:   r.Book.Category,
		Publisher:  r.Book.Publisher,
		Language:   r.Book.Language,
		BorrowDate: formatDate(r.BorrowDate),
		DueDate:    formatDate(r.DueDate),
	}
	if r.ReturnedDate != nil {
		returned := formatDate(*r.ReturnedDate)
		res.ReturnedDate = &returned
	}
	if r.Return != nil {
		detail := *r.Return
		res.DamageReported = &detail.DamageReported
		res.DamageFine = &detail.DamageFine
		res.OverdueFine = &detail.OverdueFine
		res.TotalFine = &detail.TotalFine
	}
	return res
}

// ToListBorrowRecordsResponse converts a page of records to its DTO.
func ToListBorrowRecordsResponse(page *pagination.Page[domain.BorrowRecord]) ListBorrowRecordsResponse {
	records := make([]BorrowRecordResponse, len(page.Items))
	for i := range page.Items {
		records[i] = ToBorrowRecordResponse(&page.Items[i])
	}
	return ListBorrowRecordsResponse{
		Records:     records,
		TotalResult: page.Total,
		Page:        page.Params.Page,
		PerPage:     page.Params.PerPage,
		TotalPages:  page.TotalPages(),
	}
}
