package dto

import (
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
)

// AddReadingListRequest defines the data needed to put a book on a reading list.
// The user ID comes from the path.
type AddReadingListRequest struct {
	BookID   int64  `json:"book_id" binding:"required,gt=0"`
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
}

// RemoveReadingListRequest defines the data needed to take a book off a reading list.
type RemoveReadingListRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
}

// ReadingListEntryResponse defines the data returned for a reading-list entry.
type ReadingListEntryResponse struct {
	UserID    int64  `json:"user_id"`
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Publisher string `json:"publisher"`
	Language  string `json:"language"`
	AddedOn   string `json:"added_on"`
}

// AddReadingListResponse is returned after a book is added to a reading list.
type AddReadingListResponse struct {
	Message string                   `json:"message"`
	Entry   ReadingListEntryResponse `json:"entry"`
}

// RemoveReadingListResponse is returned after a book is removed from a reading list.
type RemoveReadingListResponse struct {
	Message string `json:"message"`
	BookID  int64  `json:"book_id"`
	Title   string `json:"title"`
}

// ListReadingListResponse wraps one page of a reading list.
type ListReadingListResponse struct {
	ReadList    []ReadingListEntryResponse `json:"read_list"`
	TotalResult int                        `json:"total_result"`
	Page        int                        `json:"page"`
	PerPage     int                        `json:"per_page"`
	TotalPages  int                        `json:"total_pages"`
}

// ToReadingListEntryResponse converts a domain.ReadingListEntry to its DTO.
func ToReadingListEntryResponse(e *domain.ReadingListEntry) ReadingListEntryResponse {
	return ReadingListEntryResponse{
		UserID:    e.UserID,
		BookID:    e.BookID,
		Title:     e.Book.Title,
		Author:    e.Book.Author,
		Category:  e.Book.Category,
		Publisher: e.Book.Publisher,
		Language:  e.Book.Language,
		AddedOn:   formatDate(e.CreatedAt),
	}
}

// ToListReadingListResponse converts a page of entries to its DTO.
func ToListReadingListResponse(page *pagination.Page[domain.ReadingListEntry]) ListReadingListResponse {
	entries := make([]ReadingListEntryResponse, len(page.Items))
	for i := range page.Items {
		entries[i] = ToReadingListEntryResponse(&page.Items[i])
	}
	return ListReadingListResponse{
		ReadList:    entries,
		TotalResult: page.Total,
		Page:        page.Params.Page,
		PerPage:     page.Params.PerPage,
		TotalPages:  page.TotalPages(),
	}
}
