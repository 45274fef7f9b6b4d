package services

import (
	"context"
	"net/url"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/dto"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
)

// LendingSvc defines the operations that move copies between the shelf and users.
type LendingSvc interface {
	// Borrow lends one copy of the book to the user and returns the open record.
	Borrow(ctx context.Context, bookID int64, req dto.BorrowBookRequest) (*domain.BorrowRecord, error)

	// Return closes the user's open record for the book, assessing overdue and damage fines.
	Return(ctx context.Context, bookID int64, req dto.ReturnBookRequest) (*domain.BorrowRecord, error)
}

// ReadingListSvc defines reading-list membership operations.
type ReadingListSvc interface {
	// AddToReadingList adds a book the user has already returned.
	AddToReadingList(ctx context.Context, userID int64, req dto.AddReadingListRequest) (*domain.ReadingListEntry, error)

	// RemoveFromReadingList removes a book and returns it so callers can name it.
	RemoveFromReadingList(ctx context.Context, userID, bookID int64, req dto.RemoveReadingListRequest) (*domain.Book, error)
}

// LedgerReaderSvc defines the read-only listings.
type LedgerReaderSvc interface {
	// ListBorrowRecords returns records with the given status matching the query filters.
	// A positive bookID restricts the listing to that book's history; zero lists every book.
	ListBorrowRecords(ctx context.Context, status domain.BorrowStatus, bookID int64, filters url.Values, page pagination.Params) (*pagination.Page[domain.BorrowRecord], error)

	// ListReadingList returns the user's reading list matching the query filters.
	ListReadingList(ctx context.Context, userID int64, filters url.Values, page pagination.Params) (*pagination.Page[domain.ReadingListEntry], error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LendingSvc
	ReadingListSvc
	LedgerReaderSvc
}
