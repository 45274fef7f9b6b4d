package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// BorrowReader defines read operations for borrow records.
type BorrowReader interface {
	// FindOpenBorrowInTx returns the open record of the pair, or apperrors.ErrNotFound.
	FindOpenBorrowInTx(ctx context.Context, tx pgx.Tx, bookID, userID int64) (*domain.BorrowRecord, error)

	// HasClosedBorrowInTx reports whether the user has ever returned the book.
	HasClosedBorrowInTx(ctx context.Context, tx pgx.Tx, bookID, userID int64) (bool, error)

	// ListBorrowRecords returns one page of records with the given status matching
	// criteria, together with the total number of matching records.
	ListBorrowRecords(ctx context.Context, status domain.BorrowStatus, criteria filtering.Criteria, page pagination.Params) ([]domain.BorrowRecord, int, error)
}

// BorrowWriter defines write operations for borrow records.
type BorrowWriter interface {
	// SaveBorrowInTx inserts an open record and sets its BorrowID. Returns
	// apperrors.ErrDuplicate if the pair already has an open record.
	SaveBorrowInTx(ctx context.Context, tx pgx.Tx, record *domain.BorrowRecord) error

	// CloseBorrowInTx sets the returned date and return detail of an open record.
	// Returns apperrors.ErrNotFound if the record is not open.
	CloseBorrowInTx(ctx context.Context, tx pgx.Tx, borrowID int64, returnedAt time.Time, detail domain.ReturnDetail) error
}

// BorrowRepositoryFacade combines all borrow-related repository interfaces
type BorrowRepositoryFacade interface {
	BorrowReader
	BorrowWriter
}
