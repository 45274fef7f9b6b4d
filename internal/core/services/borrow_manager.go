package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// borrowManager opens borrow records.
type borrowManager struct {
	books   portsrepo.BookReader
	borrows portsrepo.BorrowRepositoryFacade
	counter inventoryCounter
	policy  domain.FinePolicy
	now     func() time.Time
}

// lockBook loads the book and holds its row lock for the rest of tx.
func lockBook(ctx context.Context, books portsrepo.BookReader, tx pgx.Tx, bookID int64) (*domain.Book, error) {
	book, err := books.FindBookByIDForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("book %d not found", bookID))
		}
		return nil, err
	}
	return book, nil
}

// openBorrow lends one copy of the book to the user.
func (m *borrowManager) openBorrow(ctx context.Context, tx pgx.Tx, bookID, userID int64) (*domain.BorrowRecord, error) {
	book, err := lockBook(ctx, m.books, tx, bookID)
	if err != nil {
		return nil, err
	}

	if _, err := m.borrows.FindOpenBorrowInTx(ctx, tx, bookID, userID); err == nil {
		return nil, apperrors.ErrAlreadyBorrowed
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := m.counter.decrement(ctx, tx, bookID); err != nil {
		if errors.Is(err, apperrors.ErrOutOfStock) {
			return nil, apperrors.ErrNotAvailable
		}
		return nil, err
	}

	now := m.now()
	record := &domain.BorrowRecord{
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
		DueDate:    m.policy.DueDate(now),
		Book:       book.BookSummary,
	}
	if err := m.borrows.SaveBorrowInTx(ctx, tx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrAlreadyBorrowed
		}
		return nil, err
	}
	return record, nil
}
