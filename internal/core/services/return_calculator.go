package services

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// returnCalculator closes borrow records and assesses their fines.
type returnCalculator struct {
	books   portsrepo.BookReader
	borrows portsrepo.BorrowRepositoryFacade
	counter inventoryCounter
	policy  domain.FinePolicy
	now     func() time.Time
}

// closeBorrow returns the user's copy of the book.
func (c *returnCalculator) closeBorrow(ctx context.Context, tx pgx.Tx, bookID, userID int64, damageReported bool) (*domain.BorrowRecord, error) {
	book, err := lockBook(ctx, c.books, tx, bookID)
	if err != nil {
		return nil, err
	}

	record, err := c.borrows.FindOpenBorrowInTx(ctx, tx, bookID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		returned, err := c.borrows.HasClosedBorrowInTx(ctx, tx, bookID, userID)
		if err != nil {
			return nil, err
		}
		if returned {
			return nil, apperrors.ErrAlreadyReturned
		}
		return nil, apperrors.NewNotFoundError("no borrow record found for this user and book")
	}

	returnedAt := c.now()
	detail := c.policy.Assess(record.DueDate, returnedAt, damageReported)
	if err := c.borrows.CloseBorrowInTx(ctx, tx, record.BorrowID, returnedAt, detail); err != nil {
		return nil, err
	}
	if err := c.counter.increment(ctx, tx, bookID); err != nil {
		return nil, err
	}

	record.Close(returnedAt, detail)
	record.Book = book.BookSummary
	return record, nil
}
