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

// readingListGate admits a book to a reading list only after the user has returned it.
type readingListGate struct {
	books   portsrepo.BookReader
	borrows portsrepo.BorrowReader
	entries portsrepo.ReadingListRepositoryFacade
	now     func() time.Time
}

func (g *readingListGate) add(ctx context.Context, tx pgx.Tx, userID, bookID int64) (*domain.ReadingListEntry, error) {
	book, err := lockBook(ctx, g.books, tx, bookID)
	if err != nil {
		return nil, err
	}

	returned, err := g.borrows.HasClosedBorrowInTx(ctx, tx, bookID, userID)
	if err != nil {
		return nil, err
	}
	if !returned {
		return nil, apperrors.ErrMustReturnFirst
	}

	exists, err := g.entries.ExistsInTx(ctx, tx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyInList
	}

	entry := domain.ReadingListEntry{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: g.now(),
		Book:      book.BookSummary,
	}
	if err := g.entries.SaveEntryInTx(ctx, tx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrAlreadyInList
		}
		return nil, err
	}
	return &entry, nil
}

func (g *readingListGate) remove(ctx context.Context, tx pgx.Tx, userID, bookID int64) (*domain.Book, error) {
	book, err := lockBook(ctx, g.books, tx, bookID)
	if err != nil {
		return nil, err
	}

	removed, err := g.entries.DeleteEntryInTx(ctx, tx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("book %d is not in the reading list", bookID))
	}
	return book, nil
}
