package repositories

import (
	"context"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BookReader defines read operations on the catalog.
type BookReader interface {
	// FindBookByIDForUpdate retrieves a book and locks its row until tx ends.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindBookByIDForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (*domain.Book, error)
}

// BookInventoryWriter adjusts the available copies counter.
type BookInventoryWriter interface {
	// DecrementAvailableInTx takes one copy out of stock. It returns false, without
	// changing anything, when no copy is available.
	DecrementAvailableInTx(ctx context.Context, tx pgx.Tx, bookID int64) (bool, error)

	// IncrementAvailableInTx puts one copy back. It returns false, without changing
	// anything, when every copy is already on the shelf.
	IncrementAvailableInTx(ctx context.Context, tx pgx.Tx, bookID int64) (bool, error)
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookInventoryWriter
}
