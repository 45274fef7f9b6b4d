package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// inventoryCounter owns the available copies counter of each book.
type inventoryCounter struct {
	books portsrepo.BookInventoryWriter
}

// decrement takes one copy off the shelf, failing with ErrOutOfStock when none is left.
func (c inventoryCounter) decrement(ctx context.Context, tx pgx.Tx, bookID int64) error {
	ok, err := c.books.DecrementAvailableInTx(ctx, tx, bookID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("book %d: %w", bookID, apperrors.ErrOutOfStock)
	}
	return nil
}

// increment puts one copy back. Exceeding the total is never clamped: it fails with
// ErrIntegrityViolation.
func (c inventoryCounter) increment(ctx context.Context, tx pgx.Tx, bookID int64) error {
	ok, err := c.books.IncrementAvailableInTx(ctx, tx, bookID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("book %d: available copies would exceed total copies: %w", bookID, apperrors.ErrIntegrityViolation)
	}
	return nil
}
