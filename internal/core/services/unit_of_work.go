package services

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// unitOfWork runs one ledger operation inside one database transaction.
type unitOfWork struct {
	txm portsrepo.TransactionManager
}

// withinTx commits when fn succeeds and rolls back otherwise.
func (u unitOfWork) withinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := u.txm.Begin(ctx)
	if err != nil {
		return err
	}
	defer u.txm.Rollback(ctx, tx) // no-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return u.txm.Commit(ctx, tx)
}

// retryRead runs a read-only fn and, if it fails with a transient storage error,
// runs it exactly once more after backoff.
func retryRead(ctx context.Context, backoff time.Duration, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil || !errors.Is(err, apperrors.ErrTransient) {
		return err
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return err
	case <-timer.C:
	}
	return fn(ctx)
}
