package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dialectPostgres = "postgres"

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeQueryCanceled        = "57014"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool    *pgxpool.Pool
	builder goqu.DialectWrapper
}

func newBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{Pool: pool, builder: goqu.Dialect(dialectPostgres)}
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, wrapDBError(err, "failed to begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return wrapDBError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", fmt.Errorf("%w: %w", apperrors.ErrInternal, err))
	}
	return nil
}

// wrapDBError classifies a pgx error into the application error taxonomy.
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		case codeCheckViolation:
			return fmt.Errorf("%s: constraint %s: %w", msg, pgErr.ConstraintName, apperrors.ErrIntegrityViolation)
		case codeSerializationFailure, codeDeadlockDetected, codeQueryCanceled:
			return apperrors.NewAppError(http.StatusInternalServerError, msg, fmt.Errorf("%w: %w", apperrors.ErrTransient, err))
		}
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return apperrors.NewAppError(http.StatusInternalServerError, msg, fmt.Errorf("%w: %w", apperrors.ErrTransient, err))
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, fmt.Errorf("%w: %w", apperrors.ErrInternal, err))
}

// toSQL renders a goqu dataset as a prepared statement.
func toSQL(ds *goqu.SelectDataset) (string, []interface{}, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to build query", fmt.Errorf("%w: %w", apperrors.ErrInternal, err))
	}
	return query, args, nil
}
