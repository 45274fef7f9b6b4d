package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) UserExists(ctx context.Context, userID int64, username, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE user_id = $1 AND username = $2 AND email = $3
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, username, email).Scan(&exists); err != nil {
		return false, wrapDBError(err, fmt.Sprintf("failed to verify user %d", userID))
	}
	return exists, nil
}
