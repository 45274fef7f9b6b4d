package pgsql

import (
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := newBaseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       &base,
		BookRepo:        newPgxBookRepository(dbPool),
		BorrowRepo:      newPgxBorrowRepository(dbPool),
		ReadingListRepo: newPgxReadingListRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
