package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_ledger_app/internal/models"
	"github.com/SscSPs/library_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectBook = `
	SELECT book_id, title, author, category, publisher, language, total_copies, available_copies
	FROM books
	WHERE book_id = $1`

type PgxBookRepository struct {
	BaseRepository
}

func newPgxBookRepository(db *pgxpool.Pool) *PgxBookRepository {
	return &PgxBookRepository{BaseRepository: newBaseRepository(db)}
}

// Ensure PgxBookRepository implements portsrepo.BookRepositoryFacade
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

func scanBook(rows pgx.Rows) (*domain.Book, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Book])
	if err != nil {
		return nil, err
	}
	book := mapping.ToDomainBook(m)
	return &book, nil
}

// FindBookByIDForUpdate locks the book row. Every ledger operation on a book takes this
// lock first, so operations on the same book run one after another.
func (r *PgxBookRepository) FindBookByIDForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (*domain.Book, error) {
	rows, err := tx.Query(ctx, selectBook+" FOR UPDATE", bookID)
	if err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("failed to lock book %d", bookID))
	}
	book, err := scanBook(rows)
	if err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("failed to lock book %d", bookID))
	}
	return book, nil
}

func (r *PgxBookRepository) DecrementAvailableInTx(ctx context.Context, tx pgx.Tx, bookID int64) (bool, error) {
	query := `
		UPDATE books
		SET available_copies = available_copies - 1
		WHERE book_id = $1 AND available_copies > 0;
	`
	ct, err := tx.Exec(ctx, query, bookID)
	if err != nil {
		return false, wrapDBError(err, fmt.Sprintf("failed to decrement available copies of book %d", bookID))
	}
	return ct.RowsAffected() == 1, nil
}

func (r *PgxBookRepository) IncrementAvailableInTx(ctx context.Context, tx pgx.Tx, bookID int64) (bool, error) {
	query := `
		UPDATE books
		SET available_copies = available_copies + 1
		WHERE book_id = $1 AND available_copies < total_copies;
	`
	ct, err := tx.Exec(ctx, query, bookID)
	if err != nil {
		return false, wrapDBError(err, fmt.Sprintf("failed to increment available copies of book %d", bookID))
	}
	return ct.RowsAffected() == 1, nil
}
