package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_ledger_app/internal/models"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/SscSPs/library_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var readingListColumns = []interface{}{
	goqu.I("rl.user_id"), goqu.I("rl.book_id"), goqu.I("rl.created_at"),
	goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.category"), goqu.I("b.publisher"), goqu.I("b.language"),
}

type PgxReadingListRepository struct {
	BaseRepository
}

func newPgxReadingListRepository(db *pgxpool.Pool) *PgxReadingListRepository {
	return &PgxReadingListRepository{BaseRepository: newBaseRepository(db)}
}

// Ensure PgxReadingListRepository implements portsrepo.ReadingListRepositoryFacade
var _ portsrepo.ReadingListRepositoryFacade = (*PgxReadingListRepository)(nil)

func (r *PgxReadingListRepository) ExistsInTx(ctx context.Context, tx pgx.Tx, userID, bookID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM reading_list_entries WHERE user_id = $1 AND book_id = $2);`
	var exists bool
	if err := tx.QueryRow(ctx, query, userID, bookID).Scan(&exists); err != nil {
		return false, wrapDBError(err, "failed to look up reading list entry")
	}
	return exists, nil
}

func (r *PgxReadingListRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.ReadingListEntry) error {
	query := `
		INSERT INTO reading_list_entries (user_id, book_id, created_at)
		VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(ctx, query, entry.UserID, entry.BookID, entry.CreatedAt); err != nil {
		return wrapDBError(err, fmt.Sprintf("failed to add book %d to reading list", entry.BookID))
	}
	return nil
}

func (r *PgxReadingListRepository) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, userID, bookID int64) (bool, error) {
	query := `DELETE FROM reading_list_entries WHERE user_id = $1 AND book_id = $2;`
	ct, err := tx.Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, wrapDBError(err, fmt.Sprintf("failed to remove book %d from reading list", bookID))
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgxReadingListRepository) listEntriesQueries(userID int64, criteria filtering.Criteria, page pagination.Params) (*goqu.SelectDataset, *goqu.SelectDataset) {
	base := r.builder.
		From(goqu.T("reading_list_entries").As("rl")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("rl.book_id")))).
		Where(goqu.I("rl.user_id").Eq(userID))
	base = criteria.Apply(base)

	count := base.Select(goqu.COUNT(goqu.Star()))
	rows := base.Select(readingListColumns...).
		Order(goqu.I("rl.created_at").Desc(), goqu.I("rl.book_id").Asc()).
		Limit(uint(page.Limit())).
		Offset(uint(page.Offset()))
	return count, rows
}

func (r *PgxReadingListRepository) ListEntries(ctx context.Context, userID int64, criteria filtering.Criteria, page pagination.Params) ([]domain.ReadingListEntry, int, error) {
	countDS, rowsDS := r.listEntriesQueries(userID, criteria, page)

	countSQL, countArgs, err := toSQL(countDS)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrapDBError(err, "failed to count reading list entries")
	}
	if total == 0 {
		return []domain.ReadingListEntry{}, 0, nil
	}

	rowsSQL, rowsArgs, err := toSQL(rowsDS)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.Pool.Query(ctx, rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, wrapDBError(err, "failed to list reading list entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ReadingListEntry])
	if err != nil {
		return nil, 0, wrapDBError(err, "failed to scan reading list entries")
	}
	return mapping.ToDomainReadingListEntrySlice(ms), total, nil
}
