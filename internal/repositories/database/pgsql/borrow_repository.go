package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
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

const selectOpenBorrow = `
	SELECT br.borrow_id, br.book_id, br.user_id, br.borrow_date, br.due_date, br.returned_date,
	       br.damage_reported, br.damage_fine, br.overdue_fine, br.total_fine,
	       b.title, b.author, b.category, b.publisher, b.language
	FROM borrow_records br
	JOIN books b ON b.book_id = br.book_id
	WHERE br.book_id = $1 AND br.user_id = $2 AND br.returned_date IS NULL
	FOR UPDATE OF br;
`

var borrowRecordColumns = []interface{}{
	goqu.I("br.borrow_id"), goqu.I("br.book_id"), goqu.I("br.user_id"),
	goqu.I("br.borrow_date"), goqu.I("br.due_date"), goqu.I("br.returned_date"),
	goqu.I("br.damage_reported"), goqu.I("br.damage_fine"), goqu.I("br.overdue_fine"), goqu.I("br.total_fine"),
	goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.category"), goqu.I("b.publisher"), goqu.I("b.language"),
}

type PgxBorrowRepository struct {
	BaseRepository
}

func newPgxBorrowRepository(db *pgxpool.Pool) *PgxBorrowRepository {
	return &PgxBorrowRepository{BaseRepository: newBaseRepository(db)}
}

// Ensure PgxBorrowRepository implements portsrepo.BorrowRepositoryFacade
var _ portsrepo.BorrowRepositoryFacade = (*PgxBorrowRepository)(nil)

func (r *PgxBorrowRepository) FindOpenBorrowInTx(ctx context.Context, tx pgx.Tx, bookID, userID int64) (*domain.BorrowRecord, error) {
	rows, err := tx.Query(ctx, selectOpenBorrow, bookID, userID)
	if err != nil {
		return nil, wrapDBError(err, "failed to find open borrow record")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BorrowRecord])
	if err != nil {
		return nil, wrapDBError(err, "failed to find open borrow record")
	}
	record := mapping.ToDomainBorrowRecord(m)
	return &record, nil
}

func (r *PgxBorrowRepository) HasClosedBorrowInTx(ctx context.Context, tx pgx.Tx, bookID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE book_id = $1 AND user_id = $2 AND returned_date IS NOT NULL
		);
	`
	var exists bool
	if err := tx.QueryRow(ctx, query, bookID, userID).Scan(&exists); err != nil {
		return false, wrapDBError(err, "failed to look up returned borrow records")
	}
	return exists, nil
}

func (r *PgxBorrowRepository) SaveBorrowInTx(ctx context.Context, tx pgx.Tx, record *domain.BorrowRecord) error {
	query := `
		INSERT INTO borrow_records (book_id, user_id, borrow_date, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING borrow_id;
	`
	err := tx.QueryRow(ctx, query, record.BookID, record.UserID, record.BorrowDate, record.DueDate).Scan(&record.BorrowID)
	if err != nil {
		return wrapDBError(err, fmt.Sprintf("failed to save borrow record for book %d", record.BookID))
	}
	return nil
}

func (r *PgxBorrowRepository) CloseBorrowInTx(ctx context.Context, tx pgx.Tx, borrowID int64, returnedAt time.Time, detail domain.ReturnDetail) error {
	query := `
		UPDATE borrow_records
		SET returned_date = $2, damage_reported = $3, damage_fine = $4, overdue_fine = $5, total_fine = $6
		WHERE borrow_id = $1 AND returned_date IS NULL;
	`
	ct, err := tx.Exec(ctx, query, borrowID, returnedAt, detail.DamageReported, detail.DamageFine, detail.OverdueFine, detail.TotalFine)
	if err != nil {
		return wrapDBError(err, fmt.Sprintf("failed to close borrow record %d", borrowID))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("borrow record %d is not open: %w", borrowID, apperrors.ErrNotFound)
	}
	return nil
}

// listBorrowRecordsQueries builds the count and page queries of a listing.
func (r *PgxBorrowRepository) listBorrowRecordsQueries(status domain.BorrowStatus, criteria filtering.Criteria, page pagination.Params) (*goqu.SelectDataset, *goqu.SelectDataset) {
	base := r.builder.
		From(goqu.T("borrow_records").As("br")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("br.book_id"))))

	switch status {
	case domain.BorrowStatusOpen:
		base = base.Where(goqu.I("br.returned_date").IsNull())
	case domain.BorrowStatusClosed:
		base = base.Where(goqu.I("br.returned_date").IsNotNull())
	}
	base = criteria.Apply(base)

	count := base.Select(goqu.COUNT(goqu.Star()))
	rows := base.Select(borrowRecordColumns...).
		Order(goqu.I("br.borrow_date").Desc(), goqu.I("br.borrow_id").Desc()).
		Limit(uint(page.Limit())).
		Offset(uint(page.Offset()))
	return count, rows
}

func (r *PgxBorrowRepository) ListBorrowRecords(ctx context.Context, status domain.BorrowStatus, criteria filtering.Criteria, page pagination.Params) ([]domain.BorrowRecord, int, error) {
	countDS, rowsDS := r.listBorrowRecordsQueries(status, criteria, page)

	countSQL, countArgs, err := toSQL(countDS)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrapDBError(err, "failed to count borrow records")
	}
	if total == 0 {
		return []domain.BorrowRecord{}, 0, nil
	}

	rowsSQL, rowsArgs, err := toSQL(rowsDS)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.Pool.Query(ctx, rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, wrapDBError(err, "failed to list borrow records")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BorrowRecord])
	if err != nil {
		return nil, 0, wrapDBError(err, "failed to scan borrow records")
	}
	return mapping.ToDomainBorrowRecordSlice(ms), total, nil
}
