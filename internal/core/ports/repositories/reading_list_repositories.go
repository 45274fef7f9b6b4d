package repositories

import (
	"context"

	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// ReadingListReader defines read operations for reading lists.
type ReadingListReader interface {
	ExistsInTx(ctx context.Context, tx pgx.Tx, userID, bookID int64) (bool, error)

	// ListEntries returns one page of a user's reading list matching criteria and the
	// total number of matching entries.
	ListEntries(ctx context.Context, userID int64, criteria filtering.Criteria, page pagination.Params) ([]domain.ReadingListEntry, int, error)
}

// ReadingListWriter defines write operations for reading lists.
type ReadingListWriter interface {
	// SaveEntryInTx inserts an entry. Returns apperrors.ErrDuplicate if it already exists.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.ReadingListEntry) error

	// DeleteEntryInTx removes an entry and reports whether one was removed.
	DeleteEntryInTx(ctx context.Context, tx pgx.Tx, userID, bookID int64) (bool, error)
}

// ReadingListRepositoryFacade combines all reading-list repository interfaces
type ReadingListRepositoryFacade interface {
	ReadingListReader
	ReadingListWriter
}
