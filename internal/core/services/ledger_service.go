package services

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/url"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/library_ledger_app/internal/dto"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const defaultReadRetryBackoff = 100 * time.Millisecond

// ledgerService implements the LedgerSvcFacade interface. Every mutating operation
// runs in its own transaction.
type ledgerService struct {
	BaseService
	uow     unitOfWork
	users   portsrepo.UserReader
	borrows portsrepo.BorrowReader
	entries portsrepo.ReadingListReader

	lending *borrowManager
	returns *returnCalculator
	gate    *readingListGate

	policy           domain.FinePolicy
	now              func() time.Time
	readRetryBackoff time.Duration
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithFinePolicy sets the loan period and fine amounts.
func WithFinePolicy(policy domain.FinePolicy) LedgerOption {
	return func(s *ledgerService) {
		s.policy = policy
	}
}

// WithClock replaces time.Now as the source of borrow and return timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithReadRetryBackoff sets the delay before a listing is retried after a transient failure.
func WithReadRetryBackoff(d time.Duration) LedgerOption {
	return func(s *ledgerService) {
		s.readRetryBackoff = d
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repos portsrepo.RepositoryProvider, options ...LedgerOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		uow:              unitOfWork{txm: repos.TxManager},
		users:            repos.UserRepo,
		borrows:          repos.BorrowRepo,
		entries:          repos.ReadingListRepo,
		policy:           domain.DefaultFinePolicy(),
		now:              time.Now,
		readRetryBackoff: defaultReadRetryBackoff,
	}
	for _, option := range options {
		option(svc)
	}

	counter := inventoryCounter{books: repos.BookRepo}
	svc.lending = &borrowManager{
		books:   repos.BookRepo,
		borrows: repos.BorrowRepo,
		counter: counter,
		policy:  svc.policy,
		now:     svc.now,
	}
	svc.returns = &returnCalculator{
		books:   repos.BookRepo,
		borrows: repos.BorrowRepo,
		counter: counter,
		policy:  svc.policy,
		now:     svc.now,
	}
	svc.gate = &readingListGate{
		books:   repos.BookRepo,
		borrows: repos.BorrowRepo,
		entries: repos.ReadingListRepo,
		now:     svc.now,
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// verifyIdentity requires id, username and email to belong to one stored user.
func (s *ledgerService) verifyIdentity(ctx context.Context, identity domain.Identity) error {
	ok, err := s.users.UserExists(ctx, identity.UserID, identity.Username, identity.Email)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("user not found: id, username, and email do not match")
	}
	return nil
}

// logFailure logs broken business rules at Warn and everything else at Error.
func (s *ledgerService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch {
	case errors.Is(err, apperrors.ErrIntegrityViolation):
		s.LogError(ctx, err, msg, append(keyvals, slog.Bool("bug", true))...)
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrValidation):
		s.LogWarn(ctx, err, msg, keyvals...)
	default:
		s.LogError(ctx, err, msg, keyvals...)
	}
}

func (s *ledgerService) Borrow(ctx context.Context, bookID int64, req dto.BorrowBookRequest) (*domain.BorrowRecord, error) {
	attrs := []any{slog.Int64("book_id", bookID), slog.Int64("user_id", req.UserID)}
	if err := s.verifyIdentity(ctx, req.ToDomain()); err != nil {
		s.logFailure(ctx, err, "Borrow rejected", attrs...)
		return nil, err
	}

	var record *domain.BorrowRecord
	err := s.uow.withinTx(ctx, func(tx pgx.Tx) error {
		var err error
		record, err = s.lending.openBorrow(ctx, tx, bookID, req.UserID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Borrow failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Book borrowed", append(attrs,
		slog.Int64("borrow_id", record.BorrowID),
		slog.Time("due_date", record.DueDate))...)
	return record, nil
}

func (s *ledgerService) Return(ctx context.Context, bookID int64, req dto.ReturnBookRequest) (*domain.BorrowRecord, error) {
	attrs := []any{slog.Int64("book_id", bookID), slog.Int64("user_id", req.UserID)}
	if req.Damage == nil {
		err := apperrors.NewValidationError("damage is required")
		s.logFailure(ctx, err, "Return rejected", attrs...)
		return nil, err
	}
	if err := s.verifyIdentity(ctx, req.ToDomain()); err != nil {
		s.logFailure(ctx, err, "Return rejected", attrs...)
		return nil, err
	}

	var record *domain.BorrowRecord
	err := s.uow.withinTx(ctx, func(tx pgx.Tx) error {
		var err error
		record, err = s.returns.closeBorrow(ctx, tx, bookID, req.UserID, *req.Damage)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Return failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Book returned", append(attrs,
		slog.Int64("borrow_id", record.BorrowID),
		slog.String("total_fine", record.Return.TotalFine.String()))...)
	return record, nil
}

func (s *ledgerService) AddToReadingList(ctx context.Context, userID int64, req dto.AddReadingListRequest) (*domain.ReadingListEntry, error) {
	attrs := []any{slog.Int64("book_id", req.BookID), slog.Int64("user_id", userID)}
	identity := domain.Identity{UserID: userID, Username: req.Username, Email: req.Email}
	if err := s.verifyIdentity(ctx, identity); err != nil {
		s.logFailure(ctx, err, "Reading list addition rejected", attrs...)
		return nil, err
	}

	var entry *domain.ReadingListEntry
	err := s.uow.withinTx(ctx, func(tx pgx.Tx) error {
		var err error
		entry, err = s.gate.add(ctx, tx, userID, req.BookID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Reading list addition failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Book added to reading list", attrs...)
	return entry, nil
}

func (s *ledgerService) RemoveFromReadingList(ctx context.Context, userID, bookID int64, req dto.RemoveReadingListRequest) (*domain.Book, error) {
	attrs := []any{slog.Int64("book_id", bookID), slog.Int64("user_id", userID)}
	identity := domain.Identity{UserID: userID, Username: req.Username, Email: req.Email}
	if err := s.verifyIdentity(ctx, identity); err != nil {
		s.logFailure(ctx, err, "Reading list removal rejected", attrs...)
		return nil, err
	}

	var book *domain.Book
	err := s.uow.withinTx(ctx, func(tx pgx.Tx) error {
		var err error
		book, err = s.gate.remove(ctx, tx, userID, bookID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Reading list removal failed", attrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Book removed from reading list", attrs...)
	return book, nil
}

func (s *ledgerService) ListBorrowRecords(ctx context.Context, status domain.BorrowStatus, bookID int64, filters url.Values, page pagination.Params) (*pagination.Page[domain.BorrowRecord], error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown borrow status " + string(status))
	}
	if bookID < 0 {
		return nil, apperrors.NewValidationError("book_id must be an integer and must be greater than 0")
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if bookID > 0 {
		// the path book replaces any book_id in the query string
		filters = maps.Clone(filters)
		delete(filters, portsrepo.BorrowRecordBook.Param)
	}
	criteria, err := portsrepo.BorrowRecordFilters.Parse(filters)
	if err != nil {
		return nil, err
	}
	filtered := !criteria.Empty()
	if bookID > 0 {
		criteria = append(criteria, filtering.Condition{Field: portsrepo.BorrowRecordBook, Value: bookID})
	}

	var (
		records []domain.BorrowRecord
		total   int
	)
	err = retryRead(ctx, s.readRetryBackoff, func(ctx context.Context) error {
		var err error
		records, total, err = s.borrows.ListBorrowRecords(ctx, status, criteria, page)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to list borrow records", slog.String("status", string(status)), slog.Int64("book_id", bookID))
		return nil, err
	}

	if len(records) == 0 && filtered {
		return nil, apperrors.NewNotFoundError("no records found matching the given filters")
	}
	return &pagination.Page[domain.BorrowRecord]{Items: records, Total: total, Params: page}, nil
}

func (s *ledgerService) ListReadingList(ctx context.Context, userID int64, filters url.Values, page pagination.Params) (*pagination.Page[domain.ReadingListEntry], error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("user_id must be an integer and must be greater than 0")
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	criteria, err := portsrepo.ReadingListFilters.Parse(filters)
	if err != nil {
		return nil, err
	}

	var (
		entries []domain.ReadingListEntry
		total   int
	)
	err = retryRead(ctx, s.readRetryBackoff, func(ctx context.Context) error {
		var err error
		entries, total, err = s.entries.ListEntries(ctx, userID, criteria, page)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to list reading list", slog.Int64("user_id", userID))
		return nil, err
	}

	if len(entries) == 0 && !criteria.Empty() {
		return nil, apperrors.NewNotFoundError("no books found in the reading list matching the given filters")
	}
	return &pagination.Page[domain.ReadingListEntry]{Items: entries, Total: total, Params: page}, nil
}
