package services_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type pair struct {
	userID int64
	bookID int64
}

type memState struct {
	books        map[int64]domain.Book
	borrows      []domain.BorrowRecord
	entries      map[pair]domain.ReadingListEntry
	nextBorrowID int64
}

func (s *memState) clone() *memState {
	c := &memState{
		books:        make(map[int64]domain.Book, len(s.books)),
		borrows:      make([]domain.BorrowRecord, len(s.borrows)),
		entries:      make(map[pair]domain.ReadingListEntry, len(s.entries)),
		nextBorrowID: s.nextBorrowID,
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	copy(c.borrows, s.borrows)
	for k, v := range s.entries {
		c.entries[k] = v
	}
	return c
}

type memUser struct {
	username string
	email    string
}

// memTx is a transaction over a private copy of the store. Only one is open at a time,
// which stands in for the row lock on the book.
type memTx struct {
	pgx.Tx
	work *memState
	done bool
}

// memStore is an in-memory implementation of every repository port.
type memStore struct {
	txMu    sync.Mutex
	stateMu sync.Mutex
	state   *memState
	users   map[int64]memUser

	commits          int
	rollbacks        int
	transientListErr int
	listCalls        int
}

var (
	_ portsrepo.TransactionManager          = (*memStore)(nil)
	_ portsrepo.BookRepositoryFacade        = (*memStore)(nil)
	_ portsrepo.BorrowRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.ReadingListRepositoryFacade = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade        = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			books:        map[int64]domain.Book{},
			entries:      map[pair]domain.ReadingListEntry{},
			nextBorrowID: 1,
		},
		users: map[int64]memUser{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       m,
		BookRepo:        m,
		BorrowRepo:      m,
		ReadingListRepo: m,
		UserRepo:        m,
	}
}

func (m *memStore) addBook(id int64, title string, total, available int) {
	m.state.books[id] = domain.Book{
		BookID:          id,
		BookSummary:     domain.BookSummary{Title: title, Author: "Author " + title},
		TotalCopies:     total,
		AvailableCopies: available,
	}
}

func (m *memStore) addUser(id int64, username, email string) {
	m.users[id] = memUser{username: username, email: email}
}

func (m *memStore) addClosedBorrow(bookID, userID int64, borrowedAt time.Time) {
	returned := borrowedAt.Add(24 * time.Hour)
	m.state.borrows = append(m.state.borrows, domain.BorrowRecord{
		BorrowID:     m.state.nextBorrowID,
		BookID:       bookID,
		UserID:       userID,
		BorrowDate:   borrowedAt,
		DueDate:      borrowedAt.Add(domain.DefaultLoanPeriod),
		ReturnedDate: &returned,
		Return:       &domain.ReturnDetail{},
	})
	m.state.nextBorrowID++
}

func (m *memStore) book(id int64) domain.Book {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.books[id]
}

func (m *memStore) borrowRecords() []domain.BorrowRecord {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return append([]domain.BorrowRecord(nil), m.state.borrows...)
}

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	m.txMu.Lock()
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return &memTx{work: m.state.clone()}, nil
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	t := tx.(*memTx)
	m.stateMu.Lock()
	m.state = t.work
	m.commits++
	m.stateMu.Unlock()
	t.done = true
	m.txMu.Unlock()
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	t := tx.(*memTx)
	if t.done {
		return nil
	}
	t.done = true
	m.stateMu.Lock()
	m.rollbacks++
	m.stateMu.Unlock()
	m.txMu.Unlock()
	return nil
}

func work(tx pgx.Tx) *memState {
	return tx.(*memTx).work
}

// --- BookRepository ---

func (m *memStore) FindBookByIDForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (*domain.Book, error) {
	b, ok := work(tx).books[bookID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (m *memStore) DecrementAvailableInTx(ctx context.Context, tx pgx.Tx, bookID int64) (bool, error) {
	w := work(tx)
	b := w.books[bookID]
	if b.AvailableCopies <= 0 {
		return false, nil
	}
	b.AvailableCopies--
	w.books[bookID] = b
	return true, nil
}

func (m *memStore) IncrementAvailableInTx(ctx context.Context, tx pgx.Tx, bookID int64) (bool, error) {
	w := work(tx)
	b := w.books[bookID]
	if b.AvailableCopies >= b.TotalCopies {
		return false, nil
	}
	b.AvailableCopies++
	w.books[bookID] = b
	return true, nil
}

// --- BorrowRepository ---

func (m *memStore) FindOpenBorrowInTx(ctx context.Context, tx pgx.Tx, bookID, userID int64) (*domain.BorrowRecord, error) {
	for _, r := range work(tx).borrows {
		if r.BookID == bookID && r.UserID == userID && r.IsOpen() {
			return &r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) HasClosedBorrowInTx(ctx context.Context, tx pgx.Tx, bookID, userID int64) (bool, error) {
	for _, r := range work(tx).borrows {
		if r.BookID == bookID && r.UserID == userID && !r.IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SaveBorrowInTx(ctx context.Context, tx pgx.Tx, record *domain.BorrowRecord) error {
	w := work(tx)
	for _, r := range w.borrows {
		if r.BookID == record.BookID && r.UserID == record.UserID && r.IsOpen() {
			return apperrors.ErrDuplicate
		}
	}
	record.BorrowID = w.nextBorrowID
	w.nextBorrowID++
	w.borrows = append(w.borrows, *record)
	return nil
}

func (m *memStore) CloseBorrowInTx(ctx context.Context, tx pgx.Tx, borrowID int64, returnedAt time.Time, detail domain.ReturnDetail) error {
	w := work(tx)
	for i := range w.borrows {
		if w.borrows[i].BorrowID == borrowID && w.borrows[i].IsOpen() {
			w.borrows[i].Close(returnedAt, detail)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func matches(criteria filtering.Criteria, userID, bookID int64, book domain.BookSummary) bool {
	for _, c := range criteria {
		switch c.Field.Param {
		case "user_id":
			if c.Value.(int64) != userID {
				return false
			}
		case "book_id":
			if c.Value.(int64) != bookID {
				return false
			}
		case "title":
			if !strings.Contains(strings.ToLower(book.Title), strings.ToLower(c.Value.(string))) {
				return false
			}
		}
	}
	return true
}

func paginate[T any](items []T, page pagination.Params) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (m *memStore) ListBorrowRecords(ctx context.Context, status domain.BorrowStatus, criteria filtering.Criteria, page pagination.Params) ([]domain.BorrowRecord, int, error) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.listCalls++
	if m.transientListErr > 0 {
		m.transientListErr--
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to list borrow records", apperrors.ErrTransient)
	}

	var out []domain.BorrowRecord
	for _, r := range m.state.borrows {
		if status == domain.BorrowStatusOpen && !r.IsOpen() || status == domain.BorrowStatusClosed && r.IsOpen() {
			continue
		}
		r.Book = m.state.books[r.BookID].BookSummary
		if matches(criteria, r.UserID, r.BookID, r.Book) {
			out = append(out, r)
		}
	}
	return paginate(out, page), len(out), nil
}

// --- ReadingListRepository ---

func (m *memStore) ExistsInTx(ctx context.Context, tx pgx.Tx, userID, bookID int64) (bool, error) {
	_, ok := work(tx).entries[pair{userID, bookID}]
	return ok, nil
}

func (m *memStore) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.ReadingListEntry) error {
	w := work(tx)
	key := pair{entry.UserID, entry.BookID}
	if _, ok := w.entries[key]; ok {
		return apperrors.ErrDuplicate
	}
	w.entries[key] = entry
	return nil
}

func (m *memStore) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, userID, bookID int64) (bool, error) {
	w := work(tx)
	key := pair{userID, bookID}
	if _, ok := w.entries[key]; !ok {
		return false, nil
	}
	delete(w.entries, key)
	return true, nil
}

func (m *memStore) ListEntries(ctx context.Context, userID int64, criteria filtering.Criteria, page pagination.Params) ([]domain.ReadingListEntry, int, error) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.listCalls++
	if m.transientListErr > 0 {
		m.transientListErr--
		return nil, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to list reading list", apperrors.ErrTransient)
	}

	var out []domain.ReadingListEntry
	for _, e := range m.state.entries {
		if e.UserID != userID {
			continue
		}
		e.Book = m.state.books[e.BookID].BookSummary
		if matches(criteria, e.UserID, e.BookID, e.Book) {
			out = append(out, e)
		}
	}
	return paginate(out, page), len(out), nil
}

// --- UserRepository ---

func (m *memStore) UserExists(ctx context.Context, userID int64, username, email string) (bool, error) {
	u, ok := m.users[userID]
	return ok && u.username == username && u.email == email, nil
}
