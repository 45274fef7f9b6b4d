package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/library_ledger_app/internal/dto"
	"github.com/SscSPs/library_ledger_app/internal/handlers"
	"github.com/SscSPs/library_ledger_app/internal/platform/config"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Borrow(ctx context.Context, bookID int64, req dto.BorrowBookRequest) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}

func (m *MockLedgerService) Return(ctx context.Context, bookID int64, req dto.ReturnBookRequest) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}

func (m *MockLedgerService) AddToReadingList(ctx context.Context, userID int64, req dto.AddReadingListRequest) (*domain.ReadingListEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReadingListEntry), args.Error(1)
}

func (m *MockLedgerService) RemoveFromReadingList(ctx context.Context, userID, bookID int64, req dto.RemoveReadingListRequest) (*domain.Book, error) {
	args := m.Called(ctx, userID, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockLedgerService) ListBorrowRecords(ctx context.Context, status domain.BorrowStatus, bookID int64, filters url.Values, page pagination.Params) (*pagination.Page[domain.BorrowRecord], error) {
	args := m.Called(ctx, status, bookID, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.BorrowRecord]), args.Error(1)
}

func (m *MockLedgerService) ListReadingList(ctx context.Context, userID int64, filters url.Values, page pagination.Params) (*pagination.Page[domain.ReadingListEntry], error) {
	args := m.Called(ctx, userID, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.ReadingListEntry]), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite Setup ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockLedgerService
	cfg         *config.Config
}

const testJWTSecret = "handler-test-secret"

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockLedgerService)
	suite.cfg = &config.Config{
		IsProduction: true,
		AuthEnabled:  true,
		JWTSecret:    testJWTSecret,
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{Ledger: suite.mockService}, nil)
}

func (suite *LedgerHandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return token
}

func (suite *LedgerHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("librarian"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var (
	borrowDate = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	dueDate    = borrowDate.AddDate(0, 0, 30)
)

func aliceIdentity() dto.Identity {
	return dto.Identity{UserID: 1, Username: "alice01", Email: "alice@example.com"}
}

func openRecord() *domain.BorrowRecord {
	return &domain.BorrowRecord{
		BorrowID:   7,
		BookID:     42,
		UserID:     1,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		Book:       domain.BookSummary{Title: "Dune", Author: "Frank Herbert"},
	}
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestBorrow_Success() {
	req := dto.BorrowBookRequest{Identity: aliceIdentity()}
	suite.mockService.On("Borrow", mock.Anything, int64(42), req).Return(openRecord(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/books/42/borrow", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.BorrowResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Book 'Dune' borrowed successfully", body.Message)
	suite.Equal(int64(7), body.Record.BorrowID)
	suite.Equal("2024-03-01", body.Record.BorrowDate)
	suite.Equal("2024-03-31", body.Record.DueDate)
	suite.Nil(body.Record.ReturnedDate)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestBorrow_Conflicts() {
	cases := []struct {
		err    error
		reason string
	}{
		{apperrors.ErrAlreadyBorrowed, "already_borrowed"},
		{apperrors.ErrNotAvailable, "not_available"},
	}
	for _, tc := range cases {
		suite.Run(tc.reason, func() {
			suite.SetupTest()
			req := dto.BorrowBookRequest{Identity: aliceIdentity()}
			suite.mockService.On("Borrow", mock.Anything, int64(42), req).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/books/42/borrow", req)

			suite.Equal(http.StatusConflict, w.Code)
			body := suite.decodeError(w)
			suite.Equal(tc.reason, body.Reason)
			suite.Equal(apperrors.UserMessage(tc.err), body.Error)
		})
	}
}

func (suite *LedgerHandlerTestSuite) TestBorrow_NotFound() {
	req := dto.BorrowBookRequest{Identity: aliceIdentity()}
	suite.mockService.On("Borrow", mock.Anything, int64(99), req).
		Return(nil, apperrors.NewNotFoundError("book 99 not found")).Once()

	w := suite.do(http.MethodPost, "/api/v1/books/99/borrow", req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("book 99 not found", suite.decodeError(w).Error)
}

func (suite *LedgerHandlerTestSuite) TestBorrow_InvalidInput() {
	w := suite.do(http.MethodPost, "/api/v1/books/abc/borrow", dto.BorrowBookRequest{Identity: aliceIdentity()})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("book_id must be an integer and must be greater than 0", suite.decodeError(w).Error)

	w = suite.do(http.MethodPost, "/api/v1/books/42/borrow", map[string]any{
		"user_id":  1,
		"username": "1alice",
		"email":    "not-an-email",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Contains(body.Details, "username")
	suite.Contains(body.Details, "email")

	w = suite.do(http.MethodPost, "/api/v1/books/42/borrow", map[string]any{"user_id": "one"})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockService.AssertNotCalled(suite.T(), "Borrow")
}

func (suite *LedgerHandlerTestSuite) TestBorrow_RequiresJSONContentType() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/books/42/borrow", bytes.NewBufferString("user_id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("librarian"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Borrow")
}

func (suite *LedgerHandlerTestSuite) TestBorrow_RequiresToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/books/42/borrow", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestReturn_Success() {
	damage := true
	req := dto.ReturnBookRequest{Identity: aliceIdentity(), Damage: &damage}
	record := openRecord()
	record.Close(dueDate.AddDate(0, 0, 3), domain.ReturnDetail{
		DamageReported: true,
		DamageFine:     decimal.NewFromInt(10),
		OverdueFine:    decimal.NewFromInt(3),
		TotalFine:      decimal.NewFromInt(13),
	})
	suite.mockService.On("Return", mock.Anything, int64(42), req).Return(record, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/books/42/return", req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ReturnResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Book 'Dune' returned successfully", body.Message)
	suite.Require().NotNil(body.Record.ReturnedDate)
	suite.Equal("2024-04-03", *body.Record.ReturnedDate)
	suite.Require().NotNil(body.Record.TotalFine)
	suite.True(decimal.NewFromInt(13).Equal(*body.Record.TotalFine))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestReturn_DamageRequired() {
	w := suite.do(http.MethodPost, "/api/v1/books/42/return", dto.ReturnBookRequest{Identity: aliceIdentity()})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w).Details, "damage")
	suite.mockService.AssertNotCalled(suite.T(), "Return")
}

func (suite *LedgerHandlerTestSuite) TestReturn_AlreadyReturned() {
	damage := false
	req := dto.ReturnBookRequest{Identity: aliceIdentity(), Damage: &damage}
	suite.mockService.On("Return", mock.Anything, int64(42), req).Return(nil, apperrors.ErrAlreadyReturned).Once()

	w := suite.do(http.MethodPost, "/api/v1/books/42/return", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("already_returned", suite.decodeError(w).Reason)
}

func (suite *LedgerHandlerTestSuite) TestReturn_IntegrityViolationIsOpaque() {
	damage := false
	req := dto.ReturnBookRequest{Identity: aliceIdentity(), Damage: &damage}
	suite.mockService.On("Return", mock.Anything, int64(42), req).
		Return(nil, fmt.Errorf("increment book 42: %w", apperrors.ErrIntegrityViolation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/books/42/return", req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("internal server error", suite.decodeError(w).Error)
}

func (suite *LedgerHandlerTestSuite) TestListBorrows_PassesStatusFiltersAndPage() {
	page := &pagination.Page[domain.BorrowRecord]{
		Items:  []domain.BorrowRecord{*openRecord()},
		Total:  11,
		Params: pagination.Params{Page: 2, PerPage: 10},
	}
	suite.mockService.On("ListBorrowRecords", mock.Anything, domain.BorrowStatusOpen, int64(0),
		mock.MatchedBy(func(f url.Values) bool { return f.Get("user_id") == "1" }),
		pagination.Params{Page: 2, PerPage: 10},
	).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/borrows/unreturned?user_id=1&page=2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListBorrowRecordsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Records, 1)
	suite.Equal(11, body.TotalResult)
	suite.Equal(2, body.Page)
	suite.Equal(2, body.TotalPages)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListBookReturns_PassesPathBookSeparately() {
	empty := &pagination.Page[domain.BorrowRecord]{Items: []domain.BorrowRecord{}, Params: pagination.NewParams(0, 0)}
	suite.mockService.On("ListBorrowRecords", mock.Anything, domain.BorrowStatusClosed, int64(42),
		mock.MatchedBy(func(f url.Values) bool { return f.Get("book_id") == "" }),
		pagination.NewParams(0, 0),
	).Return(empty, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/books/42/returns", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListBorrowRecordsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Empty(body.Records)
	suite.Equal(0, body.TotalResult)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListBookBorrows_InvalidPathBook() {
	w := suite.do(http.MethodGet, "/api/v1/books/0/borrows", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListBorrowRecords")
}

func (suite *LedgerHandlerTestSuite) TestListBorrows_InvalidPage() {
	w := suite.do(http.MethodGet, "/api/v1/borrows?page=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("page and per_page parameters must be positive integers", suite.decodeError(w).Error)

	w = suite.do(http.MethodGet, "/api/v1/borrows?per_page=ten", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/borrows?per_page=101", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("per_page must not exceed 100", suite.decodeError(w).Error)

	w = suite.do(http.MethodGet, "/api/v1/borrows?page=9223372036854775807", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("page is out of range", suite.decodeError(w).Error)

	suite.mockService.AssertNotCalled(suite.T(), "ListBorrowRecords")
}

func (suite *LedgerHandlerTestSuite) TestListBorrows_FilterErrorsAndEmpty() {
	suite.mockService.On("ListBorrowRecords", mock.Anything, domain.BorrowStatusAll, int64(0),
		mock.MatchedBy(func(f url.Values) bool { return f.Get("borrow_date") == "01-03-2024" }),
		mock.Anything,
	).Return(nil, &filtering.FieldError{Field: "borrow_date", Message: "borrow_date must be in YYYY-MM-DD format"}).Once()
	suite.mockService.On("ListBorrowRecords", mock.Anything, domain.BorrowStatusAll, int64(0),
		mock.MatchedBy(func(f url.Values) bool { return f.Get("title") == "zzz" }),
		mock.Anything,
	).Return(nil, apperrors.NewNotFoundError("no borrow records found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/borrows?borrow_date=01-03-2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("borrow_date must be in YYYY-MM-DD format", suite.decodeError(w).Details["borrow_date"])

	w = suite.do(http.MethodGet, "/api/v1/borrows?title=zzz", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("no borrow records found", suite.decodeError(w).Error)
}

func (suite *LedgerHandlerTestSuite) TestAddToReadingList() {
	req := dto.AddReadingListRequest{BookID: 42, Username: "alice01", Email: "alice@example.com"}
	entry := &domain.ReadingListEntry{
		UserID:    1,
		BookID:    42,
		CreatedAt: borrowDate,
		Book:      domain.BookSummary{Title: "Dune"},
	}
	suite.mockService.On("AddToReadingList", mock.Anything, int64(1), req).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/users/1/reading-list", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.AddReadingListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Book 'Dune' added to reading list", body.Message)
	suite.Equal("2024-03-01", body.Entry.AddedOn)
}

func (suite *LedgerHandlerTestSuite) TestAddToReadingList_MustReturnFirst() {
	req := dto.AddReadingListRequest{BookID: 42, Username: "alice01", Email: "alice@example.com"}
	suite.mockService.On("AddToReadingList", mock.Anything, int64(1), req).Return(nil, apperrors.ErrMustReturnFirst).Once()

	w := suite.do(http.MethodPost, "/api/v1/users/1/reading-list", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("must_return_first", suite.decodeError(w).Reason)
}

func (suite *LedgerHandlerTestSuite) TestRemoveFromReadingList() {
	req := dto.RemoveReadingListRequest{Username: "alice01", Email: "alice@example.com"}
	book := &domain.Book{BookID: 42, BookSummary: domain.BookSummary{Title: "Dune"}, TotalCopies: 2, AvailableCopies: 2}
	suite.mockService.On("RemoveFromReadingList", mock.Anything, int64(1), int64(42), req).Return(book, nil).Once()
	suite.mockService.On("RemoveFromReadingList", mock.Anything, int64(1), int64(43), req).
		Return(nil, apperrors.NewNotFoundError("book 43 is not in the reading list")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/users/1/reading-list/42", req)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.RemoveReadingListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(42), body.BookID)
	suite.Equal("Book 'Dune' removed from reading list", body.Message)

	w = suite.do(http.MethodDelete, "/api/v1/users/1/reading-list/43", req)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListReadingList() {
	page := &pagination.Page[domain.ReadingListEntry]{
		Items:  []domain.ReadingListEntry{{UserID: 1, BookID: 42, CreatedAt: borrowDate, Book: domain.BookSummary{Title: "Dune"}}},
		Total:  1,
		Params: pagination.NewParams(0, 0),
	}
	suite.mockService.On("ListReadingList", mock.Anything, int64(1), mock.Anything, pagination.NewParams(0, 0)).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/1/reading-list", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListReadingListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.ReadList, 1)
	suite.Equal("Dune", body.ReadList[0].Title)
}

func (suite *LedgerHandlerTestSuite) TestUnknownRouteAndHealth() {
	w := suite.do(http.MethodGet, "/api/v1/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("route not found", suite.decodeError(w).Error)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
