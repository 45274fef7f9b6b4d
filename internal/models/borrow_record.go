package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BorrowRecord represents a row of borrow_records joined with its book.
// The return columns are NULL while the record is open.
type BorrowRecord struct {
	BorrowID       int64               `db:"borrow_id"`
	BookID         int64               `db:"book_id"`
	UserID         int64               `db:"user_id"`
	BorrowDate     time.Time           `db:"borrow_date"`
	DueDate        time.Time           `db:"due_date"`
	ReturnedDate   *time.Time          `db:"returned_date"`
	DamageReported *bool               `db:"damage_reported"`
	DamageFine     decimal.NullDecimal `db:"damage_fine"`
	OverdueFine    decimal.NullDecimal `db:"overdue_fine"`
	TotalFine      decimal.NullDecimal `db:"total_fine"`
	BookColumns
}
