package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnDetail is attached to a borrow record when it is closed and never changes afterwards.
type ReturnDetail struct {
	DamageReported bool            `json:"damageReported"`
	DamageFine     decimal.Decimal `json:"damageFine"`
	OverdueFine    decimal.Decimal `json:"overdueFine"`
	TotalFine      decimal.Decimal `json:"totalFine"`
}

// BorrowRecord is one lending of one copy of a book to one user.
// A record is open while ReturnedDate is nil and closed once it is set.
type BorrowRecord struct {
	BorrowID     int64         `json:"borrowID"`
	BookID       int64         `json:"bookID"`
	UserID       int64         `json:"userID"`
	BorrowDate   time.Time     `json:"borrowDate"`
	DueDate      time.Time     `json:"dueDate"`
	ReturnedDate *time.Time    `json:"returnedDate,omitempty"`
	Return       *ReturnDetail `json:"return,omitempty"`
	Book         BookSummary   `json:"book"`
}

// IsOpen reports whether the copy is still checked out.
func (r BorrowRecord) IsOpen() bool {
	return r.ReturnedDate == nil
}

// Close marks the record returned at returnedAt with the assessed fines.
func (r *BorrowRecord) Close(returnedAt time.Time, detail ReturnDetail) {
	r.ReturnedDate = &returnedAt
	r.Return = &detail
}
