package mapping

import (
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToDomainBorrowRecord converts a model BorrowRecord to a domain BorrowRecord.
// The return detail is only populated for closed records.
func ToDomainBorrowRecord(m models.BorrowRecord) domain.BorrowRecord {
	d := domain.BorrowRecord{
		BorrowID:     m.BorrowID,
		BookID:       m.BookID,
		UserID:       m.UserID,
		BorrowDate:   m.BorrowDate,
		DueDate:      m.DueDate,
		ReturnedDate: m.ReturnedDate,
		Book:         ToDomainBookSummary(m.BookColumns),
	}
	if m.ReturnedDate != nil {
		d.Return = &domain.ReturnDetail{
			DamageReported: m.DamageReported != nil && *m.DamageReported,
			DamageFine:      orZero(m.DamageFine),
			OverdueFine:     orZero(m.OverdueFine),
			TotalFine:       orZero(m.TotalFine),
		}
	}
	return d
}

// ToDomainBorrowRecordSlice converts a slice of model BorrowRecords to domain BorrowRecords
func ToDomainBorrowRecordSlice(ms []models.BorrowRecord) []domain.BorrowRecord {
	ds := make([]domain.BorrowRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBorrowRecord(m)
	}
	return ds
}

func orZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
