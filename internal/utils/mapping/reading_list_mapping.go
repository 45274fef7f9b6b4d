package mapping

import (
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/models"
)

// ToDomainReadingListEntry converts a model ReadingListEntry to a domain ReadingListEntry
func ToDomainReadingListEntry(m models.ReadingListEntry) domain.ReadingListEntry {
	return domain.ReadingListEntry{
		UserID:    m.UserID,
		BookID:    m.BookID,
		CreatedAt: m.CreatedAt,
		Book:      ToDomainBookSummary(m.BookColumns),
	}
}

// ToDomainReadingListEntrySlice converts a slice of model entries to domain entries
func ToDomainReadingListEntrySlice(ms []models.ReadingListEntry) []domain.ReadingListEntry {
	ds := make([]domain.ReadingListEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReadingListEntry(m)
	}
	return ds
}
