package mapping

import (
	"github.com/SscSPs/library_ledger_app/internal/core/domain"
	"github.com/SscSPs/library_ledger_app/internal/models"
)

// ToDomainBookSummary converts the joined catalog columns to a domain BookSummary
func ToDomainBookSummary(m models.BookColumns) domain.BookSummary {
	return domain.BookSummary{
		Title:     m.Title,
		Author:    m.Author,
		Category:  m.Category,
		Publisher: m.Publisher,
		Language:  m.Language,
	}
}

// ToDomainBook converts a model Book to a domain Book
func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:          m.BookID,
		BookSummary:     ToDomainBookSummary(m.BookColumns),
		TotalCopies:     m.TotalCopies,
		AvailableCopies: m.AvailableCopies,
	}
}
