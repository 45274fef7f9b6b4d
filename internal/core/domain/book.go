package domain

// BookSummary holds the catalog fields joined into lending listings.
type BookSummary struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Publisher string `json:"publisher"`
	Language  string `json:"language"`
}

// Book is the catalog entry the ledger references. The ledger only ever mutates
// AvailableCopies, and 0 <= AvailableCopies <= TotalCopies must hold at all times.
type Book struct {
	BookID          int64 `json:"bookID"`
	BookSummary
	TotalCopies     int `json:"totalCopies"`
	AvailableCopies int `json:"availableCopies"`
}

// InStock reports whether at least one copy can be lent.
func (b Book) InStock() bool {
	return b.AvailableCopies > 0
}

// CountersValid reports whether the inventory counters respect their bounds.
func (b Book) CountersValid() bool {
	return b.AvailableCopies >= 0 && b.AvailableCopies <= b.TotalCopies
}
