package models

// BookColumns are the catalog columns of the books table joined into lending rows.
type BookColumns struct {
	Title     string `db:"title"`
	Author    string `db:"author"`
	Category  string `db:"category"`
	Publisher string `db:"publisher"`
	Language  string `db:"language"`
}

// Book represents a row of the books table.
type Book struct {
	BookID int64 `db:"book_id"`
	BookColumns
	TotalCopies     int `db:"total_copies"`
	AvailableCopies int `db:"available_copies"`
}
