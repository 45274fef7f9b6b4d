package models

import "time"

// ReadingListEntry represents a row of reading_list_entries joined with its book.
type ReadingListEntry struct {
	UserID    int64     `db:"user_id"`
	BookID    int64     `db:"book_id"`
	CreatedAt time.Time `db:"created_at"`
	BookColumns
}
