package domain

import "time"

// ReadingListEntry records that a user keeps a previously returned book on their reading list.
type ReadingListEntry struct {
	UserID    int64       `json:"userID"`
	BookID    int64       `json:"bookID"`
	CreatedAt time.Time   `json:"createdAt"`
	Book      BookSummary `json:"book"`
}
