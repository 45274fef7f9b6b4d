package domain

// BorrowStatus selects which borrow records a listing returns.
type BorrowStatus string

const (
	BorrowStatusOpen   BorrowStatus = "open"   // returned_date absent
	BorrowStatusClosed BorrowStatus = "closed" // returned_date set
	BorrowStatusAll    BorrowStatus = "all"
)

// Valid reports whether s is a known status.
func (s BorrowStatus) Valid() bool {
	switch s {
	case BorrowStatusOpen, BorrowStatusClosed, BorrowStatusAll:
		return true
	}
	return false
}

// Identity is the redundant user triple carried by lending requests.
// All three fields must match the stored user.
type Identity struct {
	UserID   int64
	Username string
	Email    string
}
