package repositories

import "context"

// UserReader defines the identity lookups the ledger needs.
type UserReader interface {
	// UserExists reports whether a user with the given id, username and email exists.
	UserExists(ctx context.Context, userID int64, username, email string) (bool, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
