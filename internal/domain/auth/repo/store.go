package repo

import "context"

// Store bundles the repositories over one database handle and lets the
// service run a multi-write sequence in a single transaction.
type Store interface {
	Users() UserRepo
	Sessions() RefreshSessionRepo

	// Transaction runs fn against a Store bound to one transaction. If fn
	// returns an error every write inside it is rolled back.
	Transaction(ctx context.Context, fn func(Store) error) error
}
