package postgres

import (
	"context"

	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"github.com/credohq/auth-service/internal/domain/auth/repo"
	"gorm.io/gorm"
)

// Store implements repo.Store over one gorm handle. Transaction hands fn a
// Store bound to the transaction connection, so the same repo code runs
// inside and outside a transaction.
type Store struct {
	db *gorm.DB
}

var _ repo.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() repo.UserRepo {
	return &UserRepo{db: s.db}
}

func (s *Store) Sessions() repo.RefreshSessionRepo {
	return &RefreshSessionRepo{db: s.db}
}

func (s *Store) Transaction(ctx context.Context, fn func(repo.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err == nil {
		return nil
	}
	// fn's domain errors pass through untouched; anything else came from
	// the transaction machinery itself.
	if customErrors.IsValidation(err) || customErrors.IsConflict(err) ||
		customErrors.IsUnauthorized(err) || customErrors.IsNotFound(err) ||
		customErrors.IsStorage(err) || customErrors.IsInternal(err) {
		return err
	}
	return customErrors.WrapStorage(err, "transaction")
}
