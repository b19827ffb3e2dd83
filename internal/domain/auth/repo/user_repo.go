package repo

import (
	"context"

	"github.com/credohq/auth-service/internal/domain/auth/model"
)

type UserRepo interface {
	// Create inserts the user and returns it with the generated id and
	// timestamps. A duplicate email yields a conflict error, never a raw
	// storage error.
	Create(ctx context.Context, u model.User) (model.User, error)

	// GetByEmail loads a user including the password hash (needed for
	// credential verification).
	GetByEmail(ctx context.Context, email string) (model.User, error)

	// GetByID loads a user without the password hash.
	GetByID(ctx context.Context, id uint64) (model.User, error)
}
