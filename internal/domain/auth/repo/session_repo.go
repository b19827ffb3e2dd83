package repo

import (
	"context"

	"github.com/credohq/auth-service/internal/domain/auth/model"
)

type RefreshSessionRepo interface {
	// Create inserts a session row and returns it with the generated id.
	// Concurrent logins by the same user create independent rows.
	Create(ctx context.Context, s model.RefreshSession) (model.RefreshSession, error)

	// FindByID returns the session with the given id or a not-found error.
	FindByID(ctx context.Context, id uint64) (model.RefreshSession, error)

	// DeleteByID removes one session row. Revocation hook; nothing calls it
	// on the login/register paths yet.
	DeleteByID(ctx context.Context, id uint64) error
}
