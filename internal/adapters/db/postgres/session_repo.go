package postgres

import (
	"context"
	"errors"

	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"github.com/credohq/auth-service/internal/domain/auth/model"
	"gorm.io/gorm"
)

type RefreshSessionRepo struct {
	db *gorm.DB
}

func NewRefreshSessionRepo(db *gorm.DB) *RefreshSessionRepo {
	return &RefreshSessionRepo{db: db}
}

func (r *RefreshSessionRepo) Create(ctx context.Context, s model.RefreshSession) (model.RefreshSession, error) {
	res := r.db.WithContext(ctx).Omit("User").Create(&s)
	if err := res.Error; err != nil {
		return model.RefreshSession{}, customErrors.WrapStorage(err, "create refresh session")
	}
	return s, nil
}

func (r *RefreshSessionRepo) FindByID(ctx context.Context, id uint64) (model.RefreshSession, error) {
	var s model.RefreshSession
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&s)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.RefreshSession{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.RefreshSession{}, customErrors.WrapStorage(err, "find refresh session")
	}
	return s, nil
}

func (r *RefreshSessionRepo) DeleteByID(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.RefreshSession{}, id)
	if err := res.Error; err != nil {
		return customErrors.WrapStorage(err, "delete refresh session")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
