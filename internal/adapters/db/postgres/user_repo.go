package postgres

import (
	"context"
	"errors"

	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"github.com/credohq/auth-service/internal/domain/auth/model"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	res := r.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isDuplicate(err) {
			return model.User{}, customErrors.NewConflict("user with same email already exists")
		}
		return model.User{}, customErrors.WrapStorage(err, "create user")
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapStorage(err, "get user by email")
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	// Password hash is excluded from reads that don't verify credentials.
	res := r.db.WithContext(ctx).Omit("password").Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapStorage(err, "get user by id")
	}
	return u, nil
}

// isDuplicate recognises a unique-constraint violation either as a raw
// postgres SQLSTATE or as gorm's translated sentinel (used by the sqlite
// test database).
func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
