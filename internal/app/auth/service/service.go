package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/credohq/auth-service/internal/adapters/transport/http/dto"
	"github.com/credohq/auth-service/internal/app/auth/credentials"
	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"github.com/credohq/auth-service/internal/domain/auth/model"
	"github.com/credohq/auth-service/internal/domain/auth/repo"
	"github.com/credohq/auth-service/internal/domain/auth/token"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	Register(ctx context.Context, d dto.RegisterDTO) (model.TokenPair, error)
	Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

type authService struct {
	store      repo.Store
	signer     token.Signer
	verifier   *credentials.Verifier
	v          *validator.Validate
	sessionTTL time.Duration
}

// New wires the orchestrator. sessionTTL is the refresh-session validity
// window and must match the signer's refresh TTL.
func New(
	store repo.Store,
	signer token.Signer,
	verifier *credentials.Verifier,
	v *validator.Validate,
	sessionTTL time.Duration,
) Service {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &authService{
		store: store, signer: signer, verifier: verifier, v: v,
		sessionTTL: sessionTTL,
	}
}

func (a *authService) Register(ctx context.Context, d dto.RegisterDTO) (model.TokenPair, error) {
	d.Normalize()
	if err := a.validate(d); err != nil {
		return model.TokenPair{}, err
	}

	passwordHash, err := a.verifier.Hash(d.Password)
	if err != nil {
		return model.TokenPair{}, err
	}

	// User, session and tokens stand or fall together: a failure anywhere
	// in the sequence rolls back both inserts.
	var pair model.TokenPair
	err = a.store.Transaction(ctx, func(tx repo.Store) error {
		_, err := tx.Users().GetByEmail(ctx, d.Email)
		if err == nil {
			return customErrors.NewConflict("user with same email already exists")
		}
		if !customErrors.IsNotFound(err) {
			return err
		}

		user, err := tx.Users().Create(ctx, model.User{
			FirstName:    d.FirstName,
			LastName:     d.LastName,
			Email:        d.Email,
			PasswordHash: passwordHash,
			// Role is forced regardless of client input.
			Role: model.RoleCustomer,
		})
		if err != nil {
			return err
		}

		session, err := tx.Sessions().Create(ctx, model.RefreshSession{
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(a.sessionTTL),
		})
		if err != nil {
			return err
		}

		pair, err = a.issueTokens(user, session.ID)
		return err
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	return pair, nil
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, error) {
	d.Normalize()
	if err := a.validate(d); err != nil {
		return model.TokenPair{}, err
	}

	user, err := a.store.Users().GetByEmail(ctx, d.Email)
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrUnauthorized
	case err != nil:
		return model.TokenPair{}, err
	}

	if !a.verifier.Verify(d.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrUnauthorized
	}

	session, err := a.store.Sessions().Create(ctx, model.RefreshSession{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(a.sessionTTL),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	return a.issueTokens(user, session.ID)
}

// Refresh re-issues an access token against a live refresh session. The
// presented refresh token and its session row are left untouched: there is
// no rotation yet, revocation hooks exist on the session repo.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := a.signer.ValidateRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	sessionID, err := strconv.ParseUint(claims.ID, 10, 64)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	session, err := a.store.Sessions().FindByID(ctx, sessionID)
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.store.Users().GetByID(ctx, session.UserID)
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, err
	}

	accessToken, atExp, err := a.signer.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken: accessToken,
		AccessTTL:   time.Until(atExp),
		UserID:      user.ID,
		SessionID:   session.ID,
	}, nil
}

func (a *authService) issueTokens(user model.User, sessionID uint64) (model.TokenPair, error) {
	accessToken, atExp, err := a.signer.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}
	refreshToken, rtExp, err := a.signer.GenerateRefreshToken(user.ID, user.Role, sessionID)
	if err != nil {
		return model.TokenPair{}, err
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
		SessionID:    sessionID,
	}, nil
}

func (a *authService) validate(d interface{}) error {
	err := a.v.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return customErrors.WrapInternal(err, "validate")
	}

	fields := make([]customErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, customErrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return customErrors.NewValidation(fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "email must be a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
