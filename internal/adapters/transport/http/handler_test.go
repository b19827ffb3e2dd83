package http_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	transport "github.com/credohq/auth-service/internal/adapters/transport/http"
	"github.com/credohq/auth-service/internal/adapters/transport/http/dto"
	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"github.com/credohq/auth-service/internal/domain/auth/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type svcStub struct {
	registerErr error
	loginErr    error
	refreshErr  error
	refreshGot  string
}

func (s *svcStub) pair() model.TokenPair {
	return model.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		AccessTTL:    time.Hour,
		RefreshTTL:   365 * 24 * time.Hour,
		UserID:       1,
		SessionID:    1,
	}
}

func (s *svcStub) Register(_ context.Context, _ dto.RegisterDTO) (model.TokenPair, error) {
	if s.registerErr != nil {
		return model.TokenPair{}, s.registerErr
	}
	return s.pair(), nil
}

func (s *svcStub) Login(_ context.Context, _ dto.LoginDTO) (model.TokenPair, error) {
	if s.loginErr != nil {
		return model.TokenPair{}, s.loginErr
	}
	return s.pair(), nil
}

func (s *svcStub) Refresh(_ context.Context, raw string) (model.TokenPair, error) {
	s.refreshGot = raw
	if s.refreshErr != nil {
		return model.TokenPair{}, s.refreshErr
	}
	p := s.pair()
	p.RefreshToken = "" // no rotation
	return p, nil
}

func newRouter(svc *svcStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	transport.NewHandler(svc, zap.NewNop(), "example.com", false).RegisterRoutes(r)
	return r
}

func do(r *gin.Engine, method, path, body string, cookies ...*nethttp.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *nethttp.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister_Created(t *testing.T) {
	r := newRouter(&svcStub{})

	w := do(r, nethttp.MethodPost, "/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@b.com","password":"secret123"}`)
	require.Equal(t, nethttp.StatusCreated, w.Code)

	var body map[string]uint64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint64(1), body["id"])

	access := cookieByName(t, w, "accessToken")
	require.NotNil(t, access)
	require.Equal(t, "access-token", access.Value)
	require.Equal(t, 3600, access.MaxAge)
	require.True(t, access.HttpOnly)
	require.Equal(t, nethttp.SameSiteStrictMode, access.SameSite)
	require.Equal(t, "example.com", access.Domain)

	refresh := cookieByName(t, w, "refreshToken")
	require.NotNil(t, refresh)
	require.Equal(t, "refresh-token", refresh.Value)
	require.Equal(t, 365*24*3600, refresh.MaxAge)
	require.True(t, refresh.HttpOnly)
	require.Equal(t, nethttp.SameSiteStrictMode, refresh.SameSite)
}

func TestRegister_ValidationErrorBody(t *testing.T) {
	r := newRouter(&svcStub{registerErr: customErrors.NewValidation(
		customErrors.FieldError{Field: "password", Message: "password must be at least 8 characters"},
	)})

	w := do(r, nethttp.MethodPost, "/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@b.com","password":"short"}`)
	require.Equal(t, nethttp.StatusBadRequest, w.Code)

	var body struct {
		Errors []struct {
			Type     string `json:"type"`
			Message  string `json:"message"`
			Path     string `json:"path"`
			Location string `json:"location"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	require.Equal(t, "ValidationError", body.Errors[0].Type)
	require.Equal(t, "password", body.Errors[0].Path)
	require.Equal(t, "body", body.Errors[0].Location)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newRouter(&svcStub{registerErr: customErrors.NewConflict("user with same email already exists")})

	w := do(r, nethttp.MethodPost, "/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@b.com","password":"secret123"}`)
	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "ConflictError")
}

func TestRegister_MalformedJSON(t *testing.T) {
	r := newRouter(&svcStub{})

	w := do(r, nethttp.MethodPost, "/auth/register", `{"firstName":`)
	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "errors")
}

func TestRegister_StorageErrorIsGeneric(t *testing.T) {
	r := newRouter(&svcStub{registerErr: customErrors.WrapStorage(errors.New("pq: down"), "create user")})

	w := do(r, nethttp.MethodPost, "/auth/register",
		`{"firstName":"A","lastName":"B","email":"a@b.com","password":"secret123"}`)
	require.Equal(t, nethttp.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "pq: down")
}

func TestLogin_OK(t *testing.T) {
	r := newRouter(&svcStub{})

	w := do(r, nethttp.MethodPost, "/auth/login", `{"email":"a@b.com","password":"secret123"}`)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var body map[string]uint64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint64(1), body["id"])
	require.NotNil(t, cookieByName(t, w, "accessToken"))
	require.NotNil(t, cookieByName(t, w, "refreshToken"))
}

func TestLogin_Unauthorized(t *testing.T) {
	r := newRouter(&svcStub{loginErr: customErrors.ErrUnauthorized})

	w := do(r, nethttp.MethodPost, "/auth/login", `{"email":"a@b.com","password":"secret999"}`)
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "UnauthorizedError")
	require.Nil(t, cookieByName(t, w, "accessToken"))
}

func TestRefresh_OK(t *testing.T) {
	svc := &svcStub{}
	r := newRouter(svc)

	w := do(r, nethttp.MethodPost, "/auth/refresh", "",
		&nethttp.Cookie{Name: "refreshToken", Value: "the-refresh-token"})
	require.Equal(t, nethttp.StatusOK, w.Code)
	require.Equal(t, "the-refresh-token", svc.refreshGot)

	require.NotNil(t, cookieByName(t, w, "accessToken"))
	require.Nil(t, cookieByName(t, w, "refreshToken"), "refresh cookie is not rotated")
}

func TestRefresh_MissingCookie(t *testing.T) {
	r := newRouter(&svcStub{})

	w := do(r, nethttp.MethodPost, "/auth/refresh", "")
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestRefresh_InvalidToken(t *testing.T) {
	r := newRouter(&svcStub{refreshErr: customErrors.ErrInvalidToken})

	w := do(r, nethttp.MethodPost, "/auth/refresh", "",
		&nethttp.Cookie{Name: "refreshToken", Value: "expired"})
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)
}
