package http

import (
	"net/http"

	"github.com/credohq/auth-service/internal/adapters/transport/http/dto"
	"github.com/credohq/auth-service/internal/app/auth/service"
	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"github.com/credohq/auth-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type Handler struct {
	svc          service.Service
	log          *zap.Logger
	cookieDomain string
	cookieSecure bool
}

func NewHandler(svc service.Service, log *zap.Logger, cookieDomain string, cookieSecure bool) *Handler {
	return &Handler{svc: svc, log: log, cookieDomain: cookieDomain, cookieSecure: cookieSecure}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/auth")
	grp.POST("/register", h.Register)
	grp.POST("/login", h.Login)
	grp.POST("/refresh", h.Refresh)
}

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBadBody(c, err)
		return
	}

	pair, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusCreated, gin.H{"id": pair.UserID})
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBadBody(c, err)
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"id": pair.UserID})
}

// Refresh reads the refresh token from its cookie and re-issues an access
// token cookie. The refresh cookie itself is not rotated.
func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(refreshTokenCookie)
	if err != nil || raw == "" {
		h.respondError(c, customErrors.ErrInvalidToken)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"id": pair.UserID})
}

func (h *Handler) setTokenCookies(c *gin.Context, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		accessTokenCookie,
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		h.cookieDomain,
		h.cookieSecure,
		true, // httpOnly
	)
	if pair.RefreshToken != "" {
		c.SetCookie(
			refreshTokenCookie,
			pair.RefreshToken,
			int(pair.RefreshTTL.Seconds()),
			"/",
			h.cookieDomain,
			h.cookieSecure,
			true,
		)
	}
}

type apiError struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

func errorBody(typ, msg string) gin.H {
	return gin.H{"errors": []apiError{{Type: typ, Message: msg}}}
}

func (h *Handler) respondBadBody(c *gin.Context, err error) {
	h.log.Debug("malformed request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, errorBody("ValidationError", "invalid request body"))
}

// respondError maps the error taxonomy onto HTTP statuses. Expected cases
// render their own message; internal kinds are logged and rendered with a
// generic one.
func (h *Handler) respondError(c *gin.Context, err error) {
	if ve, ok := customErrors.AsValidation(err); ok {
		items := make([]apiError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			items = append(items, apiError{
				Type:     "ValidationError",
				Message:  f.Message,
				Path:     f.Field,
				Location: "body",
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": items})
		return
	}

	switch {
	case customErrors.IsConflict(err):
		// Duplicate email answers 400, matching the register contract.
		c.JSON(http.StatusBadRequest, errorBody("ConflictError", err.Error()))
	case customErrors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, errorBody("UnauthorizedError", "email or password is wrong"))
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, errorBody("UnauthorizedError", "invalid refresh token"))
	case customErrors.IsConfiguration(err):
		h.log.Error("configuration error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("ConfigurationError", "internal server error"))
	case customErrors.IsStorage(err):
		h.log.Error("storage error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("StorageError", "internal server error"))
	default:
		h.log.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("InternalServerError", "internal server error"))
	}
}
