package token

import (
	"crypto/rsa"
	"errors"
	"os"
	"strconv"
	"time"

	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	domainToken "github.com/credohq/auth-service/internal/domain/auth/token"
	"github.com/golang-jwt/jwt/v5"
)

// Keys is the immutable signing material and policy for both token kinds.
// It is constructed once in main and handed to NewSigner; the signer never
// reads ambient process state.
type Keys struct {
	// PrivateKeyPath points at the PEM-encoded RSA private key used for
	// access tokens. Other services verify them with the public half.
	PrivateKeyPath string
	// RefreshSecret is the symmetric secret for refresh tokens, which are
	// only ever verified by this service.
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type Signer struct {
	privateKey    *rsa.PrivateKey
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

var _ domainToken.Signer = (*Signer)(nil)

// NewSigner loads the private key once for the process lifetime. A missing
// or unparsable key is a configuration error: it signals a deployment
// problem, not a request problem.
func NewSigner(keys Keys) (*Signer, error) {
	privPem, err := os.ReadFile(keys.PrivateKeyPath)
	if err != nil {
		return nil, customErrors.WrapConfiguration(err, "read private key")
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPem)
	if err != nil {
		return nil, customErrors.WrapConfiguration(err, "parse private key")
	}
	if keys.RefreshSecret == "" {
		return nil, customErrors.WrapConfiguration(errors.New("empty refresh secret"), "refresh secret")
	}

	return &Signer{
		privateKey:    privKey,
		refreshSecret: []byte(keys.RefreshSecret),
		issuer:        keys.Issuer,
		accessTTL:     keys.AccessTTL,
		refreshTTL:    keys.RefreshTTL,
	}, nil
}

func (s *Signer) GenerateAccessToken(userID uint64, role string) (string, time.Time, error) {
	now := time.Now()

	claims := domainToken.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

// GenerateRefreshToken signs with the symmetric secret and sets jti to the
// backing session row id, so a verifier can later correlate the token with
// exactly one persisted session.
func (s *Signer) GenerateRefreshToken(userID uint64, role string, sessionID uint64) (string, time.Time, error) {
	now := time.Now()

	claims := domainToken.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			ID:        strconv.FormatUint(sessionID, 10),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (s *Signer) ValidateRefreshToken(raw string) (domainToken.RefreshClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &domainToken.RefreshClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return s.refreshSecret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !parsed.Valid {
		return domainToken.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*domainToken.RefreshClaims)
	if !ok {
		return domainToken.RefreshClaims{}, customErrors.WrapInternal(
			errors.New("claims not RefreshClaims"), "ValidateRefreshToken",
		)
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return domainToken.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

// PublicKey exposes the verification half of the access-token key pair.
func (s *Signer) PublicKey() *rsa.PublicKey {
	return &s.privateKey.PublicKey
}
