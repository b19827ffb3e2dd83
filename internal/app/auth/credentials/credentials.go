package credentials

import (
	customErrors "github.com/credohq/auth-service/internal/domain/auth/errors"
	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// Verifier wraps the one-way password hashing primitive.
type Verifier struct {
	cost int
}

func New(cost int) *Verifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Verifier{cost: cost}
}

// Hash derives a salted bcrypt digest from the plaintext.
func (v *Verifier) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), v.cost)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. A malformed digest is
// treated as a mismatch, never an error.
func (v *Verifier) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
