package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpiredToken means the signature checked out but the token is
	// past its expiry.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidToken covers everything else: bad signature, wrong
	// algorithm, garbage input, unparseable subject.
	ErrInvalidToken = errors.New("token is invalid")
)

const DefaultTTL = 30 * time.Minute

// Codec signs and verifies stateless access tokens. Secret is loaded
// once at startup and never rotates while the process runs.
type Codec struct {
	Secret []byte
	TTL    time.Duration
}

func NewCodec(secret []byte) *Codec {
	return &Codec{Secret: secret, TTL: DefaultTTL}
}

// Issue builds an HS256 token bound to the user id, valid from now for
// the codec's TTL. Pure computation, safe under concurrent use.
func (c *Codec) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl())),
		ID:        uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.Secret)
}

// Decode verifies signature then expiry and returns the subject id.
// Callers can tell an expired token from an invalid one.
func (c *Codec) Decode(raw string) (uint, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !tkn.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func (c *Codec) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}
