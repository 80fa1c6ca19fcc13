package tokens

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueThenDecode_ReturnsSubject(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-jwt-secret"))

	raw, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	id, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestDecode_ExpiredToken(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	codec := NewCodec(secret)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(7),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewCodec([]byte("one-secret"))
	verifier := NewCodec([]byte("another-secret"))

	raw, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_Garbage(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-jwt-secret"))

	_, err := codec.Decode("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_NonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	codec := NewCodec(secret)

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_ThirtyMinuteLifetime(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	codec := NewCodec(secret)

	raw, err := codec.Issue(1)
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) { return secret, nil })
	require.NoError(t, err)

	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
	assert.NotEmpty(t, claims.ID)
}
