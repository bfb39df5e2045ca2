package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", 2*time.Hour)

	raw, err := tokens.Issue(42, "13800000001", time.Now().UTC())
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := tokens.Validate(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.OwnerID)
	assert.Equal(t, "13800000001", claims.Phone)
}

func TestTokensExpired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)

	raw, err := tokens.Issue(42, "13800000001", time.Now().UTC().Add(-time.Hour))
	assert.NoError(t, err)

	_, err = tokens.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Issue(42, "13800000001", time.Now().UTC())
	assert.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensMissingClaims(t *testing.T) {
	secret := "test-secret"
	tokens := NewTokens(secret, time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	cases := map[string]jwt.MapClaims{
		"no user_id": {"phone": "13800000001", "exp": exp},
		"no phone":   {"user_id": 42, "exp": exp},
		"no exp":     {"user_id": 42, "phone": "13800000001"},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			assert.NoError(t, err)
			_, err = tokens.Validate(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokensGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	_, err := tokens.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
