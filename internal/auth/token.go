package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 2 * time.Hour

// ErrInvalidToken covers bad signature, wrong algorithm, expiry, and missing
// claims alike; callers get one answer for all of them.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity a verified token asserts.
type Claims struct {
	OwnerID int64
	Phone   string
}

// Tokens issues and verifies stateless HS256 bearer credentials. There is no
// session table: an issued token stays valid until its embedded expiry, even
// if the account changes in the meantime.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens returns a Tokens signer/verifier with the given secret and TTL.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the owner identity, expiring ttl from now.
func (t *Tokens) Issue(ownerID int64, phone string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": ownerID,
		"phone":   phone,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and extracts the identity claims.
// A structurally valid token without user_id and phone is still rejected.
func (t *Tokens) Validate(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	id, ok := mc["user_id"].(float64) // JSON numbers decode as float64
	if !ok || id <= 0 {
		return Claims{}, ErrInvalidToken
	}
	phone, ok := mc["phone"].(string)
	if !ok || phone == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{OwnerID: int64(id), Phone: phone}, nil
}
