// Package auth verifies the bearer tokens issued by the external auth
// service. Tokens are HS256-signed and name the user in a "user_id" or
// "sub" claim.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingKey     = errors.New("jwt signing key is empty")
	ErrInvalidSubject = errors.New("invalid subject claim")
)

// Tokens signs and validates bearer tokens with a shared HMAC key.
type Tokens struct {
	key []byte
	now func() time.Time
}

func NewTokens(signingKey string) (*Tokens, error) {
	if signingKey == "" {
		return nil, ErrMissingKey
	}
	return &Tokens{key: []byte(signingKey), now: time.Now}, nil
}

// GenerateToken creates a token for userID that expires after ttl. The
// auth service issues the tokens clients use; this exists for tooling and
// tests.
func (t *Tokens) GenerateToken(userID int64, ttl time.Duration) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": "access",
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// ValidateToken parses tokenString and returns the user id it names.
func (t *Tokens) ValidateToken(tokenString string) (int64, error) {
	// 1. Parse and verify signature, algorithm and expiry
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}

	// 2. Refresh tokens are not accepted as credentials
	if typ, ok := claims["token_type"].(string); ok && typ != "access" {
		return 0, fmt.Errorf("unexpected token type %q", typ)
	}

	// 3. Subject
	raw, ok := claims["user_id"]
	if !ok {
		raw, ok = claims["sub"]
	}
	if !ok {
		return 0, ErrInvalidSubject
	}
	return subjectID(raw)
}

// subjectID accepts the numeric and string forms a user id claim takes.
func subjectID(v any) (int64, error) {
	switch id := v.(type) {
	case float64:
		if id != float64(int64(id)) || id <= 0 {
			return 0, ErrInvalidSubject
		}
		return int64(id), nil
	case json.Number:
		n, err := id.Int64()
		if err != nil || n <= 0 {
			return 0, ErrInvalidSubject
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil || n <= 0 {
			return 0, ErrInvalidSubject
		}
		return n, nil
	}
	return 0, ErrInvalidSubject
}
