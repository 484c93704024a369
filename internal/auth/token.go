// internal/auth/token.go
package auth

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Demo tokens look like JWTs but carry a constant signature. They mark a claimed expiry
// and nothing else; never use them to authorize anything.
const (
	TokenSignature  = "demo-signature"
	TokenSubject    = "demo-user"
	DefaultTokenTTL = 365 * 24 * time.Hour
)

var ErrMalformedToken = errors.New("malformed token")

func MintToken(now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.StandardClaims{
		Subject:   TokenSubject,
		ExpiresAt: now.Add(ttl).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SigningString()
	if err != nil {
		return "", err
	}
	return unsigned + "." + TokenSignature, nil
}

// TokenExpiry decodes the exp claim from the middle segment without any verification.
func TokenExpiry(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, ErrMalformedToken
	}
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, ErrMalformedToken
	}
	var claims jwt.StandardClaims
	if err := json.Unmarshal(payload, &claims); err != nil || claims.ExpiresAt == 0 {
		return time.Time{}, ErrMalformedToken
	}
	return time.Unix(claims.ExpiresAt, 0), nil
}

// TokenExpired treats undecodable tokens as expired.
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return exp.Before(now)
}
