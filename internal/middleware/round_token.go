package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidRoundToken = errors.New("invalid round token")

// IssueRoundToken signs a token that lets its holder drive roundID.
func IssueRoundToken(secret, roundID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	exp := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"round_id": roundID,
		"iat":      time.Now().Unix(),
		"exp":      exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRoundToken validates token and returns the round it was issued for.
func ParseRoundToken(secret, token string) (string, error) {
	if secret == "" || token == "" {
		return "", ErrInvalidRoundToken
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidRoundToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidRoundToken
	}
	roundID, ok := claims["round_id"].(string)
	if !ok || roundID == "" {
		return "", ErrInvalidRoundToken
	}
	return roundID, nil
}
