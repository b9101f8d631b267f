package utils // package utils provides helpers for signing the flash cookie

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// flashClaims carries pending flash messages.  The token is short lived so
// a stale cookie never resurfaces old messages.
type flashClaims struct {
    Messages []string `json:"msg"`
    jwt.RegisteredClaims
}

// NewFlashToken builds and signs an HS256 JWT holding the given messages.
// The token expires after ttl.
func NewFlashToken(secret string, messages []string, ttl time.Duration) (string, error) {
    if secret == "" {
        return "", errors.New("flash secret is empty")
    }
    now := time.Now().UTC()
    claims := flashClaims{
        Messages: messages,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// ParseFlashToken verifies a token produced by NewFlashToken and returns its
// messages.  Tokens signed with another method or key, or expired, are
// rejected.
func ParseFlashToken(secret, raw string) ([]string, error) {
    var claims flashClaims
    _, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        // Type assert the signing method to HMAC; reject others.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil {
        return nil, err
    }
    return claims.Messages, nil
}
