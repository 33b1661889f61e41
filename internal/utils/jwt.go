package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySubject is returned when a session token carries no "sub" claim.
var ErrEmptySubject = errors.New("empty subject in token")

// SessionClaims are the profile fields the storefront reads from a session
// token issued by the commerce backend.
type SessionClaims struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// ParseSessionClaims extracts [SessionClaims] from tokenString without
// verifying the signature. The client never holds the signing key; the token
// is verified by the backend on every authenticated request.
//
// Returns an error if the token is malformed or has no subject.
func ParseSessionClaims(tokenString string) (SessionClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return SessionClaims{}, fmt.Errorf("read subject claim: %w", err)
	}
	if sub == "" {
		return SessionClaims{}, ErrEmptySubject
	}

	result := SessionClaims{Subject: sub}
	result.Email, _ = claims["email"].(string)
	result.Name, _ = claims["name"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return SessionClaims{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp != nil {
		result.ExpiresAt = exp.Time
	}

	return result, nil
}
