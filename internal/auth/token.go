// Package auth issues and verifies the HS256 access tokens that back the
// API's bearer authentication, and hashes user passwords.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SibartechCompany/eWash-Backend/internal/apperrors"
)

// Claims are the registered claims carried by an access token. The subject
// is the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// CreateAccessToken signs an HS256 token for the given user id.
func CreateAccessToken(userID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", apperrors.Internal("failed to sign access token", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature and expiry and returns the subject
// user id. Any failure is an AuthenticationError.
func ParseAccessToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Authentication("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.Authentication("Could not validate credentials")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return uuid.Nil, apperrors.Authentication("Could not validate credentials")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.Authentication("Could not validate credentials")
	}
	return userID, nil
}
