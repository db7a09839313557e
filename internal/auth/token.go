// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the fixed session token validity window. There is no
// refresh mechanism; expired sessions require a new login.
const TokenLifetime = 24 * time.Hour

// ErrInvalidToken is returned when a token is malformed, has a bad
// signature, or has expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the session token claims. Exactly three identity fields are
// embedded alongside the registered expiry.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed session token for the given identity,
// expiring TokenLifetime from now.
func IssueToken(userID, email, role string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	})

	return token.SignedString(secret)
}

// VerifyToken parses and validates a session token, returning its claims.
// Any parse, signature, or expiry failure is reported as ErrInvalidToken.
func VerifyToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
