// Package auth issues and verifies the HS256 session tokens handed to
// clients after signup or login.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the id of the user the token
// was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService signs and verifies session tokens with a fixed secret.
// The secret is supplied once at construction and never changes.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService returns a service signing with secretKey. Tokens expire
// after ttl; a zero ttl issues tokens without an exp claim.
func NewTokenService(secretKey []byte, ttl time.Duration) *TokenService {
	key := make([]byte, len(secretKey))
	copy(key, secretKey)
	return &TokenService{secretKey: key, ttl: ttl, now: time.Now}
}

// Issue returns a signed token naming userID.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("issue token: %w", common.ErrorValidation)
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks a token, with or without a "Bearer " prefix, and returns
// the user id it names. Expired tokens fail with common.ErrTokenExpired;
// every other failure is common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	tokenString = StripBearer(tokenString)
	if tokenString == "" {
		return "", common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// StripBearer removes surrounding whitespace and an optional "Bearer "
// scheme (any case) from a credential.
func StripBearer(credential string) string {
	credential = strings.TrimSpace(credential)
	scheme, rest, found := strings.Cut(credential, " ")
	if found && strings.EqualFold(scheme, strings.TrimSpace(common.BearerPrefix)) {
		return strings.TrimSpace(rest)
	}
	return credential
}
