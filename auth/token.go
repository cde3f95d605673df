package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-ordering-api/apperror"
	"food-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID    uint            `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues, verifies and revokes bearer credentials.
type Authenticator struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration, revoker Revoker) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, revoker: revoker, now: time.Now}
}

// Issue creates a signed JWT for p and returns it with its expiry.
func (a *Authenticator) Issue(p Principal) (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)
	claims := Claims{
		UserID: p.ID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

func (a *Authenticator) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authenticate verifies the credential and returns its principal. Revoked
// credentials fail even before their expiry.
func (a *Authenticator) Authenticate(ctx context.Context, tokenStr string) (*Principal, error) {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return nil, apperror.Auth("invalid or expired token")
	}
	revoked, err := a.revoker.IsRevoked(ctx, tokenStr)
	if err != nil {
		return nil, apperror.Store("check token revocation", err)
	}
	if revoked {
		return nil, apperror.Auth("token has been revoked")
	}
	return &Principal{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// Revoke invalidates the exact credential until it would have expired anyway.
func (a *Authenticator) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return apperror.Auth("invalid or expired token")
	}
	if err := a.revoker.Revoke(ctx, tokenStr, claims.ExpiresAt.Time); err != nil {
		return apperror.Store("revoke token", err)
	}
	return nil
}
