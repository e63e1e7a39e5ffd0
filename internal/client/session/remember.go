package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/storage"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

const tokenIssuer = "profilekeeper"

// Claims of a remember-me token. The subject is the account email.
type Claims struct {
	jwt.RegisteredClaims
}

// Remember issues and checks remember-me tokens kept in durable storage.
type Remember struct {
	repo   storage.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewRemember(repo storage.Repository, secret []byte, ttl time.Duration) *Remember {
	return &Remember{repo: repo, secret: secret, ttl: ttl, now: time.Now}
}

// GenerateToken signs a token for email valid for ttl from now.
func GenerateToken(email string, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the email.
func ParseToken(tokenString string, secret []byte, now time.Time) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

// Issue stores a fresh token for email.
func (r *Remember) Issue(ctx context.Context, email string) error {
	tok, err := GenerateToken(email, r.secret, r.now(), r.ttl)
	if err != nil {
		return fmt.Errorf("sign remember token: %w", err)
	}
	if err := r.repo.Set(ctx, common.RememberTokenKey, []byte(tok)); err != nil {
		return fmt.Errorf("store remember token: %w", err)
	}
	return nil
}

// Recall returns the email of a stored, still valid token. Without a token
// it returns common.ErrNotFound.
func (r *Remember) Recall(ctx context.Context) (string, error) {
	v, err := r.repo.Get(ctx, common.RememberTokenKey)
	if err != nil {
		return "", fmt.Errorf("load remember token: %w", err)
	}
	if len(v) == 0 {
		return "", common.ErrNotFound
	}
	return ParseToken(string(v), r.secret, r.now())
}

// Forget removes the stored token.
func (r *Remember) Forget(ctx context.Context) error {
	if err := r.repo.Delete(ctx, common.RememberTokenKey); err != nil {
		return fmt.Errorf("delete remember token: %w", err)
	}
	return nil
}
