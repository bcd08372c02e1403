package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Issuers accepted for provider ID tokens.
var issuers = []string{"accounts.google.com", "https://accounts.google.com"}

var errIssuer = errors.New("unexpected issuer")

// Claims is the subset of ID token claims the dashboard uses.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// keySource resolves the verification key for a parsed token header.
type keySource interface {
	KeyfuncCtx(ctx context.Context) jwt.Keyfunc
}

// TokenValidator checks ID token signature, issuer, audience and expiry.
type TokenValidator struct {
	audience string
	keys     keySource
	leeway   time.Duration
}

func NewTokenValidator(audience string, keys keySource) *TokenValidator {
	return &TokenValidator{audience: audience, keys: keys, leeway: 30 * time.Second}
}

// Validate parses raw and returns its claims. Every failure is wrapped in
// common.ErrAuthTokenInvalid.
func (v *TokenValidator) Validate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := v.parse(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthTokenInvalid, err)
	}
	return claims, nil
}

func (v *TokenValidator) parse(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(raw, claims, v.keys.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(issuers, claims.Issuer) {
		return nil, fmt.Errorf("%w: %q", errIssuer, claims.Issuer)
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	return claims, nil
}
