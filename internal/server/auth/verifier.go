// Package auth implements the provider login: building the redirect URL,
// exchanging the authorization code and validating the returned ID token.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
)

// Verifier turns an authorization code into a verified Identity. It has no
// side effects; callers store the result in the session.
type Verifier struct {
	client    Client
	http      *http.Client
	validator *TokenValidator
}

// NewVerifier wires the exchange client and a JWKS-backed token validator.
// timeout bounds each outbound call. The signing keys are refreshed in the
// background until ctx is done, and an unknown kid forces a refetch.
func NewVerifier(ctx context.Context, client Client, certsURL string, timeout time.Duration, logger logging.Logger) (*Verifier, error) {
	hc := &http.Client{Timeout: timeout}

	keys, err := keyfunc.NewDefaultOverrideCtx(ctx, []string{certsURL}, keyfunc.Override{
		Client:      hc,
		HTTPTimeout: timeout,
		RefreshErrorHandlerFunc: func(u string) func(context.Context, error) {
			return func(ctx context.Context, err error) {
				logger.Warn(ctx, "signing keys refresh failed", "url", u, "error", err)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("signing keys: %w", err)
	}

	return &Verifier{
		client:    client,
		http:      hc,
		validator: NewTokenValidator(client.ID, keys),
	}, nil
}

func (v *Verifier) AuthCodeURL() string {
	return v.client.AuthCodeURL()
}

// Verify exchanges code and validates the ID token against the client ID.
// Codes are single use; callers must not retry a consumed code.
func (v *Verifier) Verify(ctx context.Context, code string) (models.Identity, error) {
	raw, err := v.client.Exchange(ctx, v.http, code)
	if err != nil {
		return models.Identity{}, err
	}

	claims, err := v.validator.Validate(ctx, raw)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{
		Email:       claims.Email,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
	}
	if id.DisplayName == "" {
		id.DisplayName = models.DefaultDisplayName
	}
	return id, nil
}
