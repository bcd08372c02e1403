package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"golang.org/x/oauth2"
)

var scopes = []string{"openid", "email", "profile"}

// Client is the OAuth client registration used for the login flow.
type Client struct {
	ID          string
	Secret      string
	RedirectURI string
	AuthURL     string
	TokenURL    string
}

func (c Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ID,
		ClientSecret: c.Secret,
		RedirectURL:  c.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL builds the provider redirect. Parameter order and the literal
// scope encoding are fixed; the provider matches on them. oauth2.Config
// sorts the query and encodes the scope separator as "+", so the URL is
// written by hand.
func (c Client) AuthCodeURL() string {
	var b strings.Builder
	b.WriteString(c.AuthURL)
	b.WriteString("?client_id=")
	b.WriteString(url.QueryEscape(c.ID))
	b.WriteString("&redirect_uri=")
	b.WriteString(url.QueryEscape(c.RedirectURI))
	b.WriteString("&response_type=code")
	b.WriteString("&scope=")
	b.WriteString(strings.Join(scopes, "%20"))
	b.WriteString("&access_type=offline&prompt=select_account")
	return b.String()
}

// Exchange trades a single-use authorization code for the raw ID token.
// httpClient bounds the token request.
func (c Client) Exchange(ctx context.Context, httpClient *http.Client, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: empty code", common.ErrAuthExchange)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	tok, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			if re.Response != nil {
				return "", fmt.Errorf("%w: status %d %s", common.ErrAuthExchange, re.Response.StatusCode, re.ErrorCode)
			}
			return "", fmt.Errorf("%w: %s", common.ErrAuthExchange, re.ErrorCode)
		}
		return "", fmt.Errorf("%w: %v", common.ErrAuthExchange, err)
	}

	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return "", fmt.Errorf("%w: response has no id_token", common.ErrAuthExchange)
	}
	return raw, nil
}
