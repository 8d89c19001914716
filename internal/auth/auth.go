// Package auth supplies bearer tokens for backend calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DashboardPath is where the hosted sign-in flow lands after authentication.
const DashboardPath = "/dashboard"

// ErrMissingToken indicates no authentication token is available.
var ErrMissingToken = errors.New("authentication token missing")

// TokenProvider returns a short-lived bearer token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Func adapts a function to TokenProvider.
type Func func(ctx context.Context) (string, error)

// Token implements TokenProvider.
func (f Func) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a provider that always yields token.
func Static(token string) TokenProvider {
	return Func(func(context.Context) (string, error) {
		return token, nil
	})
}

type tokenSource struct {
	src oauth2.TokenSource
}

// FromTokenSource adapts an oauth2 token source. The source is wrapped in
// oauth2.ReuseTokenSource so tokens are only refreshed after they expire.
func FromTokenSource(src oauth2.TokenSource) TokenProvider {
	return &tokenSource{src: oauth2.ReuseTokenSource(nil, src)}
}

func (t *tokenSource) Token(context.Context) (string, error) {
	tok, err := t.src.Token()
	if err != nil {
		return "", fmt.Errorf("fetching token: %w", err)
	}
	return tok.AccessToken, nil
}

// ClientCredentialsConfig configures the OAuth2 client credentials flow.
type ClientCredentialsConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// ClientCredentials returns a provider backed by the identity provider's token
// endpoint.
func ClientCredentials(ctx context.Context, cfg ClientCredentialsConfig) TokenProvider {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	return FromTokenSource(cc.TokenSource(ctx))
}

// Require resolves a token from p. A nil provider, a provider error or an
// empty token all yield an error wrapping ErrMissingToken.
func Require(ctx context.Context, p TokenProvider) (string, error) {
	if p == nil {
		return "", ErrMissingToken
	}
	token, err := p.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
