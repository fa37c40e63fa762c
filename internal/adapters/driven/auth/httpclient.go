package auth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
)

// TokenSourceAdapter adapts a driven.TokenProvider to oauth2.TokenSource.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.GetToken(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

// NewHTTPClient returns a client that sends the provider's token as a
// bearer Authorization header. The token is fetched per request so config
// reloads apply without rebuilding the client. A nil or NullTokenProvider
// yields a plain client.
func NewHTTPClient(ctx context.Context, provider driven.TokenProvider, timeout time.Duration) *http.Client {
	if provider == nil {
		return &http.Client{Timeout: timeout}
	}
	if _, ok := provider.(*NullTokenProvider); ok {
		return &http.Client{Timeout: timeout}
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: NewTokenSource(ctx, provider),
			Base:   http.DefaultTransport,
		},
		Timeout: timeout,
	}
}

// NewStaticHTTPClient wraps a fixed token with oauth2.StaticTokenSource.
func NewStaticHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = timeout
	return client
}
