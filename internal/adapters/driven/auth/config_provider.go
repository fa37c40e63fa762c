package auth

import (
	"context"
	"strings"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
)

// Ensure the providers implement the TokenProvider interface.
var (
	_ driven.TokenProvider = (*ConfigTokenProvider)(nil)
	_ driven.TokenProvider = (*StaticTokenProvider)(nil)
)

// TokenKey is the config key holding the bearer token.
//
//nolint:gosec // G101: config key name, not a credential.
const TokenKey = "auth.token"

// ConfigTokenProvider reads the bearer token from the config store on every
// call, so a reloaded config file takes effect on the next request.
type ConfigTokenProvider struct {
	store driven.ConfigStore
}

// NewConfigTokenProvider creates a provider backed by store.
func NewConfigTokenProvider(store driven.ConfigStore) *ConfigTokenProvider {
	return &ConfigTokenProvider{store: store}
}

// GetToken returns the configured token or domain.ErrAuthRequired.
func (p *ConfigTokenProvider) GetToken(_ context.Context) (string, error) {
	token := strings.TrimSpace(p.store.GetString(TokenKey))
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}

// IsAuthenticated returns true if a token is configured.
func (p *ConfigTokenProvider) IsAuthenticated() bool {
	return strings.TrimSpace(p.store.GetString(TokenKey)) != ""
}

// StaticTokenProvider supplies a fixed token, e.g. from SPSEARCH_TOKEN.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the token or domain.ErrAuthRequired if it is blank.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthRequired
	}
	return p.token, nil
}

// IsAuthenticated returns true if the token is non-blank.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
