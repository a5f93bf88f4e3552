// Package oci adapts credential retriever chains to oras-go registry clients.
package oci

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/services"
	"github.com/reglet-dev/regauth/credential/values"
	"github.com/reglet-dev/regauth/netutil"
)

// CredentialFunc returns an oras credential function that walks retrievers for
// each registry. A registry with no credential is accessed anonymously.
func CredentialFunc(retrievers []ports.CredentialRetriever, logger *slog.Logger) auth.CredentialFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, hostport string) (auth.Credential, error) {
		res, err := services.ResolveCredential(ctx, retrievers, hostport)
		if errors.Is(err, entities.ErrCredentialNotFound) {
			logger.DebugContext(ctx, "no credential for registry, using anonymous access", "registry", hostport)
			return auth.EmptyCredential, nil
		}
		if err != nil {
			return auth.EmptyCredential, err
		}
		logger.DebugContext(ctx, "registry credential resolved",
			"registry", hostport, "retriever", res.Descriptor.String())
		return ToAuthCredential(res.Credential), nil
	}
}

// ToAuthCredential converts a credential to the oras form. A refresh-token
// credential becomes an oras RefreshToken.
func ToAuthCredential(c values.Credential) auth.Credential {
	if c.IsEmpty() {
		return auth.EmptyCredential
	}
	if c.IsOAuth2RefreshToken() {
		return auth.Credential{RefreshToken: c.Password()}
	}
	return auth.Credential{Username: c.Username(), Password: c.Password()}
}

// ClientOption configures the auth client returned by NewAuthClient.
type ClientOption func(*auth.Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(ac *auth.Client) { ac.Client = c }
}

// WithUserAgent sets the User-Agent header sent to registries.
func WithUserAgent(ua string) ClientOption {
	return func(ac *auth.Client) { ac.SetUserAgent(ua) }
}

// NewAuthClient creates an oras auth client whose credentials come from retrievers.
func NewAuthClient(retrievers []ports.CredentialRetriever, logger *slog.Logger, opts ...ClientOption) *auth.Client {
	client := &auth.Client{
		Client:     retry.DefaultClient,
		Cache:      auth.NewCache(),
		Credential: CredentialFunc(retrievers, logger),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ChainAuthProvider implements ports.AuthProvider over a retriever chain.
type ChainAuthProvider struct {
	retrievers []ports.CredentialRetriever
}

// NewChainAuthProvider creates an auth provider backed by retrievers.
func NewChainAuthProvider(retrievers []ports.CredentialRetriever) *ChainAuthProvider {
	return &ChainAuthProvider{retrievers: retrievers}
}

// GetCredentials returns the username and password for a registry, or empty
// strings when the chain has none. A refresh-token credential is returned the
// way docker stores identity tokens: username "<token>" and the token as password.
func (p *ChainAuthProvider) GetCredentials(ctx context.Context, registry string) (username, password string, err error) {
	res, err := services.ResolveCredential(ctx, p.retrievers, netutil.RegistryHost(registry))
	if errors.Is(err, entities.ErrCredentialNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return res.Credential.Username(), res.Credential.Password(), nil
}
