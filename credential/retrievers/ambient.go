package retrievers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"

	"github.com/reglet-dev/regauth/credential/values"
	"github.com/reglet-dev/regauth/netutil"
)

// AmbientDefaultRetriever supplies credentials the process environment implies:
// REGISTRY_USERNAME/REGISTRY_PASSWORD, then Google application default
// credentials for Google registries. Failures are logged, never returned.
type AmbientDefaultRetriever struct {
	env      values.Environment
	keychain authn.Keychain
	logger   *slog.Logger
}

// Retrieve returns the first ambient credential found for registry.
func (r *AmbientDefaultRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	if cred := r.fromEnvironment(); !cred.IsEmpty() {
		r.logger.InfoContext(ctx, "using credentials from environment", "registry", registry)
		return cred, nil
	}

	if r.keychain == nil || !isGoogleRegistry(netutil.RegistryHostname(registry)) {
		return values.Credential{}, nil
	}
	cred, err := r.fromKeychain(registry)
	if err != nil {
		r.logger.InfoContext(ctx, "google application default credentials unavailable", "registry", registry, "error", err)
		return values.Credential{}, nil
	}
	if !cred.IsEmpty() {
		r.logger.InfoContext(ctx, "using google application default credentials", "registry", registry)
	}
	return cred, nil
}

// Descriptor reports the ambient-default-credentials kind.
func (r *AmbientDefaultRetriever) Descriptor() values.RetrieverDescriptor {
	return values.NewRetrieverDescriptor(values.KindAmbientDefault, "")
}

func (r *AmbientDefaultRetriever) fromEnvironment() values.Credential {
	username := r.env.Get(values.EnvRegistryUser)
	password := r.env.Get(values.EnvRegistrySecret)
	if username == "" || password == "" {
		return values.Credential{}
	}
	return values.NewCredential(username, password)
}

func (r *AmbientDefaultRetriever) fromKeychain(registry string) (values.Credential, error) {
	reg, err := name.NewRegistry(registry)
	if err != nil {
		return values.Credential{}, fmt.Errorf("invalid registry %q: %w", registry, err)
	}
	authenticator, err := r.keychain.Resolve(reg)
	if err != nil {
		return values.Credential{}, fmt.Errorf("resolve keychain: %w", err)
	}
	if authenticator == authn.Anonymous {
		return values.Credential{}, nil
	}
	cfg, err := authenticator.Authorization()
	if err != nil {
		return values.Credential{}, fmt.Errorf("authorize: %w", err)
	}
	if cfg.IdentityToken != "" {
		return values.NewRefreshTokenCredential(cfg.IdentityToken), nil
	}
	return values.NewCredential(cfg.Username, cfg.Password), nil
}

func isGoogleRegistry(hostname string) bool {
	return hostname == "gcr.io" ||
		strings.HasSuffix(hostname, ".gcr.io") ||
		strings.HasSuffix(hostname, "docker.pkg.dev")
}
