// Package credential orchestrates building and walking registry credential chains.
package credential

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/regauth/credential/dto"
	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/services"
	"github.com/reglet-dev/regauth/credential/values"
)

// Default source labels for credentials that come from configuration.
const (
	DefaultKnownSource    = "config file"
	DefaultInferredSource = "inferred"
)

// CredentialService builds credential retriever chains from configuration and
// resolves registry credentials through them.
type CredentialService struct {
	factory ports.RetrieverFactory
	config  ports.ConfigRepository
	ambient values.Optional[values.Ambient]
	files   ports.FileChecker
	logger  *slog.Logger
}

// CredentialServiceOption configures a CredentialService.
type CredentialServiceOption func(*CredentialService)

// WithAmbient sets the environment and property snapshot chains are built from.
func WithAmbient(a values.Ambient) CredentialServiceOption {
	return func(s *CredentialService) { s.ambient = values.Some(a) }
}

// WithFileChecker sets the file existence check used for helper paths.
func WithFileChecker(fc ports.FileChecker) CredentialServiceOption {
	return func(s *CredentialService) { s.files = fc }
}

// WithConfigRepository sets the repository LoadSpec reads from.
func WithConfigRepository(r ports.ConfigRepository) CredentialServiceOption {
	return func(s *CredentialService) { s.config = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CredentialServiceOption {
	return func(s *CredentialService) { s.logger = l }
}

// NewCredentialService creates a credential service. The factory is required.
func NewCredentialService(factory ports.RetrieverFactory, opts ...CredentialServiceOption) *CredentialService {
	s := &CredentialService{
		factory: factory,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.ambient.IsPresent() {
		s.ambient = values.Some(values.CurrentAmbient())
	}
	return s
}

// LoadSpec reads the explicit inputs from the configuration repository.
// Without a repository no explicit inputs are configured.
func (s *CredentialService) LoadSpec(ctx context.Context, path string) (*dto.CredentialSpecDTO, error) {
	if s.config == nil {
		return &dto.CredentialSpecDTO{}, nil
	}
	spec, err := s.config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load credential config: %w", err)
	}
	return spec, nil
}

// Retrievers builds the ordered retriever chain for spec.
func (s *CredentialService) Retrievers(spec *dto.CredentialSpecDTO) ([]ports.CredentialRetriever, error) {
	ambient, _ := s.ambient.Get()
	builder := services.NewDefaultRetrievers(s.factory, ambient, s.builderOptions()...)

	if spec != nil {
		if known, ok := spec.Known.ToKnownCredential(DefaultKnownSource).Get(); ok {
			builder.SetKnownCredential(known.Credential(), known.Source())
		}
		if helper, ok := spec.ToCredentialHelper().Get(); ok {
			builder.SetCredentialHelper(helper)
		}
		if inferred, ok := spec.Inferred.ToKnownCredential(DefaultInferredSource).Get(); ok {
			builder.SetInferredCredential(inferred.Credential(), inferred.Source())
		}
	}

	retrievers, err := builder.AsList()
	if err != nil {
		return nil, fmt.Errorf("build credential retrievers: %w", err)
	}
	return retrievers, nil
}

// Resolve builds the chain for spec and returns the first credential it yields for registry.
func (s *CredentialService) Resolve(ctx context.Context, spec *dto.CredentialSpecDTO, registry string) (*services.Resolution, error) {
	retrievers, err := s.Retrievers(spec)
	if err != nil {
		return nil, err
	}

	res, err := services.ResolveCredential(ctx, retrievers, registry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resolved registry credential",
		"registry", registry,
		"kind", res.Descriptor.Kind,
		"source", res.Descriptor.Source,
		"username", res.Credential.Username())
	return res, nil
}

func (s *CredentialService) builderOptions() []services.DefaultRetrieversOption {
	opts := []services.DefaultRetrieversOption{services.WithLogger(s.logger)}
	if s.files != nil {
		opts = append(opts, services.WithFileChecker(s.files))
	}
	return opts
}
