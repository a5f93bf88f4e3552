package retrievers

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/regauth/credential/values"
)

// KnownRetriever returns a fixed credential.
type KnownRetriever struct {
	credential values.Credential
	source     string
	logger     *slog.Logger
}

// Retrieve returns the fixed credential regardless of registry.
func (r *KnownRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	r.logger.InfoContext(ctx, "using credentials from "+r.source, "registry", registry)
	return r.credential, nil
}

// Descriptor reports the known kind with the credential's source label.
func (r *KnownRetriever) Descriptor() values.RetrieverDescriptor {
	return values.NewRetrieverDescriptor(values.KindKnown, r.source)
}
