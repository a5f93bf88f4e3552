package retrievers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/values"
	"github.com/reglet-dev/regauth/netutil"
)

// WellKnownHelper maps a registry hostname pattern to the vendor helper that
// serves it. Patterns use doublestar syntax and are matched against the
// hostname without port.
type WellKnownHelper struct {
	Pattern string
	Program string
}

// DefaultWellKnownHelpers covers the cloud registries with a standard helper.
var DefaultWellKnownHelpers = []WellKnownHelper{
	{Pattern: "gcr.io", Program: "docker-credential-gcr"},
	{Pattern: "*.gcr.io", Program: "docker-credential-gcr"},
	{Pattern: "*.pkg.dev", Program: "docker-credential-gcr"},
	{Pattern: "*.amazonaws.com", Program: "docker-credential-ecr-login"},
	{Pattern: "*.azurecr.io", Program: "docker-credential-acr-env"},
}

// WellKnownHelpersRetriever tries the helper of every pattern matching the
// registry. Unlike an explicitly configured helper, a missing executable is
// not an error.
type WellKnownHelpersRetriever struct {
	helpers []WellKnownHelper
	runner  helperRunner
	logger  *slog.Logger
}

// Retrieve returns the first credential a matching helper supplies.
func (r *WellKnownHelpersRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	hostname := netutil.RegistryHostname(registry)

	for _, h := range r.helpers {
		if err := ctx.Err(); err != nil {
			return values.Credential{}, err
		}
		matched, err := doublestar.Match(h.Pattern, hostname)
		if err != nil {
			r.logger.WarnContext(ctx, "invalid well-known registry pattern", "pattern", h.Pattern, "error", err)
			continue
		}
		if !matched {
			continue
		}

		cred, err := r.runner.get(h.Program, registry)
		if errors.Is(err, entities.ErrHelperNotFound) {
			r.logger.DebugContext(ctx, "well-known credential helper not installed", "helper", h.Program, "registry", registry)
			continue
		}
		if err != nil {
			r.logger.WarnContext(ctx, "well-known credential helper failed", "helper", h.Program, "registry", registry, "error", err)
			continue
		}
		if !cred.IsEmpty() {
			r.logger.InfoContext(ctx, "using credentials from "+h.Program, "registry", registry)
			return cred, nil
		}
	}
	return values.Credential{}, nil
}

// Descriptor reports the well-known-credential-helpers kind.
func (r *WellKnownHelpersRetriever) Descriptor() values.RetrieverDescriptor {
	return values.NewRetrieverDescriptor(values.KindWellKnownHelpers, "")
}
