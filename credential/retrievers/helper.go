package retrievers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/docker-credential-helpers/client"
	"github.com/docker/docker-credential-helpers/credentials"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/values"
)

// helperRunner speaks the docker credential-helper protocol.
type helperRunner struct {
	programFunc ProgramFuncFactory
	lookPath    LookPathFunc
}

// get asks helper for the credential of serverURL. It returns an empty credential
// if the helper has none, and a *entities.HelperNotFoundError if the executable
// cannot be resolved.
func (h helperRunner) get(helper, serverURL string) (values.Credential, error) {
	resolved, err := h.lookPath(helper)
	if err != nil {
		return values.Credential{}, &entities.HelperNotFoundError{Helper: helper, Cause: err}
	}

	creds, err := client.Get(h.programFunc(resolved), serverURL)
	if err != nil {
		if credentials.IsErrCredentialsNotFound(err) {
			return values.Credential{}, nil
		}
		return values.Credential{}, fmt.Errorf("%s get %s: %w", helper, serverURL, err)
	}
	if creds == nil {
		return values.Credential{}, nil
	}
	return values.NewCredential(creds.Username, creds.Secret), nil
}

// CredentialHelperRetriever retrieves credentials from one credential helper,
// given either as a path or as a program name.
type CredentialHelperRetriever struct {
	kind   values.RetrieverKind
	runner helperRunner
	helper string
	logger *slog.Logger
}

// Retrieve runs the helper for registry. A missing helper is an error here,
// since it was configured explicitly.
func (r *CredentialHelperRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	if err := ctx.Err(); err != nil {
		return values.Credential{}, err
	}
	r.logger.DebugContext(ctx, "trying credential helper", "helper", r.helper, "registry", registry)

	cred, err := r.runner.get(r.helper, registry)
	if err != nil {
		return values.Credential{}, err
	}
	if cred.IsEmpty() {
		r.logger.InfoContext(ctx, "no credentials for registry in credential helper", "helper", r.helper, "registry", registry)
		return cred, nil
	}

	r.logger.InfoContext(ctx, "using credentials from "+r.helper, "registry", registry)
	return cred, nil
}

// Descriptor reports the helper kind and the helper path or program.
func (r *CredentialHelperRetriever) Descriptor() values.RetrieverDescriptor {
	return values.NewRetrieverDescriptor(r.kind, r.helper)
}
