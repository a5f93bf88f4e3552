// Package ports defines the interfaces the credential subsystem depends on.
package ports

import (
	"context"

	"github.com/reglet-dev/regauth/credential/values"
)

// CredentialRetriever attempts to produce a credential for a registry from one source.
// An empty credential with a nil error means the source had nothing for the registry.
type CredentialRetriever interface {
	Retrieve(ctx context.Context, registry string) (values.Credential, error)
}

// Describable is implemented by retrievers that can report their kind and source.
type Describable interface {
	Descriptor() values.RetrieverDescriptor
}

// RetrieverFactory turns a source description into a CredentialRetriever.
// Constructors must not perform I/O.
type RetrieverFactory interface {
	// Known wraps a fixed credential. source is used for diagnostics only.
	Known(credential values.Credential, source string) CredentialRetriever

	// DockerCredentialHelperAtPath runs the helper executable at path.
	DockerCredentialHelperAtPath(path string) CredentialRetriever

	// DockerCredentialHelper runs the helper program resolved by name, e.g. docker-credential-gcr.
	DockerCredentialHelper(program string) CredentialRetriever

	// DockerConfig reads a config.json style file (auths nested by registry).
	DockerConfig(path string) CredentialRetriever

	// LegacyDockerConfig reads a flat .dockercfg file.
	LegacyDockerConfig(path string) CredentialRetriever

	// WellKnownCredentialHelpers maps well-known registries to their vendor helpers.
	WellKnownCredentialHelpers() CredentialRetriever

	// AmbientDefaultCredentials discovers platform credentials from the environment.
	AmbientDefaultCredentials() CredentialRetriever
}
