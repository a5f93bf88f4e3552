// Package services holds the domain logic that orders and walks credential retrievers.
package services

import (
	"log/slog"
	"os"
	"strings"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/filesystem"
	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/values"
)

// CredentialHelperPrefix is prepended to a bare helper suffix to form the program name.
const CredentialHelperPrefix = "docker-credential-"

// windowsExecutableSuffixes are probed when a helper path is missing on Windows.
var windowsExecutableSuffixes = []string{".cmd", ".exe"}

// DefaultRetrievers builds the default ordered list of credential retrievers.
//
// The retrievers are, in order of first-checked to last-checked:
//  1. the known credential, if set
//  2. the credential helper, if set
//  3. the inferred credential, if set
//  4. the Podman auth.json files under XDG_RUNTIME_DIR, XDG_CONFIG_HOME, user.home and HOME
//  5. config.json, .dockerconfigjson and .dockercfg under DOCKER_CONFIG, user.home/.docker and HOME/.docker
//  6. the well-known credential helpers
//  7. the ambient default credentials
//
// A DefaultRetrievers is configured once, consumed by AsList and discarded.
// It is not safe for concurrent use.
type DefaultRetrievers struct {
	factory ports.RetrieverFactory
	ambient values.Ambient
	files   ports.FileChecker
	logger  *slog.Logger

	knownCredential    values.Optional[values.KnownCredential]
	inferredCredential values.Optional[values.KnownCredential]
	credentialHelper   values.Optional[string]
}

// DefaultRetrieversOption configures a DefaultRetrievers.
type DefaultRetrieversOption func(*DefaultRetrievers)

// WithFileChecker sets the existence check used to validate helper paths.
func WithFileChecker(fc ports.FileChecker) DefaultRetrieversOption {
	return func(d *DefaultRetrievers) { d.files = fc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DefaultRetrieversOption {
	return func(d *DefaultRetrievers) { d.logger = l }
}

// NewDefaultRetrievers creates a builder over an ambient snapshot.
func NewDefaultRetrievers(
	factory ports.RetrieverFactory,
	ambient values.Ambient,
	opts ...DefaultRetrieversOption,
) *DefaultRetrievers {
	d := &DefaultRetrievers{
		factory: factory,
		ambient: ambient,
		files:   filesystem.NewOSFileChecker(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// InitDefaultRetrievers creates a builder over the current process environment
// and host properties.
func InitDefaultRetrievers(factory ports.RetrieverFactory, opts ...DefaultRetrieversOption) *DefaultRetrievers {
	return NewDefaultRetrievers(factory, values.CurrentAmbient(), opts...)
}

// SetKnownCredential sets the known credential. source names where it came
// from and is only used for logging.
func (d *DefaultRetrievers) SetKnownCredential(credential values.Credential, source string) *DefaultRetrievers {
	d.knownCredential = values.Some(values.NewKnownCredential(credential, source))
	return d
}

// SetInferredCredential sets the inferred credential. It is tried after the
// credential helper, unlike the known credential.
func (d *DefaultRetrievers) SetInferredCredential(credential values.Credential, source string) *DefaultRetrievers {
	d.inferredCredential = values.Some(values.NewKnownCredential(credential, source))
	return d
}

// SetCredentialHelper sets the credential helper. It is either a path to a helper
// executable or a suffix following docker-credential-.
func (d *DefaultRetrievers) SetCredentialHelper(helper string) *DefaultRetrievers {
	d.credentialHelper = values.Some(helper)
	return d
}

// AsList makes the list of retrievers. The list is never empty.
//
// It returns a *entities.HelperNotFoundError if the credential helper is a path
// and no file exists there.
func (d *DefaultRetrievers) AsList() ([]ports.CredentialRetriever, error) {
	var retrievers []ports.CredentialRetriever

	if known, ok := d.knownCredential.Get(); ok {
		retrievers = append(retrievers, d.factory.Known(known.Credential(), known.Source()))
	}

	if helper, ok := d.credentialHelper.Get(); ok {
		r, err := d.helperRetriever(helper)
		if err != nil {
			return nil, err
		}
		retrievers = append(retrievers, r)
	}

	if inferred, ok := d.inferredCredential.Get(); ok {
		retrievers = append(retrievers, d.factory.Known(inferred.Credential(), inferred.Source()))
	}

	for _, path := range ConfigFileCandidates(d.ambient) {
		if IsLegacyDockerConfig(path) {
			retrievers = append(retrievers, d.factory.LegacyDockerConfig(path))
		} else {
			retrievers = append(retrievers, d.factory.DockerConfig(path))
		}
	}

	retrievers = append(retrievers,
		d.factory.WellKnownCredentialHelpers(),
		d.factory.AmbientDefaultCredentials(),
	)

	d.logger.Debug("built credential retriever chain", "count", len(retrievers))
	return retrievers, nil
}

// helperRetriever treats helper as a path when it contains the path separator
// and as a docker-credential- suffix otherwise.
func (d *DefaultRetrievers) helperRetriever(helper string) (ports.CredentialRetriever, error) {
	if !strings.ContainsRune(helper, os.PathSeparator) {
		return d.factory.DockerCredentialHelper(CredentialHelperPrefix + helper), nil
	}
	if err := d.validateHelperPath(helper); err != nil {
		return nil, err
	}
	return d.factory.DockerCredentialHelperAtPath(helper), nil
}

// validateHelperPath checks that a helper exists at path. On Windows, as
// reported by the os.name property, path.cmd and path.exe are accepted too.
func (d *DefaultRetrievers) validateHelperPath(path string) error {
	if d.files.Exists(path) {
		return nil
	}
	if d.ambient.Properties.IsWindows() {
		for _, suffix := range windowsExecutableSuffixes {
			if d.files.Exists(path + suffix) {
				return nil
			}
		}
	}
	d.logger.Debug("credential helper path does not exist", "helper", path)
	return &entities.HelperNotFoundError{Helper: path}
}
