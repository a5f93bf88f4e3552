// Package retrievers implements the credential sources a chain is made of.
package retrievers

import (
	"log/slog"
	"os/exec"

	"github.com/docker/docker-credential-helpers/client"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/v1/google"

	"github.com/reglet-dev/regauth/credential/filesystem"
	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/values"
)

// ProgramFuncFactory returns the credential-helper protocol client for a helper executable.
type ProgramFuncFactory func(program string) client.ProgramFunc

// LookPathFunc resolves a helper executable, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Factory implements ports.RetrieverFactory. Constructors only capture their
// arguments; files are read and helpers run when Retrieve is called.
type Factory struct {
	logger         *slog.Logger
	files          ports.FileChecker
	programFunc    ProgramFuncFactory
	lookPath       LookPathFunc
	env            values.Optional[values.Environment]
	googleKeychain authn.Keychain
	wellKnown      []WellKnownHelper
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger shared by every retriever.
func WithLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = l }
}

// WithFileChecker sets the existence check used before reading config files.
func WithFileChecker(fc ports.FileChecker) FactoryOption {
	return func(f *Factory) { f.files = fc }
}

// WithProgramFunc replaces how helper executables are invoked.
func WithProgramFunc(pf ProgramFuncFactory) FactoryOption {
	return func(f *Factory) { f.programFunc = pf }
}

// WithLookPath replaces helper executable resolution.
func WithLookPath(lp LookPathFunc) FactoryOption {
	return func(f *Factory) { f.lookPath = lp }
}

// WithEnvironment sets the environment snapshot ambient credentials are read from.
func WithEnvironment(env values.Environment) FactoryOption {
	return func(f *Factory) { f.env = values.Some(env) }
}

// WithGoogleKeychain sets the keychain used for Google application default
// credentials. A nil keychain disables that lookup.
func WithGoogleKeychain(kc authn.Keychain) FactoryOption {
	return func(f *Factory) { f.googleKeychain = kc }
}

// WithWellKnownHelpers replaces the well-known registry to helper table.
func WithWellKnownHelpers(helpers []WellKnownHelper) FactoryOption {
	return func(f *Factory) { f.wellKnown = helpers }
}

// NewFactory creates a retriever factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		logger:         slog.Default(),
		files:          filesystem.NewOSFileChecker(),
		programFunc:    client.NewShellProgramFunc,
		lookPath:       exec.LookPath,
		googleKeychain: google.Keychain,
		wellKnown:      DefaultWellKnownHelpers,
	}
	for _, opt := range opts {
		opt(f)
	}
	if !f.env.IsPresent() {
		f.env = values.Some(values.CurrentEnvironment())
	}
	return f
}

// Known wraps a fixed credential.
func (f *Factory) Known(credential values.Credential, source string) ports.CredentialRetriever {
	return &KnownRetriever{credential: credential, source: source, logger: f.logger}
}

// DockerCredentialHelperAtPath runs the helper executable at path.
func (f *Factory) DockerCredentialHelperAtPath(path string) ports.CredentialRetriever {
	return f.helper(values.KindHelperAtPath, path)
}

// DockerCredentialHelper runs the named helper program from PATH.
func (f *Factory) DockerCredentialHelper(program string) ports.CredentialRetriever {
	return f.helper(values.KindHelper, program)
}

func (f *Factory) helper(kind values.RetrieverKind, program string) *CredentialHelperRetriever {
	return &CredentialHelperRetriever{
		kind:   kind,
		runner: f.helperRunner(),
		helper: program,
		logger: f.logger,
	}
}

// DockerConfig reads a config.json style file.
func (f *Factory) DockerConfig(path string) ports.CredentialRetriever {
	return &DockerConfigRetriever{path: path, files: f.files, logger: f.logger}
}

// LegacyDockerConfig reads a flat .dockercfg file.
func (f *Factory) LegacyDockerConfig(path string) ports.CredentialRetriever {
	return &LegacyDockerConfigRetriever{path: path, files: f.files, logger: f.logger}
}

// WellKnownCredentialHelpers tries the vendor helper of well-known registries.
func (f *Factory) WellKnownCredentialHelpers() ports.CredentialRetriever {
	return &WellKnownHelpersRetriever{
		helpers: f.wellKnown,
		runner:  f.helperRunner(),
		logger:  f.logger,
	}
}

// AmbientDefaultCredentials reads credentials from the environment snapshot
// and Google application default credentials.
func (f *Factory) AmbientDefaultCredentials() ports.CredentialRetriever {
	env, _ := f.env.Get()
	return &AmbientDefaultRetriever{
		env:      env,
		keychain: f.googleKeychain,
		logger:   f.logger,
	}
}

func (f *Factory) helperRunner() helperRunner {
	return helperRunner{programFunc: f.programFunc, lookPath: f.lookPath}
}
