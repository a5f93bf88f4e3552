package credential

import (
	"context"
	"io"
	"log/slog"

	"github.com/reglet-dev/regauth/credential/dto"
	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/values"
)

// MockRetriever implements ports.CredentialRetriever and ports.Describable
type MockRetriever struct {
	Desc       values.RetrieverDescriptor
	Credential values.Credential
	Err        error
	Calls      []string
}

func (m *MockRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	m.Calls = append(m.Calls, registry)
	if m.Err != nil {
		return values.Credential{}, m.Err
	}
	return m.Credential, nil
}

func (m *MockRetriever) Descriptor() values.RetrieverDescriptor {
	return m.Desc
}

// MockFactory implements ports.RetrieverFactory. Every retriever it returns is
// a *MockRetriever describing the call that produced it.
type MockFactory struct {
	// Credentials maps a descriptor to the credential its retriever returns.
	Credentials map[values.RetrieverDescriptor]values.Credential
	Created     []*MockRetriever
}

func (m *MockFactory) make(kind values.RetrieverKind, source string) ports.CredentialRetriever {
	desc := values.NewRetrieverDescriptor(kind, source)
	r := &MockRetriever{Desc: desc, Credential: m.Credentials[desc]}
	m.Created = append(m.Created, r)
	return r
}

func (m *MockFactory) Known(credential values.Credential, source string) ports.CredentialRetriever {
	desc := values.NewRetrieverDescriptor(values.KindKnown, source)
	r := &MockRetriever{Desc: desc, Credential: credential}
	m.Created = append(m.Created, r)
	return r
}

func (m *MockFactory) DockerCredentialHelperAtPath(path string) ports.CredentialRetriever {
	return m.make(values.KindHelperAtPath, path)
}

func (m *MockFactory) DockerCredentialHelper(program string) ports.CredentialRetriever {
	return m.make(values.KindHelper, program)
}

func (m *MockFactory) DockerConfig(path string) ports.CredentialRetriever {
	return m.make(values.KindDockerConfig, path)
}

func (m *MockFactory) LegacyDockerConfig(path string) ports.CredentialRetriever {
	return m.make(values.KindLegacyDockerConfig, path)
}

func (m *MockFactory) WellKnownCredentialHelpers() ports.CredentialRetriever {
	return m.make(values.KindWellKnownHelpers, "")
}

func (m *MockFactory) AmbientDefaultCredentials() ports.CredentialRetriever {
	return m.make(values.KindAmbientDefault, "")
}

// MockFileChecker implements ports.FileChecker over a fixed set of paths.
type MockFileChecker struct {
	Paths   map[string]bool
	Checked []string
}

func (m *MockFileChecker) Exists(path string) bool {
	m.Checked = append(m.Checked, path)
	return m.Paths[path]
}

// MockConfigRepository implements ports.ConfigRepository
type MockConfigRepository struct {
	Spec    *dto.CredentialSpecDTO
	LoadErr error
}

func (m *MockConfigRepository) Load(ctx context.Context, path string) (*dto.CredentialSpecDTO, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Spec == nil {
		return &dto.CredentialSpecDTO{}, nil
	}
	return m.Spec, nil
}

func (m *MockConfigRepository) Exists(ctx context.Context, path string) (bool, error) {
	return m.Spec != nil, nil
}

func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
