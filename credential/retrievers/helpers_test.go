package retrievers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/docker/docker-credential-helpers/client"
	"github.com/docker/docker-credential-helpers/credentials"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/regauth/credential/retrievers"
)

// fakeHelpers emulates installed credential helpers. Each helper maps a
// server URL to the credentials it stores.
type fakeHelpers map[string]map[string]credentials.Credentials

type fakeProgram struct {
	store  map[string]credentials.Credentials
	fail   bool
	server string
}

func (p *fakeProgram) Input(in io.Reader) {
	b, _ := io.ReadAll(in)
	p.server = string(b)
}

func (p *fakeProgram) Output() ([]byte, error) {
	if p.fail {
		return []byte("keychain locked"), errors.New("exit status 1")
	}
	c, ok := p.store[p.server]
	if !ok {
		return []byte("credentials not found in native keychain"), errors.New("exit status 1")
	}
	return json.Marshal(c)
}

func (h fakeHelpers) programFunc(program string) client.ProgramFunc {
	return func(args ...string) client.Program {
		return &fakeProgram{store: h[program], fail: program == "docker-credential-broken"}
	}
}

func (h fakeHelpers) lookPath(file string) (string, error) {
	if _, ok := h[file]; ok || file == "docker-credential-broken" {
		return file, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func (h fakeHelpers) options() []retrievers.FactoryOption {
	return []retrievers.FactoryOption{
		retrievers.WithLogger(discardLogger()),
		retrievers.WithProgramFunc(h.programFunc),
		retrievers.WithLookPath(h.lookPath),
		retrievers.WithGoogleKeychain(nil),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
