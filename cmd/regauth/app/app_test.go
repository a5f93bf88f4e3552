package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/docker/docker-credential-helpers/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/retrievers"
	"github.com/reglet-dev/regauth/credential/values"
)

type fakePrompter struct {
	interactive bool
	cred        values.Credential
	asked       []string
}

func (p *fakePrompter) IsInteractive() bool { return p.interactive }

func (p *fakePrompter) PromptForCredential(registry string) (values.Credential, error) {
	p.asked = append(p.asked, registry)
	return p.cred, nil
}

func withPrompter(p credentialPrompter) Option {
	return func(o *rootOptions) { o.prompter = p }
}

type envRecorder struct {
	mu  sync.Mutex
	set map[string]string
}

func (e *envRecorder) setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set == nil {
		e.set = make(map[string]string)
	}
	e.set[key] = value
	return nil
}

func withSetenv(fn func(key, value string) error) Option {
	return func(o *rootOptions) { o.setenv = fn }
}

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args []string, opts ...Option) result {
	t.Helper()

	home := t.TempDir()
	base := []Option{
		WithAmbient(values.NewAmbient(
			map[string]string{values.EnvHome: home},
			map[string]string{values.PropertyOSName: "Linux"},
		)),
		WithFactoryOptions(retrievers.WithGoogleKeychain(nil)),
		withSetenv((&envRecorder{}).setenv),
	}

	cmd := NewRootCmd(append(base, opts...)...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRetrieversCmd(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "credentialHelper: gcr\n")

	res := run(t, "", []string{"retrievers", "--config", cfg})
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "1. docker-credential-helper(docker-credential-gcr)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2. docker-config("))
	assert.True(t, strings.HasPrefix(lines[4], "5. legacy-docker-config("))
	assert.Equal(t, "6. well-known-credential-helpers", lines[5])
	assert.Equal(t, "7. ambient-default-credentials", lines[6])
}

func TestRetrieversCmd_YAML(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "credential:\n  username: u\n  password: p\n")

	res := run(t, "", []string{"retrievers", "-o", "yaml", "--config", cfg})
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "kind: known")
	assert.Contains(t, res.stdout, "source: config file")
	assert.Contains(t, res.stdout, "kind: ambient-default-credentials")
	assert.NotContains(t, res.stdout, "password")
}

func TestRetrieversCmd_BadFormat(t *testing.T) {
	t.Parallel()

	res := run(t, "", []string{"retrievers", "-o", "xml", "--config", writeConfig(t, "")})
	assert.Error(t, res.err)
}

func TestGetCmd(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "credential:\n  username: alice\n  password: s3cret\n")

	res := run(t, "", []string{"get", "https://Registry.Example.com/v2/", "--config", cfg})
	require.NoError(t, res.err)

	var got credentials.Credentials
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "registry.example.com", got.ServerURL)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "s3cret", got.Secret)
}

func TestGetCmd_NotFound(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")

	t.Run("no prompt", func(t *testing.T) {
		res := run(t, "", []string{"get", "quay.io", "--config", cfg})
		assert.ErrorIs(t, res.err, entities.ErrCredentialNotFound)
	})

	t.Run("prompt", func(t *testing.T) {
		p := &fakePrompter{interactive: true, cred: values.NewCredential("typed", "pw")}
		res := run(t, "", []string{"get", "quay.io", "--prompt", "--config", cfg}, withPrompter(p))
		require.NoError(t, res.err)
		assert.Equal(t, []string{"quay.io"}, p.asked)
		assert.Contains(t, res.stdout, `"Username": "typed"`)
	})

	t.Run("prompt without terminal", func(t *testing.T) {
		p := &fakePrompter{}
		res := run(t, "", []string{"get", "quay.io", "--prompt", "--config", cfg}, withPrompter(p))
		assert.ErrorIs(t, res.err, entities.ErrCredentialNotFound)
		assert.Empty(t, p.asked)
	})
}

func TestGetCmd_InvalidConfig(t *testing.T) {
	t.Parallel()

	res := run(t, "", []string{"get", "quay.io", "--config", writeConfig(t, "unknown: 1\n")})
	assert.ErrorIs(t, res.err, entities.ErrInvalidConfig)
}

func TestHelperCmd(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "credential:\n  username: alice\n  password: s3cret\n")

	t.Run("get", func(t *testing.T) {
		res := run(t, "https://index.docker.io/v1/\n", []string{"helper", "get", "--config", cfg})
		require.NoError(t, res.err)

		var got credentials.Credentials
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "s3cret", got.Secret)
	})

	t.Run("get not found", func(t *testing.T) {
		res := run(t, "quay.io\n", []string{"helper", "get", "--config", writeConfig(t, "")})
		require.Error(t, res.err)
		assert.True(t, credentials.IsErrCredentialsNotFound(res.err))
	})

	t.Run("erase is refused", func(t *testing.T) {
		res := run(t, "quay.io\n", []string{"helper", "erase", "--config", cfg})
		assert.ErrorIs(t, res.err, errReadOnly)
	})

	t.Run("list", func(t *testing.T) {
		res := run(t, "", []string{"helper", "list", "--config", cfg})
		require.NoError(t, res.err)
		assert.JSONEq(t, "{}", res.stdout)
	})
}

func TestHelperCmd_Nested(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "credential:\n  username: alice\n  password: s3cret\n")

	t.Run("outer helper marks its environment", func(t *testing.T) {
		env := &envRecorder{}
		res := run(t, "registry.example.com\n", []string{"helper", "get", "--config", cfg}, withSetenv(env.setenv))
		require.NoError(t, res.err)
		assert.Equal(t, map[string]string{EnvHelperActive: "1"}, env.set)
	})

	t.Run("nested helper resolves nothing", func(t *testing.T) {
		nested := WithAmbient(values.NewAmbient(
			map[string]string{values.EnvHome: t.TempDir(), EnvHelperActive: "1"},
			map[string]string{values.PropertyOSName: "Linux"},
		))
		env := &envRecorder{}
		res := run(t, "registry.example.com\n", []string{"helper", "get", "--config", cfg}, nested, withSetenv(env.setenv))
		require.Error(t, res.err)
		assert.True(t, credentials.IsErrCredentialsNotFound(res.err))
		assert.Empty(t, env.set)
	})

	t.Run("get command is not affected", func(t *testing.T) {
		nested := WithAmbient(values.NewAmbient(
			map[string]string{values.EnvHome: t.TempDir(), EnvHelperActive: "1"},
			nil,
		))
		res := run(t, "", []string{"get", "registry.example.com", "--config", cfg}, nested)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "alice")
	})
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	res := run(t, "", []string{"schema"})
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "credentialHelper")
	assert.True(t, json.Valid([]byte(res.stdout)))
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	valid := writeConfig(t, "credentialHelper: /usr/local/bin/docker-credential-custom\n")
	res := run(t, "", []string{"validate", valid})
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "is valid")

	res = run(t, "", []string{"validate", writeConfig(t, "credential:\n  username: u\n")})
	assert.ErrorIs(t, res.err, entities.ErrInvalidConfig)

	res = run(t, "", []string{"validate", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, res.err)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		env   map[string]string
		props map[string]string
		want  string
	}{
		{
			name: "xdg config home",
			env:  map[string]string{values.EnvXDGConfigHome: "/xdg", values.EnvHome: "/home/env"},
			want: filepath.Join("/xdg", "regauth", "config.yaml"),
		},
		{
			name:  "user home property",
			env:   map[string]string{values.EnvHome: "/home/env"},
			props: map[string]string{values.PropertyUserHome: "/home/prop"},
			want:  filepath.Join("/home/prop", ".config", "regauth", "config.yaml"),
		},
		{
			name: "home variable",
			env:  map[string]string{values.EnvHome: "/home/env"},
			want: filepath.Join("/home/env", ".config", "regauth", "config.yaml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultConfigPath(values.NewAmbient(tt.env, tt.props)))
		})
	}
}
