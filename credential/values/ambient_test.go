package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	raw := map[string]string{EnvHome: "/home/u", EnvDockerConfig: ""}
	env := NewEnvironment(raw)
	raw[EnvHome] = "/changed"

	v, ok := env.Lookup(EnvHome)
	assert.True(t, ok)
	assert.Equal(t, "/home/u", v, "snapshot is copied")

	v, ok = env.Lookup(EnvDockerConfig)
	assert.True(t, ok, "empty value counts as set")
	assert.Empty(t, v)

	_, ok = env.Lookup(EnvXDGRuntimeDir)
	assert.False(t, ok)
	assert.Empty(t, env.Get(EnvXDGRuntimeDir))
}

func TestSystemProperties_IsWindows(t *testing.T) {
	tests := []struct {
		osName string
		want   bool
	}{
		{"Windows 10", true},
		{"windows server 2022", true},
		{"WINDOWS", true},
		{"Linux", false},
		{"Mac OS X", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.osName, func(t *testing.T) {
			props := NewSystemProperties(map[string]string{PropertyOSName: tt.osName})
			assert.Equal(t, tt.want, props.IsWindows())
		})
	}

	assert.False(t, NewSystemProperties(nil).IsWindows())
}

func TestCurrentAmbient(t *testing.T) {
	t.Setenv("REGAUTH_TEST_VAR", "a=b")

	a := CurrentAmbient()
	v, ok := a.Environment.Lookup("REGAUTH_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "a=b", v)

	osName, ok := a.Properties.Lookup(PropertyOSName)
	assert.True(t, ok)
	assert.NotEmpty(t, osName)
}

func TestRegistryAliases(t *testing.T) {
	assert.Equal(t, []string{"quay.io"}, RegistryAliases("quay.io"))
	assert.Equal(t,
		[]string{"docker.io", "registry.hub.docker.com", "index.docker.io", "registry-1.docker.io"},
		RegistryAliases("docker.io"))
	assert.Equal(t,
		[]string{"index.docker.io", "registry.hub.docker.com", "registry-1.docker.io", "docker.io"},
		RegistryAliases("index.docker.io"))
}
