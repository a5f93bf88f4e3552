package values

import (
	"maps"
	"os"
	"os/user"
	"runtime"
	"strings"
)

// Environment variable names consulted during discovery.
const (
	EnvXDGRuntimeDir  = "XDG_RUNTIME_DIR"
	EnvXDGConfigHome  = "XDG_CONFIG_HOME"
	EnvHome           = "HOME"
	EnvDockerConfig   = "DOCKER_CONFIG"
	EnvRegistryUser   = "REGISTRY_USERNAME"
	EnvRegistrySecret = "REGISTRY_PASSWORD"
)

// System property names consulted during discovery.
const (
	PropertyOSName   = "os.name"
	PropertyUserHome = "user.home"
)

// Environment is an immutable snapshot of environment variables.
type Environment struct {
	vars map[string]string
}

// NewEnvironment copies vars into a new snapshot.
func NewEnvironment(vars map[string]string) Environment {
	return Environment{vars: maps.Clone(vars)}
}

// Lookup returns the value of key and whether it is set. A variable set to the
// empty string counts as set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Get returns the value of key, or "" if unset.
func (e Environment) Get(key string) string {
	return e.vars[key]
}

// SystemProperties is an immutable snapshot of host properties such as
// the operating system name and the user's home directory.
type SystemProperties struct {
	props map[string]string
}

// NewSystemProperties copies props into a new snapshot.
func NewSystemProperties(props map[string]string) SystemProperties {
	return SystemProperties{props: maps.Clone(props)}
}

// Lookup returns the value of key and whether it is set.
func (p SystemProperties) Lookup(key string) (string, bool) {
	v, ok := p.props[key]
	return v, ok
}

// IsWindows reports whether the os.name property names a Windows system.
func (p SystemProperties) IsWindows() bool {
	return strings.Contains(strings.ToLower(p.props[PropertyOSName]), "windows")
}

// Ambient bundles the environment and system property snapshots a chain is built from.
type Ambient struct {
	Environment Environment
	Properties  SystemProperties
}

// NewAmbient creates an Ambient from raw maps.
func NewAmbient(env, props map[string]string) Ambient {
	return Ambient{
		Environment: NewEnvironment(env),
		Properties:  NewSystemProperties(props),
	}
}

// CurrentAmbient snapshots the process environment and host properties.
func CurrentAmbient() Ambient {
	return Ambient{
		Environment: CurrentEnvironment(),
		Properties:  CurrentSystemProperties(),
	}
}

// CurrentEnvironment snapshots the process environment.
func CurrentEnvironment() Environment {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return Environment{vars: vars}
}

// CurrentSystemProperties derives os.name from the runtime and user.home from
// the user database, falling back to os.UserHomeDir.
func CurrentSystemProperties() SystemProperties {
	props := map[string]string{
		PropertyOSName: osName(runtime.GOOS),
	}
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		props[PropertyUserHome] = u.HomeDir
	} else if home, err := os.UserHomeDir(); err == nil {
		props[PropertyUserHome] = home
	}
	return SystemProperties{props: props}
}

func osName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "Mac OS X"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}
