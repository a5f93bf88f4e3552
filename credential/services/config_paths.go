package services

import (
	"path/filepath"

	"github.com/reglet-dev/regauth/credential/values"
)

// Config file names, relative to their config root.
const (
	// DockerConfigFile is written by docker login.
	DockerConfigFile = "config.json"
	// KubernetesDockerConfigFile is the key of a kubernetes.io/dockerconfigjson secret.
	KubernetesDockerConfigFile = ".dockerconfigjson"
	// LegacyDockerConfigFile uses the flat pre-1.7 format.
	LegacyDockerConfigFile = ".dockercfg"
)

// xdgAuthFile is the Podman auth file, relative to an XDG root.
var xdgAuthFile = filepath.Join("containers", "auth.json")

// pathSet is an insertion-ordered set of cleaned paths.
type pathSet struct {
	order []string
	seen  map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func (s *pathSet) add(paths ...string) {
	for _, p := range paths {
		p = filepath.Clean(p)
		if _, ok := s.seen[p]; ok {
			continue
		}
		s.seen[p] = struct{}{}
		s.order = append(s.order, p)
	}
}

func (s *pathSet) list() []string {
	return s.order
}

// ConfigFileCandidates returns the config files a chain built from ambient will
// consult, in precedence order and without duplicates: the Podman auth files
// under the XDG and home roots, then the docker config files under
// DOCKER_CONFIG, the user.home property and HOME.
func ConfigFileCandidates(ambient values.Ambient) []string {
	env := ambient.Environment
	props := ambient.Properties
	files := newPathSet()

	xdgRuntime, hasXDGRuntime := env.Lookup(values.EnvXDGRuntimeDir)
	if hasXDGRuntime {
		files.add(filepath.Join(xdgRuntime, xdgAuthFile))
	}
	xdgConfigHome, hasXDGConfigHome := env.Lookup(values.EnvXDGConfigHome)
	if hasXDGConfigHome {
		files.add(filepath.Join(xdgConfigHome, xdgAuthFile))
	}
	homeProperty, hasHomeProperty := props.Lookup(values.PropertyUserHome)
	if hasHomeProperty {
		files.add(filepath.Join(homeProperty, ".config", xdgAuthFile))
	}
	homeEnv, hasHomeEnv := env.Lookup(values.EnvHome)
	if hasHomeEnv {
		files.add(filepath.Join(homeEnv, ".config", xdgAuthFile))
	}

	if dockerConfig, ok := env.Lookup(values.EnvDockerConfig); ok {
		files.add(dockerFiles(dockerConfig)...)
	}
	if hasHomeProperty {
		files.add(dockerFiles(filepath.Join(homeProperty, ".docker"))...)
	}
	if hasHomeEnv {
		files.add(dockerFiles(filepath.Join(homeEnv, ".docker"))...)
	}

	return files.list()
}

func dockerFiles(configDir string) []string {
	return []string{
		filepath.Join(configDir, DockerConfigFile),
		filepath.Join(configDir, KubernetesDockerConfigFile),
		filepath.Join(configDir, LegacyDockerConfigFile),
	}
}

// IsLegacyDockerConfig reports whether path names a flat-format .dockercfg file.
func IsLegacyDockerConfig(path string) bool {
	return filepath.Base(path) == LegacyDockerConfigFile
}
