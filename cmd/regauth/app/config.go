package app

import (
	"path/filepath"

	"github.com/reglet-dev/regauth/credential/values"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/regauth/config.yaml, falling back
// to the .config directory under the user's home.
func DefaultConfigPath(ambient values.Ambient) string {
	if dir, ok := ambient.Environment.Lookup(values.EnvXDGConfigHome); ok && dir != "" {
		return filepath.Join(dir, "regauth", "config.yaml")
	}
	home, ok := ambient.Properties.Lookup(values.PropertyUserHome)
	if !ok || home == "" {
		home = ambient.Environment.Get(values.EnvHome)
	}
	return filepath.Join(home, ".config", "regauth", "config.yaml")
}
