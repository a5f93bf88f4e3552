package retrievers

import (
	"context"
	"log/slog"

	remotecredentials "oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/values"
)

// DockerConfigRetriever reads credentials from a docker config.json style file:
// config.json, a kubernetes .dockerconfigjson or a Podman containers/auth.json.
// auths, credHelpers and credsStore entries are all honoured.
//
// A missing or unreadable file never fails the chain; it yields no credential.
type DockerConfigRetriever struct {
	path   string
	files  ports.FileChecker
	logger *slog.Logger
}

// Retrieve looks registry up under each of its aliases.
func (r *DockerConfigRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	if !r.files.Exists(r.path) {
		return values.Credential{}, nil
	}

	store, err := remotecredentials.NewStore(r.path, remotecredentials.StoreOptions{})
	if err != nil {
		r.logger.InfoContext(ctx, "unable to parse docker config file", "path", r.path, "error", err)
		return values.Credential{}, nil
	}

	for _, alias := range values.RegistryAliases(registry) {
		serverAddress := remotecredentials.ServerAddressFromRegistry(alias)
		cred, err := store.Get(ctx, serverAddress)
		if err != nil {
			// Usually a credHelpers/credsStore helper that is not installed.
			r.logger.WarnContext(ctx, "cannot use credentials from docker config",
				"path", r.path, "registry", alias, "error", err)
			continue
		}
		if c := fromAuthCredential(cred); !c.IsEmpty() {
			r.logger.InfoContext(ctx, "using credentials from docker config", "path", r.path, "registry", alias)
			return c, nil
		}
	}
	return values.Credential{}, nil
}

// Descriptor reports the docker-config kind and file path.
func (r *DockerConfigRetriever) Descriptor() values.RetrieverDescriptor {
	return values.NewRetrieverDescriptor(values.KindDockerConfig, r.path)
}
