package ports

import (
	"context"

	"github.com/reglet-dev/regauth/credential/dto"
)

// ConfigRepository loads the explicit credential inputs from persistent configuration.
type ConfigRepository interface {
	// Load reads the configuration at path. A missing file yields an empty spec.
	Load(ctx context.Context, path string) (*dto.CredentialSpecDTO, error)
	Exists(ctx context.Context, path string) (bool, error)
}
