package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/regauth/credential/dto"
	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/schema"
)

// FileConfigRepository implements ports.ConfigRepository using YAML files.
type FileConfigRepository struct {
	schemas *schema.Registry
}

// ConfigRepositoryOption configures a FileConfigRepository.
type ConfigRepositoryOption func(*FileConfigRepository)

// WithSchemaRegistry validates against a registry that already holds the
// config schema under ConfigSchemaKind.
func WithSchemaRegistry(reg *schema.Registry) ConfigRepositoryOption {
	return func(r *FileConfigRepository) {
		r.schemas = reg
	}
}

// NewFileConfigRepository creates a new FileConfigRepository.
func NewFileConfigRepository(opts ...ConfigRepositoryOption) (*FileConfigRepository, error) {
	r := &FileConfigRepository{}
	for _, opt := range opts {
		opt(r)
	}
	if r.schemas == nil {
		reg, err := NewConfigSchemaRegistry()
		if err != nil {
			return nil, err
		}
		r.schemas = reg
	}
	return r, nil
}

// NewConfigSchemaRegistry returns a schema registry holding the config file schema.
func NewConfigSchemaRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := reg.Register(ConfigSchemaKind, &ConfigFile{}); err != nil {
		return nil, err
	}
	return reg, nil
}

// Load reads and validates the config file at path. A missing file or
// directory yields an empty spec.
func (r *FileConfigRepository) Load(ctx context.Context, path string) (*dto.CredentialSpecDTO, error) {
	data, err := readScoped(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &dto.CredentialSpecDTO{}, nil
		}
		return nil, err
	}

	cfg, err := r.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg.ToDTO(), nil
}

// Decode validates YAML config content and decodes it.
func (r *FileConfigRepository) Decode(data []byte) (*ConfigFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &ConfigFile{}, nil
	}

	doc, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrInvalidConfig, err)
	}
	if err := r.schemas.Validate(ConfigSchemaKind, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrInvalidConfig, err)
	}

	var out ConfigFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding config YAML: %w", entities.ErrInvalidConfig, err)
	}
	return &out, nil
}

// Exists checks if a config file exists at the given path.
func (r *FileConfigRepository) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// readScoped reads path through an os.Root rooted at its directory.
func readScoped(path string) ([]byte, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()

	file, err := root.Open(base)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", base, err)
	}
	return data, nil
}
