package retrievers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/values"
	"github.com/reglet-dev/regauth/netutil"
)

// legacyAuthEntry is one value of the flat .dockercfg map.
type legacyAuthEntry struct {
	Auth  string `json:"auth"`
	Email string `json:"email,omitempty"`
}

// LegacyDockerConfigRetriever reads a .dockercfg file, which maps registry
// addresses straight to auth entries with no "auths" wrapper.
type LegacyDockerConfigRetriever struct {
	path   string
	files  ports.FileChecker
	logger *slog.Logger
}

// Retrieve finds the entry whose key refers to registry or one of its aliases.
func (r *LegacyDockerConfigRetriever) Retrieve(ctx context.Context, registry string) (values.Credential, error) {
	if !r.files.Exists(r.path) {
		return values.Credential{}, nil
	}

	entries, err := readLegacyDockerConfig(r.path)
	if err != nil {
		r.logger.InfoContext(ctx, "unable to parse legacy docker config file", "path", r.path, "error", err)
		return values.Credential{}, nil
	}

	for _, alias := range values.RegistryAliases(registry) {
		entry, ok := lookupLegacyEntry(entries, alias)
		if !ok || entry.Auth == "" {
			continue
		}
		cred, err := decodeLegacyAuth(entry.Auth)
		if err != nil {
			r.logger.InfoContext(ctx, "invalid auth in legacy docker config", "path", r.path, "registry", alias, "error", err)
			continue
		}
		r.logger.InfoContext(ctx, "using credentials from legacy docker config", "path", r.path, "registry", alias)
		return cred, nil
	}
	return values.Credential{}, nil
}

// Descriptor reports the legacy-docker-config kind and file path.
func (r *LegacyDockerConfigRetriever) Descriptor() values.RetrieverDescriptor {
	return values.NewRetrieverDescriptor(values.KindLegacyDockerConfig, r.path)
}

func readLegacyDockerConfig(path string) (map[string]legacyAuthEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries map[string]legacyAuthEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid legacy docker config JSON: %w", err)
	}
	return entries, nil
}

// lookupLegacyEntry prefers an exact key, then any key whose host matches.
func lookupLegacyEntry(entries map[string]legacyAuthEntry, registry string) (legacyAuthEntry, bool) {
	if entry, ok := entries[registry]; ok {
		return entry, true
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if netutil.RegistryHost(k) == registry {
			return entries[k], true
		}
	}
	return legacyAuthEntry{}, false
}

// decodeLegacyAuth decodes base64("username:password").
func decodeLegacyAuth(auth string) (values.Credential, error) {
	decoded, err := base64.StdEncoding.DecodeString(auth)
	if err != nil {
		return values.Credential{}, fmt.Errorf("decode auth: %w", err)
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return values.Credential{}, fmt.Errorf("auth is not in username:password form")
	}
	return values.NewCredential(username, password), nil
}
