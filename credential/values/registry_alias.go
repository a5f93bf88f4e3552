package values

import "slices"

// registryAliasGroups lists hostnames that refer to the same registry.
var registryAliasGroups = [][]string{
	{"registry.hub.docker.com", "index.docker.io", "registry-1.docker.io", "docker.io"},
}

// RegistryAliases returns every hostname that refers to the same registry as
// registry, with registry itself first. Registries outside a known group map
// to a single-element slice.
func RegistryAliases(registry string) []string {
	for _, group := range registryAliasGroups {
		if !slices.Contains(group, registry) {
			continue
		}
		aliases := make([]string, 0, len(group))
		aliases = append(aliases, registry)
		for _, alias := range group {
			if alias != registry {
				aliases = append(aliases, alias)
			}
		}
		return aliases
	}
	return []string{registry}
}
