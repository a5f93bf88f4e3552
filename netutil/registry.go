// Package netutil provides registry address helpers.
package netutil

import (
	"net"
	"net/url"
	"strings"
)

// RegistryHost returns the lowercased host[:port] of a registry address.
// Addresses may carry a scheme and path, as the keys of older docker config
// files do (e.g. "https://index.docker.io/v1/").
func RegistryHost(address string) string {
	address = strings.TrimSpace(address)
	if strings.Contains(address, "://") {
		parsed, err := url.Parse(address)
		if err == nil && parsed.Host != "" {
			return strings.ToLower(parsed.Host)
		}
	}
	host, _, _ := strings.Cut(address, "/")
	return strings.ToLower(host)
}

// RegistryHostname returns RegistryHost without the port.
func RegistryHostname(address string) string {
	host := RegistryHost(address)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// StripCredentials removes user:password@ from a URL for safe logging.
// Returns the original string if the URL cannot be parsed.
func StripCredentials(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Clear user info
	parsed.User = nil

	return parsed.String()
}

// HasCredentials returns true if the URL contains credentials.
func HasCredentials(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.User != nil
}
