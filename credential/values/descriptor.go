package values

import "fmt"

// RetrieverKind identifies which kind of source a retriever reads from.
type RetrieverKind string

const (
	KindKnown              RetrieverKind = "known"
	KindHelperAtPath       RetrieverKind = "docker-credential-helper-at-path"
	KindHelper             RetrieverKind = "docker-credential-helper"
	KindDockerConfig       RetrieverKind = "docker-config"
	KindLegacyDockerConfig RetrieverKind = "legacy-docker-config"
	KindWellKnownHelpers   RetrieverKind = "well-known-credential-helpers"
	KindAmbientDefault     RetrieverKind = "ambient-default-credentials"
	KindUnknown            RetrieverKind = "unknown"
)

// RetrieverDescriptor describes a retriever for diagnostics and comparison.
// Source is the credential label, helper reference or file path, and is empty
// for the fixed fallback retrievers.
type RetrieverDescriptor struct {
	Kind   RetrieverKind `json:"kind" yaml:"kind"`
	Source string        `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewRetrieverDescriptor creates a descriptor.
func NewRetrieverDescriptor(kind RetrieverKind, source string) RetrieverDescriptor {
	return RetrieverDescriptor{Kind: kind, Source: source}
}

// String returns "kind" or "kind(source)".
func (d RetrieverDescriptor) String() string {
	if d.Source == "" {
		return string(d.Kind)
	}
	return fmt.Sprintf("%s(%s)", d.Kind, d.Source)
}
