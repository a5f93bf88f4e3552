package services

import (
	"context"
	"fmt"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/ports"
	"github.com/reglet-dev/regauth/credential/values"
)

// Resolution is the outcome of walking a retriever chain.
type Resolution struct {
	Credential values.Credential
	// Index is the position of the retriever that produced Credential.
	Index      int
	Descriptor values.RetrieverDescriptor
}

// ResolveCredential tries retrievers in order and returns the first non-empty
// credential. A retriever error stops the walk. If every retriever comes back
// empty a *entities.CredentialNotFoundError is returned.
func ResolveCredential(ctx context.Context, retrievers []ports.CredentialRetriever, registry string) (*Resolution, error) {
	for i, r := range retrievers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cred, err := r.Retrieve(ctx, registry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", Describe(r), err)
		}
		if !cred.IsEmpty() {
			return &Resolution{
				Credential: cred,
				Index:      i,
				Descriptor: Describe(r),
			}, nil
		}
	}
	return nil, &entities.CredentialNotFoundError{Registry: registry, Tried: len(retrievers)}
}

// Describe returns the descriptor of r, or an unknown descriptor if r cannot describe itself.
func Describe(r ports.CredentialRetriever) values.RetrieverDescriptor {
	if d, ok := r.(ports.Describable); ok {
		return d.Descriptor()
	}
	return values.NewRetrieverDescriptor(values.KindUnknown, "")
}

// DescribeAll describes each retriever in order.
func DescribeAll(retrievers []ports.CredentialRetriever) []values.RetrieverDescriptor {
	out := make([]values.RetrieverDescriptor, 0, len(retrievers))
	for _, r := range retrievers {
		out = append(out, Describe(r))
	}
	return out
}
