package retrievers

import (
	"oras.land/oras-go/v2/registry/remote/auth"

	"github.com/reglet-dev/regauth/credential/values"
)

// fromAuthCredential converts an oras credential. Identity tokens become
// refresh-token credentials. A bare registry token has no username/password
// form and is dropped.
func fromAuthCredential(c auth.Credential) values.Credential {
	if c.RefreshToken != "" {
		return values.NewRefreshTokenCredential(c.RefreshToken)
	}
	return values.NewCredential(c.Username, c.Password)
}
