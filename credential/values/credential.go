package values

import "fmt"

// OAuth2RefreshTokenUsername is the username that marks a credential whose
// password is an OAuth2 refresh (identity) token rather than a password.
const OAuth2RefreshTokenUsername = "<token>"

// Credential is a username/password pair used to authenticate against a registry.
type Credential struct {
	username string
	password string
}

// NewCredential creates a credential from a username and password.
func NewCredential(username, password string) Credential {
	return Credential{
		username: username,
		password: password,
	}
}

// NewRefreshTokenCredential creates a credential carrying an OAuth2 refresh token.
func NewRefreshTokenCredential(token string) Credential {
	return Credential{
		username: OAuth2RefreshTokenUsername,
		password: token,
	}
}

// Username returns the username.
func (c Credential) Username() string {
	return c.username
}

// Password returns the password or token.
func (c Credential) Password() string {
	return c.password
}

// IsEmpty returns true if this is the zero value.
func (c Credential) IsEmpty() bool {
	return c.username == "" && c.password == ""
}

// IsOAuth2RefreshToken returns true if the password holds a refresh token.
func (c Credential) IsOAuth2RefreshToken() bool {
	return c.username == OAuth2RefreshTokenUsername
}

// Equals checks equality with another credential.
func (c Credential) Equals(other Credential) bool {
	return c.username == other.username && c.password == other.password
}

// String returns a representation safe for logging. The password is never included.
func (c Credential) String() string {
	if c.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("%s:<redacted>", c.username)
}

// KnownCredential pairs a credential with a label naming where it came from.
// The label is used for diagnostics only.
type KnownCredential struct {
	credential Credential
	source     string
}

// NewKnownCredential creates a KnownCredential.
func NewKnownCredential(credential Credential, source string) KnownCredential {
	return KnownCredential{
		credential: credential,
		source:     source,
	}
}

// Credential returns the wrapped credential.
func (k KnownCredential) Credential() Credential {
	return k.credential
}

// Source returns the diagnostic label.
func (k KnownCredential) Source() string {
	return k.source
}
