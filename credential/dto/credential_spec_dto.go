package dto

import "github.com/reglet-dev/regauth/credential/values"

// CredentialDTO is a username/password pair as read from configuration.
type CredentialDTO struct {
	Username string
	Password string
	Source   string
}

// CredentialSpecDTO holds the explicit inputs of a credential chain.
// Nil credentials and an empty helper mean "not configured".
type CredentialSpecDTO struct {
	Known            *CredentialDTO
	Inferred         *CredentialDTO
	CredentialHelper string
}

// ToKnownCredential returns the credential labelled with its source, or
// defaultSource when none is given. A nil DTO is absent.
func (c *CredentialDTO) ToKnownCredential(defaultSource string) values.Optional[values.KnownCredential] {
	if c == nil {
		return values.None[values.KnownCredential]()
	}
	source := c.Source
	if source == "" {
		source = defaultSource
	}
	return values.Some(values.NewKnownCredential(values.NewCredential(c.Username, c.Password), source))
}

// ToCredentialHelper returns the configured helper, absent when empty.
func (s *CredentialSpecDTO) ToCredentialHelper() values.Optional[string] {
	if s == nil || s.CredentialHelper == "" {
		return values.None[string]()
	}
	return values.Some(s.CredentialHelper)
}
