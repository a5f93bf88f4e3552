package filesystem

import "github.com/reglet-dev/regauth/credential/dto"

// ConfigSchemaKind names the config file schema in a schema.Registry.
const ConfigSchemaKind = "config"

// ConfigFile is the YAML structure of the regauth configuration file.
type ConfigFile struct {
	Credential         *ConfigCredential `yaml:"credential,omitempty" json:"credential,omitempty" jsonschema:"description=Credential used for every registry"`
	InferredCredential *ConfigCredential `yaml:"inferredCredential,omitempty" json:"inferredCredential,omitempty" jsonschema:"description=Fallback credential tried after the credential helper"`
	CredentialHelper   string            `yaml:"credentialHelper,omitempty" json:"credentialHelper,omitempty" jsonschema:"minLength=1,description=Credential helper suffix or path"`
}

// ConfigCredential is a username/password pair in YAML.
type ConfigCredential struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Source   string `yaml:"source,omitempty" json:"source,omitempty" jsonschema:"description=Label shown in logs"`
}

// ToDTO converts the file representation to the credential spec DTO.
func (c *ConfigFile) ToDTO() *dto.CredentialSpecDTO {
	if c == nil {
		return &dto.CredentialSpecDTO{}
	}
	return &dto.CredentialSpecDTO{
		Known:            c.Credential.toDTO(),
		Inferred:         c.InferredCredential.toDTO(),
		CredentialHelper: c.CredentialHelper,
	}
}

func (c *ConfigCredential) toDTO() *dto.CredentialDTO {
	if c == nil {
		return nil
	}
	return &dto.CredentialDTO{
		Username: c.Username,
		Password: c.Password,
		Source:   c.Source,
	}
}
