package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker-credential-helpers/credentials"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/regauth/credential"
	"github.com/reglet-dev/regauth/credential/dto"
	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/netutil"
)

// EnvHelperActive is set in the environment of a regauth helper process. A
// regauth helper started with it set is nested inside another one, e.g. through
// a config.json naming regauth as its credsStore, and resolves nothing.
const EnvHelperActive = "REGAUTH_HELPER_ACTIVE"

// errReadOnly is returned for store and erase requests.
var errReadOnly = errors.New("regauth does not store credentials")

// chainHelper serves the docker credential-helper protocol from a retriever chain.
type chainHelper struct {
	ctx    context.Context
	svc    *credential.CredentialService
	spec   *dto.CredentialSpecDTO
	nested bool
}

func (h *chainHelper) Add(*credentials.Credentials) error {
	return errReadOnly
}

func (h *chainHelper) Delete(string) error {
	return errReadOnly
}

func (h *chainHelper) Get(serverURL string) (string, string, error) {
	if h.nested {
		return "", "", credentials.NewErrCredentialsNotFound()
	}
	res, err := h.svc.Resolve(h.ctx, h.spec, netutil.RegistryHost(serverURL))
	if errors.Is(err, entities.ErrCredentialNotFound) {
		return "", "", credentials.NewErrCredentialsNotFound()
	}
	if err != nil {
		return "", "", err
	}
	return res.Credential.Username(), res.Credential.Password(), nil
}

func (h *chainHelper) List() (map[string]string, error) {
	return map[string]string{}, nil
}

func newHelperCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "helper <get|list|store|erase>",
		Short: "Act as a docker credential helper",
		Long: `Speak the docker credential-helper protocol on stdin and stdout, so regauth
can be installed as docker-credential-regauth. Only get and list are supported.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{credentials.ActionGet, credentials.ActionList, credentials.ActionStore, credentials.ActionErase},
		RunE: func(cmd *cobra.Command, args []string) error {
			ambient, _ := o.ambient.Get()
			if _, nested := ambient.Environment.Lookup(EnvHelperActive); nested {
				o.logger.Debug("regauth helper invoked from itself, resolving nothing")
				helper := &chainHelper{ctx: cmd.Context(), nested: true}
				return credentials.HandleCommand(helper, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
			}
			// Helpers run by the chain inherit the marker.
			if err := o.setenv(EnvHelperActive, "1"); err != nil {
				return fmt.Errorf("failed to set %s: %w", EnvHelperActive, err)
			}

			svc, spec, err := o.load(cmd)
			if err != nil {
				return err
			}
			helper := &chainHelper{ctx: cmd.Context(), svc: svc, spec: spec}
			return credentials.HandleCommand(helper, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
