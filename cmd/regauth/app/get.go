package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/docker/docker-credential-helpers/credentials"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/regauth/credential/entities"
	"github.com/reglet-dev/regauth/credential/values"
	"github.com/reglet-dev/regauth/netutil"
)

func newGetCmd(o *rootOptions) *cobra.Command {
	var allowPrompt bool

	cmd := &cobra.Command{
		Use:   "get <registry>",
		Short: "Resolve the credential for a registry",
		Long: `Resolve the credential for a registry and print it in the JSON format
docker credential helpers use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if netutil.HasCredentials(args[0]) {
				o.logger.Warn("ignoring credentials embedded in registry address",
					"registry", netutil.StripCredentials(args[0]))
			}
			registry := netutil.RegistryHost(args[0])

			svc, spec, err := o.load(cmd)
			if err != nil {
				return err
			}

			var cred values.Credential
			res, err := svc.Resolve(cmd.Context(), spec, registry)
			switch {
			case err == nil:
				cred = res.Credential
			case errors.Is(err, entities.ErrCredentialNotFound) && allowPrompt:
				if !o.prompter.IsInteractive() {
					return err
				}
				cred, err = o.prompter.PromptForCredential(registry)
				if err != nil {
					return fmt.Errorf("failed to read credential: %w", err)
				}
			default:
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(credentials.Credentials{
				ServerURL: registry,
				Username:  cred.Username(),
				Secret:    cred.Password(),
			})
		},
	}

	cmd.Flags().BoolVar(&allowPrompt, "prompt", false, "Prompt for a credential when none is found and stdin is a terminal")
	return cmd
}
