package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/regauth/credential/filesystem"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := filesystem.NewConfigSchemaRegistry()
			if err != nil {
				return err
			}
			s, ok := reg.GetSchema(filesystem.ConfigSchemaKind)
			if !ok {
				return errors.New("config schema is not registered")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := filesystem.NewFileConfigRepository()
			if err != nil {
				return err
			}
			exists, err := repo.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("config file %q does not exist", args[0])
			}
			if _, err := repo.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return err
		},
	}
}
