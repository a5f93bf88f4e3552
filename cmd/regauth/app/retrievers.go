package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/regauth/credential/services"
)

// Output formats of the retrievers command.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

func newRetrieversCmd(o *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "retrievers",
		Short: "Print the ordered credential retriever chain",
		Long: `Print the credential retrievers regauth tries, first to last, for the
current config file, environment and user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, spec, err := o.load(cmd)
			if err != nil {
				return err
			}
			list, err := svc.Retrievers(spec)
			if err != nil {
				return err
			}
			descriptors := services.DescribeAll(list)

			out := cmd.OutOrStdout()
			switch format {
			case FormatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(descriptors); err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
				return enc.Close()
			case FormatText:
				for i, d := range descriptors {
					if _, err := fmt.Fprintf(out, "%d. %s\n", i+1, d); err != nil {
						return err
					}
				}
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (use %s or %s)", format, FormatText, FormatYAML)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", FormatText, "Output format (text or yaml)")
	return cmd
}
